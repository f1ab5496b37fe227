// Package ui provides the Bubble Tea TUI for the Pokedex.
package ui

// RefreshDone is sent when the refresh pipeline settles.
type RefreshDone struct {
	Err error
}

// RefreshProgress is sent as individual fetches settle during a refresh.
type RefreshProgress struct {
	Done  int
	Total int
}

// CryFetched is sent when an audio clip download finishes.
type CryFetched struct {
	ID    int
	Bytes int
	Err   error
}

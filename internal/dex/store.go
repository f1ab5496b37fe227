// Package dex holds the in-memory Pokedex state.
//
// Store is the only component with externally observable mutable state:
// the catalog, the id-keyed evolution chain table, the favorite set and
// the load status. Readers always see a consistent snapshot - the refresh
// pipeline replaces the catalog and chain table atomically under the
// store's lock, never incrementally.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Accessors return copies.
package dex

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abelbrown/pokedex/internal/logging"
	"github.com/abelbrown/pokedex/internal/pokeapi"
)

// ErrRefreshInFlight is returned when Refresh is called while a previous
// refresh has not settled. The second caller should simply wait; the
// in-flight refresh will publish its result.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// Status is the load lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String returns a short display name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loader produces the catalog and its dependent chain table. Satisfied by
// *catalog.Aggregator; tests inject doubles.
type Loader interface {
	LoadCatalog(ctx context.Context) ([]pokeapi.Pokemon, error)
	LoadChains(ctx context.Context, pokemons []pokeapi.Pokemon) map[int]pokeapi.EvolutionChain
}

// Favorites persists the favorite set across runs. Satisfied by
// *favorites.Store. Optional - a nil store keeps favorites in memory only.
type Favorites interface {
	Toggle(id int) (bool, error)
	All() (map[int]bool, error)
}

// Store holds the catalog, chains, favorites and load status.
type Store struct {
	loader Loader
	favs   Favorites // optional persistence

	mu          sync.RWMutex
	pokemons    []pokeapi.Pokemon
	chains      map[int]pokeapi.EvolutionChain
	favorites   map[int]bool
	status      Status
	statusMsg   string // failure reason when status == StatusFailed
	lastRefresh time.Time
	inFlight    bool
}

// NewStore creates an empty Store. favs may be nil.
func NewStore(loader Loader, favs Favorites) *Store {
	s := &Store{
		loader:    loader,
		favs:      favs,
		chains:    make(map[int]pokeapi.EvolutionChain),
		favorites: make(map[int]bool),
		status:    StatusIdle,
	}

	if favs != nil {
		saved, err := favs.All()
		if err != nil {
			logging.Warn("Failed to load saved favorites", "error", err)
		} else {
			s.favorites = saved
		}
	}

	return s
}

// Refresh runs the two-stage load pipeline: catalog first, then the
// chain table keyed by the catalog's ids. The caller blocks until both
// stages settle or the catalog stage fails.
//
// A second Refresh while one is in flight returns ErrRefreshInFlight
// rather than racing on the shared state. A failed refresh leaves the
// previously loaded catalog untouched.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrRefreshInFlight
	}
	s.inFlight = true
	s.status = StatusLoading
	s.statusMsg = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	pokemons, err := s.loader.LoadCatalog(ctx)
	if err != nil {
		logging.Error("Refresh failed", "error", err)
		s.mu.Lock()
		s.status = StatusFailed
		s.statusMsg = err.Error()
		s.mu.Unlock()
		return err
	}

	// Publish the catalog before the slower chain stage so readers see
	// entries as soon as they are orderable.
	s.mu.Lock()
	s.pokemons = pokemons
	s.mu.Unlock()

	chains := s.loader.LoadChains(ctx, pokemons)

	s.mu.Lock()
	s.chains = chains // full replace: stale entries from prior loads are dropped
	s.status = StatusLoaded
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	logging.Info("Refresh complete", "pokemon", len(pokemons), "chains", len(chains))
	return nil
}

// Pokemons returns a copy of the current catalog, sorted ascending by id.
func (s *Store) Pokemons() []pokeapi.Pokemon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pokeapi.Pokemon, len(s.pokemons))
	copy(out, s.pokemons)
	return out
}

// Chain returns the evolution chain for id, if one was loaded.
func (s *Store) Chain(id int) (pokeapi.EvolutionChain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chain, ok := s.chains[id]
	return chain, ok
}

// ChainCount returns the number of loaded chains.
func (s *Store) ChainCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chains)
}

// ToggleFavorite flips membership for id and returns the new state.
// Toggling an id not present in the catalog is permitted and harmless.
func (s *Store) ToggleFavorite(id int) bool {
	s.mu.Lock()
	now := !s.favorites[id]
	if now {
		s.favorites[id] = true
	} else {
		delete(s.favorites, id)
	}
	s.mu.Unlock()

	if s.favs != nil {
		if _, err := s.favs.Toggle(id); err != nil {
			logging.Warn("Failed to persist favorite", "id", id, "error", err)
		}
	}
	return now
}

// IsFavorite reports membership for id.
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites[id]
}

// FavoriteSet returns a copy of the favorite set.
func (s *Store) FavoriteSet() map[int]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]bool, len(s.favorites))
	for id := range s.favorites {
		out[id] = true
	}
	return out
}

// Status returns the load status and, for StatusFailed, the reason.
func (s *Store) Status() (Status, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.statusMsg
}

// LastRefresh returns when the last successful refresh settled.
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Count returns the catalog size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pokemons)
}

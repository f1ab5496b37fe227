// Pokedex - a terminal catalog browser for PokeAPI.
//
// Architecture overview:
//
//	internal/pokeapi  - one-shot HTTP fetch client
//	internal/catalog  - bounded concurrent fan-out aggregation
//	internal/dex      - in-memory catalog store (the only mutable state)
//	internal/filter   - pure read projections
//	internal/ui       - Bubble Tea front end
//
// All services are constructed here and passed down - no package-level
// singletons.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/pokedex/internal/catalog"
	"github.com/abelbrown/pokedex/internal/config"
	"github.com/abelbrown/pokedex/internal/cries"
	"github.com/abelbrown/pokedex/internal/dex"
	"github.com/abelbrown/pokedex/internal/favorites"
	"github.com/abelbrown/pokedex/internal/logging"
	"github.com/abelbrown/pokedex/internal/pokeapi"
	"github.com/abelbrown/pokedex/internal/ui"
	"github.com/abelbrown/pokedex/internal/vision"
)

func main() {
	identifyPath := flag.String("identify", "", "identify a Pokemon from a JPEG file and exit")
	prompt := flag.String("prompt", "", "override the identification prompt")
	flag.Parse()

	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	// Identify mode: one-shot classification, no TUI
	if *identifyPath != "" {
		runIdentify(cfg, *identifyPath, *prompt)
		return
	}

	// Ensure data directory exists
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".pokedex")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}

	// Favorites persistence
	favStore, err := favorites.Open(filepath.Join(dataDir, "favorites.db"))
	if err != nil {
		fatal("Failed to open favorites store: %v", err)
	}
	defer favStore.Close()

	// Fetch client and aggregation pipeline
	client := pokeapi.NewClient(cfg.API.BaseURL, cfg.FetchTimeout(),
		pokeapi.WithRateLimit(cfg.API.RequestsPerSecond))
	agg := catalog.New(client, cfg.API.ListLimit, cfg.API.MaxConcurrentFetches)
	store := dex.NewStore(agg, favStore)

	cryClient := cries.NewClient(cfg.API.CryURLTemplate, cfg.FetchTimeout())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresh := func() tea.Cmd {
		return func() tea.Msg {
			return ui.RefreshDone{Err: store.Refresh(ctx)}
		}
	}
	fetchCry := func(id int) tea.Cmd {
		return func() tea.Msg {
			data, err := cryClient.Fetch(ctx, id)
			return ui.CryFetched{ID: id, Bytes: len(data), Err: err}
		}
	}

	ui.ApplyTheme(cfg.UI.Theme)
	app := ui.NewApp(store, refresh, fetchCry)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Feed fetch progress into the UI as batches settle
	agg.SetProgress(func(done, total int) {
		if done%25 == 0 || done == total {
			p.Send(ui.RefreshProgress{Done: done, Total: total})
		}
	})

	logging.Info("Starting UI", "limit", cfg.API.ListLimit, "max_concurrent", cfg.API.MaxConcurrentFetches)
	if _, err := p.Run(); err != nil {
		logging.Error("Application error", "error", err)
		fatal("Error: %v", err)
	}

	logging.Info("Pokedex exiting normally")
}

// runIdentify classifies a single image file and prints the result.
func runIdentify(cfg *config.Config, path, prompt string) {
	if !cfg.Vision.Enabled || cfg.Vision.APIKey == "" {
		fatal("Vision is not configured: set ANTHROPIC_API_KEY or vision.api_key in config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fatal("Failed to read image: %v", err)
	}

	classifier := vision.NewClassifier(cfg.Vision.APIKey, cfg.Vision.Model)
	text, err := classifier.Describe(context.Background(), data, prompt)
	if err != nil {
		fatal("Identification failed: %v", err)
	}

	fmt.Println(text)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Package catalog loads the full Pokedex from the remote API.
//
// Loading is a fan-out/fan-in: the listing call produces ~1000 resource
// locators, each is fetched concurrently under a bounded limit, and the
// results are merged into a deterministically ordered catalog once every
// fetch has settled. Individual fetch failures are dropped by policy - a
// slightly incomplete catalog beats a failed one. Only the listing call
// itself can fail a load.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/pokedex/internal/logging"
	"github.com/abelbrown/pokedex/internal/pokeapi"
)

// defaultMaxConcurrent caps in-flight fetches when no limit is configured.
const defaultMaxConcurrent = 32

// Fetcher is the client surface the aggregator needs. Satisfied by
// *pokeapi.Client; tests inject doubles.
type Fetcher interface {
	ListPokemon(ctx context.Context, limit int) ([]pokeapi.Ref, error)
	FetchPokemon(ctx context.Context, url string) (pokeapi.Pokemon, error)
	FetchEvolutionChain(ctx context.Context, id int) (pokeapi.EvolutionChain, error)
}

// LoadFailure is returned when the catalog-level listing call fails.
// Per-entry fetch failures never produce one.
type LoadFailure struct {
	Err error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("catalog load failed: %v", e.Err)
}

func (e *LoadFailure) Unwrap() error { return e.Err }

// Progress reports settled fetches during a load. done counts both
// successes and failures.
type Progress func(done, total int)

// Aggregator performs the concurrent catalog and chain loads.
type Aggregator struct {
	client        Fetcher
	limit         int
	maxConcurrent int
	progress      Progress // nil = no reporting
}

// New creates an Aggregator. limit is the listing size; maxConcurrent
// caps in-flight fetches (<= 0 uses the default).
func New(client Fetcher, limit, maxConcurrent int) *Aggregator {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Aggregator{
		client:        client,
		limit:         limit,
		maxConcurrent: maxConcurrent,
	}
}

// SetProgress installs a progress callback. Must be set before a load
// starts; the callback may be invoked from multiple goroutines.
func (a *Aggregator) SetProgress(fn Progress) {
	a.progress = fn
}

// fetchResult tags one settled fetch so the merge step can filter
// explicitly rather than dropping errors inline.
type fetchResult struct {
	pokemon pokeapi.Pokemon
	err     error
}

// LoadCatalog fetches the listing, then every referenced record
// concurrently, and returns the successes sorted ascending by id.
//
// The returned slice is complete when the call returns - there is no
// streaming. A listing failure returns *LoadFailure; per-record failures
// are logged and dropped.
func (a *Aggregator) LoadCatalog(ctx context.Context) ([]pokeapi.Pokemon, error) {
	refs, err := a.client.ListPokemon(ctx, a.limit)
	if err != nil {
		return nil, &LoadFailure{Err: err}
	}

	logging.Info("Catalog load starting", "entries", len(refs), "max_concurrent", a.maxConcurrent)

	results := make([]fetchResult, len(refs))
	var done int
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(a.maxConcurrent)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			var res fetchResult
			if ctx.Err() != nil {
				res.err = ctx.Err()
			} else {
				res.pokemon, res.err = a.client.FetchPokemon(ctx, ref.URL)
			}
			results[i] = res // each goroutine owns its slot

			mu.Lock()
			done++
			settled := done
			mu.Unlock()
			if a.progress != nil {
				a.progress(settled, len(refs))
			}
			return nil // never fail the group - per-entry errors are dropped at merge
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return nil, &LoadFailure{Err: ctx.Err()}
	}

	return mergeCatalog(results), nil
}

// mergeCatalog filters to successes, sorts ascending by id and removes
// duplicate ids. Output order is deterministic regardless of fetch
// completion order.
func mergeCatalog(results []fetchResult) []pokeapi.Pokemon {
	pokemons := make([]pokeapi.Pokemon, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			logging.Debug("Dropping failed fetch", "error", res.err)
			continue
		}
		pokemons = append(pokemons, res.pokemon)
	}

	sort.Slice(pokemons, func(i, j int) bool {
		return pokemons[i].ID < pokemons[j].ID
	})

	// Duplicate ids are not expected from the API but the catalog
	// invariant is strict ascending order, so keep the first.
	deduped := pokemons[:0]
	lastID := -1
	for _, p := range pokemons {
		if p.ID == lastID {
			continue
		}
		deduped = append(deduped, p)
		lastID = p.ID
	}

	logging.Info("Catalog load settled", "loaded", len(deduped), "failed", failed)
	return deduped
}

// LoadChains fetches the evolution chain for every catalog entry and
// returns an id-keyed table. Each entry needs two dependent requests
// (species, then chain); a failure at either stage omits that id. The
// batch itself never fails - an empty map is a valid result.
func (a *Aggregator) LoadChains(ctx context.Context, pokemons []pokeapi.Pokemon) map[int]pokeapi.EvolutionChain {
	chains := make(map[int]pokeapi.EvolutionChain, len(pokemons))
	var mu sync.Mutex
	var done int

	var g errgroup.Group
	g.SetLimit(a.maxConcurrent)

	for _, p := range pokemons {
		p := p
		g.Go(func() error {
			var chain pokeapi.EvolutionChain
			var err error
			if ctx.Err() != nil {
				err = ctx.Err()
			} else {
				chain, err = a.client.FetchEvolutionChain(ctx, p.ID)
			}

			mu.Lock()
			if err == nil {
				chains[p.ID] = chain
			} else {
				logging.Debug("Dropping failed chain fetch", "id", p.ID, "error", err)
			}
			done++
			settled := done
			mu.Unlock()

			if a.progress != nil {
				a.progress(settled, len(pokemons))
			}
			return nil
		})
	}
	_ = g.Wait()

	logging.Info("Chain load settled", "loaded", len(chains), "of", len(pokemons))
	return chains
}

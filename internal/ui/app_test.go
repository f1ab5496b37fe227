package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/pokedex/internal/dex"
	"github.com/abelbrown/pokedex/internal/pokeapi"
)

// stubLoader hands the dex store a fixed catalog.
type stubLoader struct {
	catalog []pokeapi.Pokemon
}

func (s *stubLoader) LoadCatalog(ctx context.Context) ([]pokeapi.Pokemon, error) {
	out := make([]pokeapi.Pokemon, len(s.catalog))
	copy(out, s.catalog)
	return out, nil
}

func (s *stubLoader) LoadChains(ctx context.Context, pokemons []pokeapi.Pokemon) map[int]pokeapi.EvolutionChain {
	return nil
}

func entry(id int, name, typeName string) pokeapi.Pokemon {
	return pokeapi.Pokemon{
		ID:    id,
		Name:  name,
		Types: []pokeapi.TypeRef{{Slot: 1, Type: pokeapi.Type{Name: typeName}}},
	}
}

// testApp builds an App with a loaded catalog and a terminal size applied.
func testApp(t *testing.T, catalog ...pokeapi.Pokemon) App {
	t.Helper()

	store := dex.NewStore(&stubLoader{catalog: catalog}, nil)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	app := NewApp(store, func() tea.Cmd { return nil }, nil)

	m, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(RefreshDone{})
	return m.(App)
}

func press(t *testing.T, app App, keys ...string) App {
	t.Helper()
	m := tea.Model(app)
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(App)
}

func TestInitialLoadShowsProgress(t *testing.T) {
	// The initial refresh must render the spinner and fetch counter
	// without any keypress: loading is on from construction, since Init
	// runs on a copy of the model and cannot flip it.
	store := dex.NewStore(&stubLoader{}, nil)
	app := NewApp(store, func() tea.Cmd { return nil }, nil)

	_ = app.Init()
	m, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(RefreshProgress{Done: 25, Total: 100})

	view := m.(App).View()
	if !strings.Contains(view, "25/100") {
		t.Errorf("initial load should render fetch progress, got:\n%s", view)
	}
	if !strings.Contains(view, "loading") {
		t.Errorf("initial load should render the loading state, got:\n%s", view)
	}
}

func TestRefreshInFlightResultIsNotAnError(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"))

	// A wrapped in-flight sentinel means another refresh owns the store;
	// the view should not surface it as a failure.
	wrapped := fmt.Errorf("refresh: %w", dex.ErrRefreshInFlight)
	m, _ := app.Update(RefreshDone{Err: wrapped})

	if got := m.(App).err; got != nil {
		t.Errorf("in-flight refresh result should not set an error, got %v", got)
	}
}

func TestRefreshDonePopulatesList(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"), entry(4, "charmander", "fire"))

	if len(app.visible) != 2 {
		t.Fatalf("expected 2 visible entries, got %d", len(app.visible))
	}
	if app.visible[0].ID != 1 || app.visible[1].ID != 4 {
		t.Errorf("unexpected order: %+v", app.visible)
	}
}

func TestCursorNavigation(t *testing.T) {
	app := testApp(t, entry(1, "a", "grass"), entry(2, "b", "fire"), entry(3, "c", "water"))

	app = press(t, app, "j", "j")
	if app.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", app.cursor)
	}

	// Clamped at the end
	app = press(t, app, "j")
	if app.cursor != 2 {
		t.Errorf("cursor ran past the end: %d", app.cursor)
	}

	app = press(t, app, "k", "k", "k")
	if app.cursor != 0 {
		t.Errorf("cursor ran past the start: %d", app.cursor)
	}
}

func TestSearchFiltersList(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"), entry(4, "charmander", "fire"))

	app = press(t, app, "/")
	if !app.searching {
		t.Fatal("expected search mode after /")
	}

	app = press(t, app, "c", "h", "a", "r")
	if len(app.visible) != 1 || app.visible[0].Name != "charmander" {
		t.Errorf("expected charmander only, got %+v", app.visible)
	}

	// Enter keeps the query applied, escape clears it
	app = press(t, app, "enter")
	if app.searching {
		t.Error("enter should leave search mode")
	}
	if len(app.visible) != 1 {
		t.Errorf("query should persist after enter, got %d visible", len(app.visible))
	}

	app = press(t, app, "esc")
	if len(app.visible) != 2 {
		t.Errorf("esc should clear the query, got %d visible", len(app.visible))
	}
}

func TestTypeFilterCycles(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"), entry(4, "charmander", "fire"))

	// "normal" is first in the cycle; neither entry matches
	app = press(t, app, "t")
	if len(app.visible) != 0 {
		t.Errorf("expected no normal types, got %d", len(app.visible))
	}

	app = press(t, app, "T")
	if len(app.visible) != 2 {
		t.Errorf("T should clear the type filter, got %d visible", len(app.visible))
	}
}

func TestFavoritesOnly(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"), entry(4, "charmander", "fire"))

	// Favorite the entry under the cursor, then restrict the view
	app = press(t, app, "f", "F")
	if len(app.visible) != 1 || app.visible[0].ID != 1 {
		t.Errorf("expected only the favorite, got %+v", app.visible)
	}

	app = press(t, app, "F")
	if len(app.visible) != 2 {
		t.Errorf("expected full list again, got %d", len(app.visible))
	}
}

func TestDetailToggle(t *testing.T) {
	app := testApp(t, entry(25, "pikachu", "electric"))

	app = press(t, app, "enter")
	if !app.detail {
		t.Fatal("enter should open the detail view")
	}

	app = press(t, app, "esc")
	if app.detail {
		t.Error("esc should close the detail view")
	}
}

func TestCursorClampsWhenFilterShrinksList(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"), entry(4, "charmander", "fire"), entry(7, "squirtle", "water"))

	app = press(t, app, "j", "j") // cursor on squirtle
	app = press(t, app, "/", "b", "u", "l", "enter")

	if app.cursor != 0 {
		t.Errorf("cursor should clamp into the filtered list, got %d", app.cursor)
	}
	if p, ok := app.selected(); !ok || p.Name != "bulbasaur" {
		t.Errorf("unexpected selection: %+v", p)
	}
}

func TestQuit(t *testing.T) {
	app := testApp(t, entry(1, "bulbasaur", "grass"))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/pokedex/internal/dex"
	"github.com/abelbrown/pokedex/internal/filter"
	"github.com/abelbrown/pokedex/internal/pokeapi"
)

// App is the root Bubble Tea model. It reads catalog snapshots from the
// dex store (which is safe for concurrent use) and triggers refreshes and
// cry fetches through injected command functions.
type App struct {
	store    *dex.Store
	refresh  func() tea.Cmd
	fetchCry func(id int) tea.Cmd // nil disables cry playback

	pokemons []pokeapi.Pokemon // current catalog snapshot
	visible  []pokeapi.Pokemon // snapshot after filters

	cursor    int
	searching bool
	search    textinput.Model
	typeIdx   int // 0 = all, otherwise AllTypes[typeIdx-1]
	gen       int // 0 = all generations
	favsOnly  bool
	detail    bool

	spinner  spinner.Model
	loading  bool
	progress string
	err      error

	width  int
	height int
	ready  bool
}

// NewApp creates the root model. fetchCry may be nil.
func NewApp(store *dex.Store, refresh func() tea.Cmd, fetchCry func(id int) tea.Cmd) App {
	ti := textinput.New()
	ti.Placeholder = "name or number"
	ti.Prompt = "/"
	ti.CharLimit = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	// loading starts true: Init fires the first refresh, and Init cannot
	// flip the flag itself (the model it runs on is a discarded copy).
	return App{
		store:    store,
		refresh:  refresh,
		fetchCry: fetchCry,
		search:   ti,
		spinner:  sp,
		loading:  true,
	}
}

// Init kicks off the initial refresh.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.refresh(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case RefreshDone:
		a.loading = false
		a.progress = ""
		a.err = msg.Err
		if msg.Err == nil || errors.Is(msg.Err, dex.ErrRefreshInFlight) {
			a.err = nil
			a.pokemons = a.store.Pokemons()
			a.applyFilters()
		}
		return a, nil

	case RefreshProgress:
		a.progress = fmt.Sprintf("%d/%d", msg.Done, msg.Total)
		return a, nil

	case CryFetched:
		// Nothing to render; errors show in the status bar.
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleKey routes keyboard input.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input captures everything except escape/enter
	if a.searching {
		switch msg.String() {
		case "esc":
			a.searching = false
			a.search.SetValue("")
			a.applyFilters()
			return a, nil
		case "enter":
			a.searching = false
			return a, nil
		default:
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			a.applyFilters()
			return a, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "esc":
		if a.detail {
			a.detail = false
			return a, nil
		}
		if a.search.Value() != "" {
			a.search.SetValue("")
			a.applyFilters()
		}
		return a, nil

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "j":
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
		return a, nil

	case "pgup":
		a.cursor -= a.pageSize()
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil

	case "pgdown":
		a.cursor += a.pageSize()
		if a.cursor >= len(a.visible) {
			a.cursor = len(a.visible) - 1
		}
		return a, nil

	case "/":
		a.searching = true
		a.search.Focus()
		return a, textinput.Blink

	case "t":
		a.typeIdx = (a.typeIdx + 1) % (len(pokeapi.AllTypes) + 1)
		a.applyFilters()
		return a, nil

	case "T":
		a.typeIdx = 0
		a.applyFilters()
		return a, nil

	case "g":
		a.gen = (a.gen + 1) % (filter.GenerationCount + 1)
		a.applyFilters()
		return a, nil

	case "F":
		a.favsOnly = !a.favsOnly
		a.applyFilters()
		return a, nil

	case "f":
		if p, ok := a.selected(); ok {
			a.store.ToggleFavorite(p.ID)
		}
		return a, nil

	case "c":
		if p, ok := a.selected(); ok && a.fetchCry != nil {
			return a, a.fetchCry(p.ID)
		}
		return a, nil

	case "enter":
		if _, ok := a.selected(); ok {
			a.detail = true
		}
		return a, nil

	case "r":
		if !a.loading {
			a.loading = true
			a.err = nil
			return a, tea.Batch(a.refresh(), a.spinner.Tick)
		}
		return a, nil
	}

	return a, nil
}

// applyFilters recomputes the visible slice. Filters conjoin; order is
// irrelevant since each is a pure subset operation.
func (a *App) applyFilters() {
	visible := a.pokemons
	visible = filter.BySearch(visible, a.search.Value())
	if a.typeIdx > 0 {
		visible = filter.ByType(visible, pokeapi.AllTypes[a.typeIdx-1])
	}
	visible = filter.ByGeneration(visible, a.gen)
	if a.favsOnly {
		visible = filter.Favorites(visible, a.store.FavoriteSet())
	}
	a.visible = visible

	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selected returns the entry under the cursor.
func (a App) selected() (pokeapi.Pokemon, bool) {
	if a.cursor < 0 || a.cursor >= len(a.visible) {
		return pokeapi.Pokemon{}, false
	}
	return a.visible[a.cursor], true
}

// pageSize returns the number of list rows that fit on screen.
func (a App) pageSize() int {
	rows := a.height - 4 // header, filter bar, status bar
	if rows < 1 {
		return 1
	}
	return rows
}

// View renders the application.
func (a App) View() string {
	if !a.ready {
		return "Starting..."
	}
	if a.detail {
		return a.viewDetail()
	}
	return a.viewList()
}

// viewList renders the scrolling catalog list.
func (a App) viewList() string {
	var b strings.Builder

	b.WriteString(a.headerLine())
	b.WriteString("\n")

	rows := a.pageSize()
	start := 0
	if a.cursor >= rows {
		start = a.cursor - rows + 1
	}
	end := start + rows
	if end > len(a.visible) {
		end = len(a.visible)
	}

	for i := start; i < end; i++ {
		p := a.visible[i]
		line := fmt.Sprintf("#%04d %-14s %s", p.ID, p.Name, typeSummary(p))
		if a.store.IsFavorite(p.ID) {
			line = FavoriteMark.Render("♥ ") + line
		} else {
			line = "  " + line
		}
		if i == a.cursor {
			b.WriteString(SelectedItem.Render(line))
		} else {
			b.WriteString(NormalItem.Render(line))
		}
		b.WriteString("\n")
	}

	if len(a.visible) == 0 && !a.loading {
		b.WriteString(HelpStyle.Render("No entries match the current filters."))
		b.WriteString("\n")
	}

	b.WriteString(a.statusLine())
	return b.String()
}

// headerLine shows the search bar or the active filters.
func (a App) headerLine() string {
	if a.searching {
		return FilterBar.Render(a.search.View())
	}

	parts := []string{fmt.Sprintf("Pokedex  %d/%d", len(a.visible), len(a.pokemons))}
	if a.search.Value() != "" {
		parts = append(parts, fmt.Sprintf("search:%q", a.search.Value()))
	}
	if a.typeIdx > 0 {
		parts = append(parts, "type:"+pokeapi.AllTypes[a.typeIdx-1])
	}
	if a.gen > 0 {
		parts = append(parts, fmt.Sprintf("gen:%d", a.gen))
	}
	if a.favsOnly {
		parts = append(parts, "favorites")
	}
	return DetailTitle.Render(strings.Join(parts, "  "))
}

// statusLine renders the bottom status bar.
func (a App) statusLine() string {
	status, msg := a.store.Status()

	var left string
	switch {
	case a.loading && a.progress != "":
		left = a.spinner.View() + " loading " + a.progress
	case a.loading:
		left = a.spinner.View() + " loading"
	case a.err != nil:
		left = ErrorStyle.Render(a.err.Error())
	case status == dex.StatusFailed:
		left = ErrorStyle.Render("refresh failed: " + msg)
	default:
		left = StatusBarText.Render(status.String())
	}

	keys := StatusBarKey.Render("/") + StatusBarText.Render(" search  ") +
		StatusBarKey.Render("t") + StatusBarText.Render(" type  ") +
		StatusBarKey.Render("g") + StatusBarText.Render(" gen  ") +
		StatusBarKey.Render("f") + StatusBarText.Render(" fav  ") +
		StatusBarKey.Render("r") + StatusBarText.Render(" refresh  ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit")

	return StatusBar.Render(left + "  " + keys)
}

// typeSummary renders the colored type badges for a Pokemon.
func typeSummary(p pokeapi.Pokemon) string {
	var b strings.Builder
	for _, t := range p.Types {
		b.WriteString(TypeBadge(t.Type.Name).Render(t.Type.Name))
	}
	return b.String()
}

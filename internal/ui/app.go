package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/holonet/internal/detail"
	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/prefs"
	"github.com/five82/holonet/internal/state"
	"github.com/five82/holonet/internal/storage"
	"github.com/five82/holonet/internal/swapi"
)

// CharacterSource lists and searches characters.
type CharacterSource interface {
	FetchCharacters(ctx context.Context, page int) (swapi.Page[swapi.Character], error)
	SearchCharactersPage(ctx context.Context, query string, page int) (swapi.Page[swapi.Character], error)
}

// DetailLoader hydrates the character detail screen.
type DetailLoader interface {
	Load(ctx context.Context, id string) (detail.View, error)
}

// focusArea is where key presses go.
type focusArea int

const (
	focusContent focusArea = iota
	focusSearch
	focusFavorites
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    CharacterSource
	Details   DetailLoader
	Store     *state.Store
	Logger    logger.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	LogFile   string
	Start     Route
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    CharacterSource
	details   DetailLoader
	store     *state.Store
	log       logger.Logger
	prefsPath string
	logFile   string
	keys      keyMap

	// UI state
	theme         Theme
	layout        string
	width         int
	height        int
	ready         bool
	focus         focusArea
	showHelp      bool
	showFavorites bool
	showActivity  bool

	// Routing
	route Route
	back  backStack

	// Current load. gen increases with every dispatch; a result carrying
	// an older gen is dropped.
	gen     uint64
	cancel  context.CancelFunc
	loading bool
	loadErr error
	spinner spinner.Model

	// List and search results
	results  swapi.Page[swapi.Character]
	selected int

	// Detail state
	view           *detail.View
	detailViewport viewport.Model

	// Search bar. searchSeq increases with every edit; only the debounce
	// tick carrying the latest seq dispatches.
	searchInput textinput.Model
	searchSeq   uint64
	suggestion  int

	// Favourites pane
	favSelected int

	// Activity view
	activityViewport viewport.Model
	activityLines    []string
	activityErr      error

	// Transient status line
	status    string
	statusSeq uint64
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	store := opts.Store
	if store == nil {
		store = state.Open(ctx, storage.NewMemory(), log)
	}

	p := opts.Prefs
	defaults := prefs.Defaults()
	if p.Theme == "" {
		p.Theme = defaults.Theme
	}
	if p.Layout == "" {
		p.Layout = defaults.Layout
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	start := opts.Start
	if start.Kind != RouteCharacter {
		start.Page = clampPage(start.Page)
	}

	ti := textinput.New()
	ti.Placeholder = "Search characters…"
	ti.Prompt = ""
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		details:     opts.Details,
		store:       store,
		log:         log,
		prefsPath:   prefsPath,
		logFile:     opts.LogFile,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(p.Theme),
		layout:      p.Layout,
		route:       start,
		loading:     true,
		spinner:     sp,
		searchInput: ti,
		suggestion:  -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		func() tea.Msg { return startMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case startMsg:
		next := m.enterRoute()
		return m, next

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		next := m.dispatchSearch(m.searchInput.Value())
		return m, next

	case activityMsg:
		m.applyActivity(msg)
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		m.cancelLoad()
		return m, tea.Quit
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelLoad()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshDetailContent()
		m.refreshActivityContent()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLayout):
		if m.layout == prefs.LayoutGrid {
			m.layout = prefs.LayoutList
		} else {
			m.layout = prefs.LayoutGrid
		}
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		next := m.focusSearchBar()
		return m, next

	case key.Matches(msg, m.keys.Favorites):
		if m.showFavorites && m.focus == focusFavorites {
			m.closeFavorites()
		} else {
			m.openFavorites()
		}
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		m.showActivity = !m.showActivity
		if m.showActivity {
			return m, m.loadActivity()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.showActivity {
			return m, m.loadActivity()
		}
		next := m.load()
		return m, next
	}

	if m.focus == focusFavorites {
		return m.handleFavoritesKey(msg)
	}
	if m.showActivity {
		return m.handleActivityKey(msg)
	}

	switch m.route.Kind {
	case RouteCharacter:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// navigate moves to r, remembering the current route for Back. Refining a
// search replaces the current search route instead of stacking it.
func (m *Model) navigate(r Route) tea.Cmd {
	if r == m.route {
		return nil
	}
	if !(r.Kind == RouteSearch && m.route.Kind == RouteSearch) {
		m.back.push(m.route)
	}
	m.route = r
	return m.enterRoute()
}

// goBack returns to the previous route, or the first list page.
func (m *Model) goBack() tea.Cmd {
	prev, ok := m.back.pop()
	if !ok {
		if m.route == ListRoute(1) {
			return nil
		}
		prev = ListRoute(1)
	}
	m.route = prev
	return m.enterRoute()
}

// enterRoute resets per-route state and starts the route's load.
func (m *Model) enterRoute() tea.Cmd {
	m.selected = 0
	m.view = nil
	m.results = swapi.Page[swapi.Character]{}
	m.detailViewport.GotoTop()

	if m.route.Kind == RouteSearch {
		if m.searchInput.Value() != m.route.Query {
			m.searchInput.SetValue(m.route.Query)
			m.searchInput.CursorEnd()
		}
	} else if m.searchInput.Value() != "" {
		m.searchInput.SetValue("")
		m.searchSeq++
	}

	m.log.Debug("navigate", logger.String("route", m.route.String()))
	return m.load()
}

// load cancels any in-flight load and dispatches one for the current route.
func (m *Model) load() tea.Cmd {
	m.cancelLoad()
	m.gen++
	m.loadErr = nil
	m.loading = false

	gen := m.gen
	route := m.route

	var fetch tea.Cmd
	switch route.Kind {
	case RouteCharacter:
		if m.details == nil {
			return nil
		}
		ctx, cancel := context.WithCancel(m.ctx)
		m.cancel = cancel
		details := m.details
		fetch = func() tea.Msg {
			view, err := details.Load(ctx, route.ID)
			return detailLoadedMsg{gen: gen, route: route, view: view, err: err}
		}

	case RouteSearch:
		query := strings.TrimSpace(route.Query)
		if query == "" || m.client == nil {
			return nil
		}
		ctx, cancel := context.WithCancel(m.ctx)
		m.cancel = cancel
		client := m.client
		fetch = func() tea.Msg {
			page, err := client.SearchCharactersPage(ctx, query, route.Page)
			return pageLoadedMsg{gen: gen, route: route, page: page, err: err}
		}

	default:
		if m.client == nil {
			return nil
		}
		ctx, cancel := context.WithCancel(m.ctx)
		m.cancel = cancel
		client := m.client
		fetch = func() tea.Msg {
			page, err := client.FetchCharacters(ctx, route.Page)
			return pageLoadedMsg{gen: gen, route: route, page: page, err: err}
		}
	}

	m.loading = true
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *Model) cancelLoad() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// finishLoad releases the current load's context once its result is in.
func (m *Model) finishLoad() {
	m.loading = false
	m.cancelLoad()
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		m.log.Debug("dropped stale response", logger.String("route", msg.route.String()))
		return m, nil
	}
	m.finishLoad()

	if msg.err != nil {
		m.loadErr = msg.err
		m.log.Warn("load characters failed",
			logger.String("route", msg.route.String()),
			logger.String("kind", swapi.Kind(msg.err)),
			logger.Error(msg.err),
		)
		return m, nil
	}

	m.results = msg.page
	m.selected = 0
	m.log.Debug("characters loaded",
		logger.String("route", msg.route.String()),
		logger.Int("count", msg.page.Count),
		logger.Int("results", len(msg.page.Results)),
	)
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		m.log.Debug("dropped stale response", logger.String("route", msg.route.String()))
		return m, nil
	}
	m.finishLoad()

	if msg.err != nil {
		m.loadErr = msg.err
		m.log.Warn("load character failed",
			logger.String("id", msg.route.ID),
			logger.String("kind", swapi.Kind(msg.err)),
			logger.Error(msg.err),
		)
		return m, nil
	}

	view := msg.view
	m.view = &view
	m.refreshDetailContent()
	m.detailViewport.GotoTop()
	return m, nil
}

// toggleFavorite flips c's favourite state and flashes the outcome.
func (m *Model) toggleFavorite(c swapi.Character) tea.Cmd {
	if m.store.ToggleFavorite(c) {
		return m.flash("Added " + c.Name + " to favourites")
	}
	return m.flash("Removed " + c.Name + " from favourites")
}

// flash shows text in the command bar for StatusFlashDuration.
func (m *Model) flash(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(StatusFlashDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs failed", logger.String("path", m.prefsPath), logger.Error(err))
	}
}

// resize fits the viewports to the terminal.
func (m *Model) resize() {
	w, h := m.contentSize()
	m.detailViewport.Width = w
	m.detailViewport.Height = h
	m.activityViewport.Width = w
	m.activityViewport.Height = h
	m.refreshDetailContent()
	m.refreshActivityContent()
}

// contentSize is the area below the chrome, minus the favourites pane.
func (m Model) contentSize() (int, int) {
	w := m.width
	if m.showFavorites {
		w -= FavoritesPaneWidth
	}
	h := m.height - chromeHeight - (m.searchBarHeight() - 1)
	return max(w, 0), max(h, 0)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")

	b.WriteString(m.renderBody())

	return b.String()
}

// renderContent renders the main content area based on route and panes.
func (m Model) renderContent() string {
	if m.showActivity {
		return m.renderActivity()
	}
	switch m.route.Kind {
	case RouteCharacter:
		return m.renderDetail()
	case RouteSearch:
		return m.renderSearchResults()
	default:
		return m.renderList()
	}
}

// Messages

type startMsg struct{}

type pageLoadedMsg struct {
	gen   uint64
	route Route
	page  swapi.Page[swapi.Character]
	err   error
}

type detailLoadedMsg struct {
	gen   uint64
	route Route
	view  detail.View
	err   error
}

type searchDebounceMsg struct {
	seq uint64
}

type clearStatusMsg struct {
	seq uint64
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(contextOrBackground(opts.Context)))
	_, err := p.Run()
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/five82/holonet/internal/detail"
	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/prefs"
	"github.com/five82/holonet/internal/state"
	"github.com/five82/holonet/internal/storage"
	"github.com/five82/holonet/internal/swapi"
)

var (
	luke = swapi.Character{Name: "Luke Skywalker", Gender: "male", BirthYear: "19BBY", Height: "172", URL: "https://swapi.dev/api/people/1/"}
	leia = swapi.Character{Name: "Leia Organa", Gender: "female", BirthYear: "19BBY", URL: "https://swapi.dev/api/people/5/"}
)

type fakeSource struct {
	mu       sync.Mutex
	searches []string
}

func (f *fakeSource) FetchCharacters(_ context.Context, _ int) (swapi.Page[swapi.Character], error) {
	return swapi.Page[swapi.Character]{Count: 2, Results: []swapi.Character{luke, leia}}, nil
}

func (f *fakeSource) SearchCharactersPage(_ context.Context, query string, _ int) (swapi.Page[swapi.Character], error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	return swapi.Page[swapi.Character]{Count: 1, Results: []swapi.Character{luke}}, nil
}

type fakeDetails struct{}

func (fakeDetails) Load(_ context.Context, _ string) (detail.View, error) {
	return detail.View{Character: luke}, nil
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Store == nil {
		opts.Store = state.Open(context.Background(), storage.NewMemory(), logger.Nop())
	}
	if opts.Client == nil {
		opts.Client = &fakeSource{}
	}
	if opts.Details == nil {
		opts.Details = fakeDetails{}
	}
	opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")

	m := New(opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, startMsg{})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = update(t, m, msg)
	}
	return m
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, pageLoadedMsg{
		gen:   m.gen,
		route: m.route,
		page:  swapi.Page[swapi.Character]{Count: 2, Results: []swapi.Character{luke, leia}},
	})
	return m
}

func TestDebounce_OnlyLatestSequenceDispatches(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "/", "l", "u")
	require.Equal(t, focusSearch, m.focus)
	require.Equal(t, "lu", m.searchInput.Value())
	require.Equal(t, RouteList, m.route.Kind)

	m, cmd := update(t, m, searchDebounceMsg{seq: m.searchSeq - 1})
	require.Nil(t, cmd)
	require.Equal(t, ListRoute(1), m.route)
	require.Empty(t, m.store.SearchHistory())

	m, cmd = update(t, m, searchDebounceMsg{seq: m.searchSeq})
	require.NotNil(t, cmd)
	require.Equal(t, SearchRoute("lu"), m.route)
	require.Equal(t, []string{"lu"}, m.store.SearchHistory())
}

func TestDebounce_BlankQueryOnSearchRouteReturnsToList(t *testing.T) {
	m := newTestModel(t, Options{Start: SearchRoute("r2")})
	require.Equal(t, "r2", m.searchInput.Value())

	m = press(t, m, "/", "backspace", "backspace")
	require.Equal(t, "", m.searchInput.Value())

	m, _ = update(t, m, searchDebounceMsg{seq: m.searchSeq})
	require.Equal(t, ListRoute(1), m.route)
}

func TestDebounce_BlankQueryOffSearchRouteDoesNothing(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "/", " ")

	m, cmd := update(t, m, searchDebounceMsg{seq: m.searchSeq})
	require.Nil(t, cmd)
	require.Equal(t, ListRoute(1), m.route)
	require.Empty(t, m.store.SearchHistory())
}

func TestEnterDispatchesImmediatelyAndSupersedesTimer(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "/", "y", "o", "d", "a")
	pending := m.searchSeq

	m = press(t, m, "enter")
	require.Equal(t, SearchRoute("yoda"), m.route)
	require.Equal(t, focusContent, m.focus)

	m, cmd := update(t, m, searchDebounceMsg{seq: pending})
	require.Nil(t, cmd)
	require.Equal(t, []string{"yoda"}, m.store.SearchHistory())
}

func TestSearchSuggestionsFromHistory(t *testing.T) {
	store := state.Open(context.Background(), storage.NewMemory(), logger.Nop())
	store.AddToSearchHistory("leia")
	store.AddToSearchHistory("luke skywalker")

	m := newTestModel(t, Options{Store: store})
	m = press(t, m, "/", "l")
	require.Equal(t, []string{"luke skywalker", "leia"}, m.suggestions())

	m = press(t, m, "u")
	require.Equal(t, []string{"luke skywalker"}, m.suggestions())

	m = press(t, m, "down", "enter")
	require.Equal(t, SearchRoute("luke skywalker"), m.route)
	require.Equal(t, "luke skywalker", m.store.SearchHistory()[0])
}

func TestStaleResponseIsDropped(t *testing.T) {
	m := newTestModel(t, Options{})
	first := m.gen

	// Reload supersedes the first load.
	m = press(t, m, "r")
	require.Greater(t, m.gen, first)
	require.True(t, m.loading)

	m, _ = update(t, m, pageLoadedMsg{
		gen:   first,
		route: ListRoute(1),
		page:  swapi.Page[swapi.Character]{Count: 99, Results: []swapi.Character{leia}},
	})
	require.True(t, m.loading)
	require.Zero(t, m.results.Count)

	m = loaded(t, m)
	require.False(t, m.loading)
	require.Equal(t, 2, m.results.Count)
}

func TestSupersededLoadIsCancelled(t *testing.T) {
	m := newTestModel(t, Options{})
	seen := make(chan context.Context, 1)
	m.client = ctxSource{seen: seen}

	first := m.load()
	m = press(t, m, "r")

	msg := runFetch(t, first)
	ctx := <-seen
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	// The superseded result does not land.
	m, _ = update(t, m, msg)
	require.True(t, m.loading)
	require.Nil(t, m.loadErr)
}

type ctxSource struct {
	seen chan context.Context
}

func (s ctxSource) FetchCharacters(ctx context.Context, _ int) (swapi.Page[swapi.Character], error) {
	select {
	case s.seen <- ctx:
	default:
	}
	return swapi.Page[swapi.Character]{}, ctx.Err()
}

func (s ctxSource) SearchCharactersPage(ctx context.Context, _ string, _ int) (swapi.Page[swapi.Character], error) {
	return s.FetchCharacters(ctx, 1)
}

// runFetch runs the fetch command of a load batch and returns its result.
func runFetch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, isPage := c().(pageLoadedMsg); isPage {
			return msg
		}
	}
	t.Fatal("load batch has no fetch")
	return nil
}

func TestDetailStaleIdentifierIsDropped(t *testing.T) {
	m := newTestModel(t, Options{Start: CharacterRoute("1")})
	first := m.gen

	// Switch to another character before the first one resolves.
	_ = m.navigate(CharacterRoute("5"))
	require.Equal(t, CharacterRoute("5"), m.route)
	require.Greater(t, m.gen, first)

	m, _ = update(t, m, detailLoadedMsg{gen: m.gen, route: m.route, view: detail.View{Character: leia}})
	require.NotNil(t, m.view)
	require.Equal(t, leia.Name, m.view.Character.Name)

	// The first character resolves late and must not replace the second.
	m, _ = update(t, m, detailLoadedMsg{gen: first, route: CharacterRoute("1"), view: detail.View{Character: luke}})
	require.Equal(t, leia.Name, m.view.Character.Name)
	require.Equal(t, "/character/5", m.route.String())
	require.Contains(t, m.View(), "LEIA ORGANA")
}

func TestLoadErrorShowsStaticMessage(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, pageLoadedMsg{gen: m.gen, route: m.route, err: &swapi.HTTPError{URL: "x", StatusCode: 500}})
	require.False(t, m.loading)
	require.Contains(t, m.View(), listErrorText)
}

func TestOpenCharacterAndGoBack(t *testing.T) {
	m := newTestModel(t, Options{})
	m = loaded(t, m)

	m = press(t, m, "enter")
	require.Equal(t, CharacterRoute("1"), m.route)

	m, _ = update(t, m, detailLoadedMsg{gen: m.gen, route: m.route, view: detail.View{Character: luke}})
	require.NotNil(t, m.view)
	require.Contains(t, m.View(), "LUKE SKYWALKER")

	m = press(t, m, "esc")
	require.Equal(t, ListRoute(1), m.route)
}

func TestDetailFavoriteToggle(t *testing.T) {
	m := newTestModel(t, Options{Start: CharacterRoute("1")})
	m, _ = update(t, m, detailLoadedMsg{gen: m.gen, route: m.route, view: detail.View{Character: luke}})
	require.Contains(t, m.View(), "Add to Favourites")

	m = press(t, m, "s")
	require.True(t, m.store.IsFavorite(luke.URL))
	require.Contains(t, m.View(), "Remove from Favourites")

	m = press(t, m, "s")
	require.False(t, m.store.IsFavorite(luke.URL))
}

func TestPagingStaysInRange(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, pageLoadedMsg{
		gen:   m.gen,
		route: m.route,
		page:  swapi.Page[swapi.Character]{Count: 87, Results: []swapi.Character{luke}},
	})

	m = press(t, m, "p")
	require.Equal(t, ListRoute(1), m.route)

	m = press(t, m, "n")
	require.Equal(t, ListRoute(2), m.route)
}

func TestFavoritesPaneRemove(t *testing.T) {
	store := state.Open(context.Background(), storage.NewMemory(), logger.Nop())
	store.AddFavorite(luke)
	store.AddFavorite(leia)

	m := newTestModel(t, Options{Store: store})
	m = press(t, m, "f")
	require.Equal(t, focusFavorites, m.focus)
	require.Contains(t, m.View(), "Leia Organa")

	m = press(t, m, "j", "x")
	require.Equal(t, []swapi.Character{luke}, store.Favorites())
	require.Equal(t, 0, m.favSelected)

	m = press(t, m, "esc")
	require.False(t, m.showFavorites)
	require.Equal(t, focusContent, m.focus)
}

func TestFavoritesPaneOpenClosesPane(t *testing.T) {
	store := state.Open(context.Background(), storage.NewMemory(), logger.Nop())
	store.AddFavorite(luke)
	store.AddFavorite(leia)

	m := newTestModel(t, Options{Store: store})
	m = press(t, m, "f", "j", "enter")
	require.Equal(t, CharacterRoute("5"), m.route)
	require.False(t, m.showFavorites)
	require.Equal(t, focusContent, m.focus)
}

func TestThemeAndLayoutPersist(t *testing.T) {
	m := newTestModel(t, Options{Prefs: prefs.Prefs{Theme: "Holonet", Layout: prefs.LayoutGrid}})

	m = press(t, m, "T")
	require.Equal(t, "Dracula", m.theme.Name)
	require.Equal(t, "Dracula", prefs.Load(m.prefsPath).Theme)

	m = press(t, m, "v")
	require.Equal(t, prefs.LayoutList, m.layout)
	require.Equal(t, prefs.LayoutList, prefs.Load(m.prefsPath).Layout)
}

func TestSearchResultsTexts(t *testing.T) {
	m := newTestModel(t, Options{Start: SearchRoute("zzz")})
	m, _ = update(t, m, pageLoadedMsg{gen: m.gen, route: m.route})
	require.Contains(t, m.View(), `No characters found for "zzz"`)

	m = newTestModel(t, Options{Start: SearchRoute("luke")})
	m, _ = update(t, m, pageLoadedMsg{
		gen:   m.gen,
		route: m.route,
		page:  swapi.Page[swapi.Character]{Count: 1, Results: []swapi.Character{luke}},
	})
	require.Contains(t, m.View(), "1 character found")

	m = newTestModel(t, Options{Start: SearchRoute("")})
	require.False(t, m.loading)
	require.True(t, strings.Contains(m.View(), searchIdleText))
}

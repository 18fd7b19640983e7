package detail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/swapi"
)

type fakeSource struct {
	characters map[string]swapi.Character
	films      map[string]swapi.Film
	planets    map[string]swapi.Planet
	species    map[string]swapi.Species
	delays     map[string]time.Duration
	failures   map[string]error

	mu    sync.Mutex
	calls []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSource) record(ctx context.Context, key string) error {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	if d := f.delays[key]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.failures[key]
}

func (f *fakeSource) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (f *fakeSource) FetchCharacter(ctx context.Context, id string) (swapi.Character, error) {
	if err := f.record(ctx, id); err != nil {
		return swapi.Character{}, err
	}
	c, ok := f.characters[id]
	if !ok {
		return swapi.Character{}, &swapi.HTTPError{URL: id, StatusCode: 404}
	}
	return c, nil
}

func (f *fakeSource) FetchFilm(ctx context.Context, u string) (swapi.Film, error) {
	if err := f.record(ctx, u); err != nil {
		return swapi.Film{}, err
	}
	return f.films[u], nil
}

func (f *fakeSource) FetchPlanet(ctx context.Context, u string) (swapi.Planet, error) {
	if err := f.record(ctx, u); err != nil {
		return swapi.Planet{}, err
	}
	return f.planets[u], nil
}

func (f *fakeSource) FetchSpecies(ctx context.Context, u string) (swapi.Species, error) {
	if err := f.record(ctx, u); err != nil {
		return swapi.Species{}, err
	}
	return f.species[u], nil
}

func lukeSource() *fakeSource {
	return &fakeSource{
		characters: map[string]swapi.Character{
			"1": {
				Name:      "Luke Skywalker",
				Height:    "172",
				Homeworld: "https://swapi.dev/api/planets/1/",
				Films:     []string{"f1", "f2", "f3"},
				Species:   []string{"s1"},
				URL:       "https://swapi.dev/api/people/1/",
			},
		},
		films: map[string]swapi.Film{
			"f1": {Title: "The Empire Strikes Back", EpisodeID: 5},
			"f2": {Title: "The Phantom Menace", EpisodeID: 1},
			"f3": {Title: "A New Hope", EpisodeID: 4},
		},
		planets: map[string]swapi.Planet{
			"https://swapi.dev/api/planets/1/": {Name: "Tatooine"},
		},
		species: map[string]swapi.Species{
			"s1": {Name: "Human"},
		},
		delays:   map[string]time.Duration{},
		failures: map[string]error{},
	}
}

func TestLoad_SortsFilmsByEpisodeRegardlessOfCompletion(t *testing.T) {
	src := lukeSource()
	// Episode 1 finishes last, episode 5 first.
	src.delays["f2"] = 60 * time.Millisecond
	src.delays["f3"] = 30 * time.Millisecond

	view, err := New(src, logger.Nop(), 0).Load(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, Loaded, view.Films.Outcome)

	var episodes []int
	for _, f := range view.Films.Items {
		episodes = append(episodes, f.EpisodeID)
	}
	require.Equal(t, []int{1, 4, 5}, episodes)

	planet, ok := view.Planet()
	require.True(t, ok)
	require.Equal(t, "Tatooine", planet.Name)
	require.Equal(t, Loaded, view.Species.Outcome)
	require.NoError(t, view.Err())
}

func TestLoad_UnknownHomeworldIsAbsentAndNotFetched(t *testing.T) {
	src := lukeSource()
	c := src.characters["1"]
	c.Homeworld = "unknown"
	c.Species = nil
	src.characters["1"] = c

	view, err := New(src, logger.Nop(), 0).Load(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, Absent, view.Homeworld.Outcome)
	require.Equal(t, Absent, view.Species.Outcome)
	_, ok := view.Planet()
	require.False(t, ok)
	require.False(t, src.called("unknown"))
	require.NoError(t, view.Err())
}

func TestLoad_SectionFailureDoesNotSinkOthers(t *testing.T) {
	src := lukeSource()
	src.failures["f3"] = &swapi.HTTPError{URL: "f3", StatusCode: 500}

	view, err := New(src, logger.Nop(), 0).Load(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, Failed, view.Films.Outcome)
	require.Empty(t, view.Films.Items)
	require.Equal(t, Loaded, view.Homeworld.Outcome)
	require.Equal(t, Loaded, view.Species.Outcome)

	var httpErr *swapi.HTTPError
	require.True(t, errors.As(view.Err(), &httpErr))
	require.Contains(t, view.Err().Error(), "films:")
}

func TestLoad_HomeworldFailureIsDistinctFromAbsent(t *testing.T) {
	src := lukeSource()
	src.failures["https://swapi.dev/api/planets/1/"] = errors.New("boom")

	view, err := New(src, logger.Nop(), 0).Load(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, Failed, view.Homeworld.Outcome)
	require.Error(t, view.Homeworld.Err)
}

func TestLoad_CharacterFailureIsFatal(t *testing.T) {
	src := lukeSource()

	_, err := New(src, logger.Nop(), 0).Load(context.Background(), "404")
	require.Error(t, err)
	var httpErr *swapi.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, 404, httpErr.StatusCode)
}

func TestLoad_BoundsConcurrencyPerSection(t *testing.T) {
	src := lukeSource()
	c := src.characters["1"]
	c.Homeworld = ""
	c.Species = nil
	c.Films = nil
	for i := 0; i < 8; i++ {
		key := string(rune('a' + i))
		c.Films = append(c.Films, key)
		src.films[key] = swapi.Film{EpisodeID: i}
		src.delays[key] = 20 * time.Millisecond
	}
	src.characters["1"] = c

	view, err := New(src, logger.Nop(), 2).Load(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, view.Films.Items, 8)
	require.LessOrEqual(t, src.maxInFlight.Load(), int32(2))
}

func TestLoad_CancelledContextAbortsSubFetches(t *testing.T) {
	src := lukeSource()
	src.delays["f1"] = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	start := time.Now()
	view, err := New(src, logger.Nop(), 0).Load(ctx, "1")
	require.NoError(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
	require.Equal(t, Failed, view.Films.Outcome)
	require.True(t, errors.Is(view.Films.Err, context.Canceled))
}

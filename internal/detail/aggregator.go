// Package detail hydrates a character into the view model behind the detail
// screen: the character itself plus its films, homeworld and species.
package detail

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/swapi"
)

// Source is the subset of the API client the aggregator needs.
type Source interface {
	FetchCharacter(ctx context.Context, id string) (swapi.Character, error)
	FetchFilm(ctx context.Context, rawURL string) (swapi.Film, error)
	FetchPlanet(ctx context.Context, rawURL string) (swapi.Planet, error)
	FetchSpecies(ctx context.Context, rawURL string) (swapi.Species, error)
}

// Outcome describes how a linked section resolved.
type Outcome int

const (
	// Absent means the character links nothing for the section.
	Absent Outcome = iota
	// Loaded means every linked resource was fetched.
	Loaded
	// Failed means at least one fetch for the section failed.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "absent"
	}
}

// Section carries one linked group's result.
type Section[T any] struct {
	Outcome Outcome
	Items   []T
	Err     error
}

// View is the hydrated detail model.
type View struct {
	Character swapi.Character
	Films     Section[swapi.Film]
	Homeworld Section[swapi.Planet]
	Species   Section[swapi.Species]
}

// Planet returns the homeworld when it loaded.
func (v View) Planet() (swapi.Planet, bool) {
	if v.Homeworld.Outcome != Loaded || len(v.Homeworld.Items) == 0 {
		return swapi.Planet{}, false
	}
	return v.Homeworld.Items[0], true
}

// Err joins the errors of failed sections, or returns nil.
func (v View) Err() error {
	var errs []error
	if v.Films.Err != nil {
		errs = append(errs, fmt.Errorf("films: %w", v.Films.Err))
	}
	if v.Homeworld.Err != nil {
		errs = append(errs, fmt.Errorf("homeworld: %w", v.Homeworld.Err))
	}
	if v.Species.Err != nil {
		errs = append(errs, fmt.Errorf("species: %w", v.Species.Err))
	}
	return errors.Join(errs...)
}

// Aggregator loads detail views.
type Aggregator struct {
	src         Source
	log         logger.Logger
	concurrency int
}

const defaultConcurrency = 6

// New builds an Aggregator. concurrency bounds in-flight fetches per
// section; values below 1 use the default.
func New(src Source, log logger.Logger, concurrency int) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Aggregator{
		src:         src,
		log:         log.With(logger.String("component", "detail")),
		concurrency: concurrency,
	}
}

// Load fetches the character, then its films, homeworld and species in
// parallel. Only the character fetch is fatal: each linked section reports
// its own outcome. Films come back sorted by episode.
func (a *Aggregator) Load(ctx context.Context, id string) (View, error) {
	start := time.Now()

	character, err := a.src.FetchCharacter(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("fetch character %s: %w", id, err)
	}
	view := View{Character: character}

	var g errgroup.Group
	g.Go(func() error {
		view.Films = fetchAll(ctx, a.concurrency, character.Films, a.src.FetchFilm)
		sortFilms(view.Films.Items)
		return nil
	})
	g.Go(func() error {
		view.Homeworld = a.fetchHomeworld(ctx, character.Homeworld)
		return nil
	})
	g.Go(func() error {
		view.Species = fetchAll(ctx, a.concurrency, character.Species, a.src.FetchSpecies)
		return nil
	})
	_ = g.Wait()

	fields := []zap.Field{
		logger.String("id", id),
		logger.String("films", view.Films.Outcome.String()),
		logger.String("homeworld", view.Homeworld.Outcome.String()),
		logger.String("species", view.Species.Outcome.String()),
		logger.Duration("elapsed", time.Since(start)),
	}
	if err := view.Err(); err != nil && ctx.Err() == nil {
		a.log.Warn("detail partially loaded", append(fields, logger.Error(err))...)
	} else {
		a.log.Debug("detail loaded", fields...)
	}
	return view, nil
}

func (a *Aggregator) fetchHomeworld(ctx context.Context, rawURL string) Section[swapi.Planet] {
	link, ok := swapi.Known(rawURL)
	if !ok {
		return Section[swapi.Planet]{Outcome: Absent}
	}
	planet, err := a.src.FetchPlanet(ctx, link)
	if err != nil {
		return Section[swapi.Planet]{Outcome: Failed, Err: err}
	}
	return Section[swapi.Planet]{Outcome: Loaded, Items: []swapi.Planet{planet}}
}

// fetchAll resolves every link with at most limit requests in flight. Results
// keep link order. The first failure cancels the remaining fetches of the
// section and marks it Failed.
func fetchAll[T any](ctx context.Context, limit int, links []string, fetch func(context.Context, string) (T, error)) Section[T] {
	var targets []string
	for _, link := range links {
		if l, ok := swapi.Known(link); ok {
			targets = append(targets, l)
		}
	}
	if len(targets) == 0 {
		return Section[T]{Outcome: Absent}
	}

	items := make([]T, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, link := range targets {
		i, link := i, link
		g.Go(func() error {
			item, err := fetch(gctx, link)
			if err != nil {
				return fmt.Errorf("%s: %w", link, err)
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Section[T]{Outcome: Failed, Err: err}
	}
	return Section[T]{Outcome: Loaded, Items: items}
}

func sortFilms(films []swapi.Film) {
	sort.SliceStable(films, func(i, j int) bool {
		return films[i].EpisodeID < films[j].EpisodeID
	})
}

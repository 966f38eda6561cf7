// Package library builds the caller's aggregate views: favorites and ratings
// enriched with catalog details, and the dashboard statistics.
package library

import (
	"context"
	"fmt"

	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the detail lookups in flight per list.
const DefaultConcurrency = 8

type (
	FavoriteMovie  = models.Enriched[models.FavoriteMovie, models.Movie]
	FavoriteSeries = models.Enriched[models.FavoriteSeries, models.Series]
	RatedMovie     = models.Enriched[models.RatedMovie, models.Movie]
	RatedSeries    = models.Enriched[models.RatedSeries, models.Series]
)

type Favorites struct {
	Movies []FavoriteMovie
	Series []FavoriteSeries
}

type Ratings struct {
	Movies []RatedMovie
	Series []RatedSeries
}

type Library struct {
	api         *api.API
	concurrency int
	log         *logger.Logger
}

func New(a *api.API) *Library {
	return &Library{api: a, concurrency: DefaultConcurrency, log: logger.New("library")}
}

// Enrich looks up the detail of every record in parallel. A failed lookup
// leaves that record's Detail nil; it never fails the batch. The result keeps
// the input order.
func Enrich[R any, D any](ctx context.Context, records []R, id func(R) string, lookup func(context.Context, string) (*D, error), limit int, log *logger.Logger) []models.Enriched[R, D] {
	out := make([]models.Enriched[R, D], len(records))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, rec := range records {
		i, rec := i, rec
		out[i].Record = rec
		g.Go(func() error {
			detail, err := lookup(ctx, id(rec))
			if err != nil {
				if log != nil {
					log.Warn("Detail lookup for %s failed: %v", id(rec), err)
				}
				return nil
			}
			out[i].Detail = detail
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Favorites loads both favorite lists and enriches them. A failed list call
// fails the view; failed detail lookups only drop that item's details.
func (l *Library) Favorites(ctx context.Context) (*Favorites, error) {
	var (
		movies []models.FavoriteMovie
		series []models.FavoriteSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = l.api.Favorites.ListMovies(gctx)
		return err
	})
	g.Go(func() (err error) {
		series, err = l.api.Favorites.ListSeries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	res := &Favorites{}
	var eg errgroup.Group
	eg.Go(func() error {
		res.Movies = Enrich(ctx, movies, func(f models.FavoriteMovie) string { return f.MovieID.String() },
			l.api.Movies.Details, l.concurrency, l.log)
		return nil
	})
	eg.Go(func() error {
		res.Series = Enrich(ctx, series, func(f models.FavoriteSeries) string { return f.SerieID.String() },
			l.api.Series.Details, l.concurrency, l.log)
		return nil
	})
	_ = eg.Wait()

	return res, nil
}

// Ratings loads both rating lists and enriches them.
func (l *Library) Ratings(ctx context.Context) (*Ratings, error) {
	var (
		movies []models.RatedMovie
		series []models.RatedSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = l.api.Ratings.ListMovies(gctx)
		return err
	})
	g.Go(func() (err error) {
		series, err = l.api.Ratings.ListSeries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	res := &Ratings{}
	var eg errgroup.Group
	eg.Go(func() error {
		res.Movies = Enrich(ctx, movies, func(r models.RatedMovie) string { return r.MovieID.String() },
			l.api.Movies.Details, l.concurrency, l.log)
		return nil
	})
	eg.Go(func() error {
		res.Series = Enrich(ctx, series, func(r models.RatedSeries) string { return r.SerieID.String() },
			l.api.Series.Details, l.concurrency, l.log)
		return nil
	})
	_ = eg.Wait()

	return res, nil
}

// FavoriteStatuses asks for the favorite flag of every id in parallel. A
// failed check reads as "not a favorite".
func (l *Library) FavoriteStatuses(ctx context.Context, kind models.Kind, ids []string) map[string]bool {
	flags := make([]bool, len(ids))

	var g errgroup.Group
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			ok, err := l.api.Favorites.Status(ctx, kind, id)
			if err != nil {
				l.log.Debug("Favorite status for %s %s failed: %v", kind, id, err)
				return nil
			}
			flags[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]bool, len(ids))
	for i, id := range ids {
		out[id] = flags[i]
	}
	return out
}

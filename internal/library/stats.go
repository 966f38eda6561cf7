package library

import (
	"context"
	"strings"

	"github.com/Varun5711/cinerate/internal/models"
	"golang.org/x/sync/errgroup"
)

// Stats are the dashboard counters.
type Stats struct {
	MovieRatings   int
	SeriesRatings  int
	FavoriteMovies int
	FavoriteSeries int
	AverageMovie   float64
	AverageSeries  float64
	AverageOverall float64
	WithComments   int
}

// Dashboard loads the four lists in parallel. Each failed list counts as
// empty, so the dashboard always renders.
func (l *Library) Dashboard(ctx context.Context) Stats {
	var (
		favMovies   []models.FavoriteMovie
		favSeries   []models.FavoriteSeries
		rateMovies  []models.RatedMovie
		rateSeries  []models.RatedSeries
		g           errgroup.Group
		degradeList = func(name string, err error) {
			l.log.Warn("Dashboard: %s unavailable: %v", name, err)
		}
	)

	g.Go(func() error {
		var err error
		if favMovies, err = l.api.Favorites.ListMovies(ctx); err != nil {
			degradeList("favorite movies", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if favSeries, err = l.api.Favorites.ListSeries(ctx); err != nil {
			degradeList("favorite series", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rateMovies, err = l.api.Ratings.ListMovies(ctx); err != nil {
			degradeList("movie ratings", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rateSeries, err = l.api.Ratings.ListSeries(ctx); err != nil {
			degradeList("series ratings", err)
		}
		return nil
	})
	_ = g.Wait()

	s := Compute(rateMovies, rateSeries)
	s.FavoriteMovies = len(favMovies)
	s.FavoriteSeries = len(favSeries)
	return s
}

// Compute derives the rating counters from the raw lists.
func Compute(movies []models.RatedMovie, series []models.RatedSeries) Stats {
	var s Stats
	var movieSum, seriesSum float64

	for i := range movies {
		movieSum += movies[i].Vote()
		if strings.TrimSpace(movies[i].Comment) != "" {
			s.WithComments++
		}
	}
	for i := range series {
		seriesSum += series[i].Vote()
		if strings.TrimSpace(series[i].Comment) != "" {
			s.WithComments++
		}
	}

	s.MovieRatings = len(movies)
	s.SeriesRatings = len(series)
	s.AverageMovie = average(movieSum, len(movies))
	s.AverageSeries = average(seriesSum, len(series))
	s.AverageOverall = average(movieSum+seriesSum, len(movies)+len(series))
	return s
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

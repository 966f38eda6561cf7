package client

import (
	"context"
	"time"

	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/models"
)

const (
	callTimeout      = 10 * time.Second
	aggregateTimeout = 45 * time.Second
)

// Client bundles the typed API calls the screens make. Each call gets its own
// deadline because bubbletea commands have no caller context.
type Client struct {
	core *httpclient.Client
	api  *api.API
	lib  *library.Library
}

func New(core *httpclient.Client, a *api.API) *Client {
	return &Client{core: core, api: a, lib: library.New(a)}
}

func (c *Client) Images() models.Images {
	return c.api.Images
}

func (c *Client) Browse(kind models.Kind, category api.Category, page int) ([]models.Title, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if kind == models.KindSeries {
		series, err := c.api.Series.List(ctx, category, page)
		if err != nil {
			return nil, err
		}
		return c.api.Series.Titles(series), nil
	}
	movies, err := c.api.Movies.List(ctx, category, page)
	if err != nil {
		return nil, err
	}
	return c.api.Movies.Titles(movies), nil
}

func (c *Client) Search(kind models.Kind, query string, page int) ([]models.Title, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if kind == models.KindSeries {
		series, err := c.api.Series.Search(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return c.api.Series.Titles(series), nil
	}
	movies, err := c.api.Movies.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return c.api.Movies.Titles(movies), nil
}

func (c *Client) Categories(kind models.Kind) []api.Category {
	if kind == models.KindSeries {
		return c.api.Series.Categories()
	}
	return c.api.Movies.Categories()
}

// Detail is a full catalog record; exactly one of Movie and Series is set.
type Detail struct {
	Movie  *models.Movie
	Series *models.Series
}

func (c *Client) Details(kind models.Kind, id string) (*Detail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if kind == models.KindSeries {
		s, err := c.api.Series.Details(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Detail{Series: s}, nil
	}
	m, err := c.api.Movies.Details(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Movie: m}, nil
}

func (c *Client) FavoriteStatuses(kind models.Kind, ids []string) map[string]bool {
	ctx, cancel := context.WithTimeout(context.Background(), aggregateTimeout)
	defer cancel()
	return c.lib.FavoriteStatuses(ctx, kind, ids)
}

func (c *Client) ToggleFavorite(kind models.Kind, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return c.api.Favorites.Toggle(ctx, kind, id)
}

func (c *Client) ExistingRating(kind models.Kind, id string) *models.ExistingRating {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return c.api.Ratings.Existing(ctx, kind, id)
}

// Rate is shaped to be handed to the rating widget as its submit function.
func (c *Client) Rate(ctx context.Context, req api.RateRequest) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return c.api.Ratings.Rate(ctx, req)
}

func (c *Client) Favorites() (*library.Favorites, error) {
	ctx, cancel := context.WithTimeout(context.Background(), aggregateTimeout)
	defer cancel()
	return c.lib.Favorites(ctx)
}

func (c *Client) Ratings() (*library.Ratings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), aggregateTimeout)
	defer cancel()
	return c.lib.Ratings(ctx)
}

func (c *Client) Dashboard() library.Stats {
	ctx, cancel := context.WithTimeout(context.Background(), aggregateTimeout)
	defer cancel()
	return c.lib.Dashboard(ctx)
}

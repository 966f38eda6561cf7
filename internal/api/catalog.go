package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/cache"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/models"
)

// Category is one of the backend's curated catalog lists.
type Category string

const (
	CategoryPopular     Category = "popular"
	CategoryNowPlaying  Category = "now-playing"
	CategoryTopRated    Category = "top-rated"
	CategoryUpcoming    Category = "upcoming"
	CategoryAiringToday Category = "airing-today"
	CategoryOnTheAir    Category = "on-the-air"
)

var (
	MovieCategories  = []Category{CategoryPopular, CategoryNowPlaying, CategoryTopRated, CategoryUpcoming}
	SeriesCategories = []Category{CategoryPopular, CategoryAiringToday, CategoryOnTheAir, CategoryTopRated}
)

const MessageEmptySearch = "type something to search for"

// Catalog reads one kind of title. List endpoints return bare JSON arrays.
type Catalog[T any] struct {
	client     *httpclient.Client
	cache      *cache.DetailCache
	kind       models.Kind
	categories []Category
}

func (c *Catalog[T]) Kind() models.Kind {
	return c.kind
}

func (c *Catalog[T]) Categories() []Category {
	return c.categories
}

func (c *Catalog[T]) prefix() string {
	return "/" + kindPath(c.kind)
}

// List fetches one page of a category.
func (c *Catalog[T]) List(ctx context.Context, category Category, page int) ([]T, error) {
	if !c.supports(category) {
		return nil, apierr.Validation(fmt.Sprintf("unknown %s category %q", c.kind, category))
	}
	return c.list(ctx, c.prefix()+"/"+string(category), pageQuery(page), "list "+string(category))
}

// Search fetches one page of titles matching query.
func (c *Catalog[T]) Search(ctx context.Context, query string, page int) ([]T, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierr.Validation(MessageEmptySearch)
	}
	q := pageQuery(page)
	q.Set("query", query)
	return c.list(ctx, c.prefix()+"/search", q, "search")
}

// Details fetches one title, consulting the detail cache first.
func (c *Catalog[T]) Details(ctx context.Context, id string) (*T, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apierr.Validation("missing id")
	}
	key := string(c.kind) + ":" + id
	return cache.Fetch(ctx, c.cache, key, func(ctx context.Context) (*T, error) {
		var out T
		if err := c.do(ctx, c.prefix()+"/"+url.PathEscape(id), nil, "details", &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Catalog[T]) supports(category Category) bool {
	for _, cat := range c.categories {
		if cat == category {
			return true
		}
	}
	return false
}

func (c *Catalog[T]) list(ctx context.Context, path string, query url.Values, tag string) ([]T, error) {
	var out []T
	if err := c.do(ctx, path, query, tag, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Catalog[T]) do(ctx context.Context, path string, query url.Values, tag string, dest any) error {
	return c.client.DoJSON(ctx, httpclient.Request{
		Path:  path,
		Query: query,
		Tag:   string(c.kind) + " " + tag,
	}, dest)
}

type Movies struct {
	*Catalog[models.Movie]
}

func NewMovies(client *httpclient.Client, detailCache *cache.DetailCache) *Movies {
	return &Movies{&Catalog[models.Movie]{
		client:     client,
		cache:      detailCache,
		kind:       models.KindMovie,
		categories: MovieCategories,
	}}
}

func (m *Movies) Popular(ctx context.Context, page int) ([]models.Movie, error) {
	return m.List(ctx, CategoryPopular, page)
}

func (m *Movies) NowPlaying(ctx context.Context, page int) ([]models.Movie, error) {
	return m.List(ctx, CategoryNowPlaying, page)
}

func (m *Movies) TopRated(ctx context.Context, page int) ([]models.Movie, error) {
	return m.List(ctx, CategoryTopRated, page)
}

func (m *Movies) Upcoming(ctx context.Context, page int) ([]models.Movie, error) {
	return m.List(ctx, CategoryUpcoming, page)
}

// Titles converts a page of movies to the kind-neutral view.
func (m *Movies) Titles(movies []models.Movie) []models.Title {
	out := make([]models.Title, len(movies))
	for i := range movies {
		out[i] = movies[i].AsTitle()
	}
	return out
}

type Series struct {
	*Catalog[models.Series]
}

func NewSeries(client *httpclient.Client, detailCache *cache.DetailCache) *Series {
	return &Series{&Catalog[models.Series]{
		client:     client,
		cache:      detailCache,
		kind:       models.KindSeries,
		categories: SeriesCategories,
	}}
}

func (s *Series) Popular(ctx context.Context, page int) ([]models.Series, error) {
	return s.List(ctx, CategoryPopular, page)
}

func (s *Series) AiringToday(ctx context.Context, page int) ([]models.Series, error) {
	return s.List(ctx, CategoryAiringToday, page)
}

func (s *Series) OnTheAir(ctx context.Context, page int) ([]models.Series, error) {
	return s.List(ctx, CategoryOnTheAir, page)
}

func (s *Series) TopRated(ctx context.Context, page int) ([]models.Series, error) {
	return s.List(ctx, CategoryTopRated, page)
}

func (s *Series) Titles(series []models.Series) []models.Title {
	out := make([]models.Title, len(series))
	for i := range series {
		out[i] = series[i].AsTitle()
	}
	return out
}

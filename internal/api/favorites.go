package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/models"
)

type Favorites struct {
	client *httpclient.Client
}

func NewFavorites(client *httpclient.Client) *Favorites {
	return &Favorites{client: client}
}

func favoritePath(kind models.Kind) string {
	return "/favorite/" + kindPath(kind) + "/"
}

// Toggle flips the favorite flag of a subject.
func (f *Favorites) Toggle(ctx context.Context, kind models.Kind, id string) error {
	_, err := f.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   favoritePath(kind),
		Query:  url.Values{idParam(kind): {id}},
		Tag:    "toggle " + string(kind) + " favorite",
	})
	return err
}

// Status reports whether a subject is currently a favorite.
func (f *Favorites) Status(ctx context.Context, kind models.Kind, id string) (bool, error) {
	var favorite bool
	err := f.client.DoDecode(ctx, httpclient.Request{
		Path:  favoritePath(kind) + "status",
		Query: url.Values{idParam(kind): {id}},
		Tag:   string(kind) + " favorite status",
	}, func(body []byte) (err error) {
		favorite, err = parseBool(body)
		return err
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}

func (f *Favorites) ListMovies(ctx context.Context) ([]models.FavoriteMovie, error) {
	var out []models.FavoriteMovie
	if err := f.list(ctx, models.KindMovie, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Favorites) ListSeries(ctx context.Context) ([]models.FavoriteSeries, error) {
	var out []models.FavoriteSeries
	if err := f.list(ctx, models.KindSeries, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Favorites) list(ctx context.Context, kind models.Kind, dest any) error {
	path := favoritePath(kind)
	return f.client.DoJSON(ctx, httpclient.Request{Path: path, Tag: "list " + string(kind) + " favorites"}, dest)
}

// parseBool accepts a JSON boolean, with or without quotes. An empty body
// is false.
func parseBool(body []byte) (bool, error) {
	text := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if text == "" {
		return false, nil
	}
	return strconv.ParseBool(text)
}

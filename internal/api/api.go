// Package api exposes the rating backend's endpoints as typed calls on top
// of the HTTP client core.
package api

import (
	"net/url"
	"strconv"

	"github.com/Varun5711/cinerate/internal/cache"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/models"
)

type API struct {
	Auth      *Auth
	Movies    *Movies
	Series    *Series
	Ratings   *Ratings
	Favorites *Favorites
	Images    models.Images
}

// New wires every endpoint group to client. detailCache may be nil.
func New(client *httpclient.Client, detailCache *cache.DetailCache, images models.Images) *API {
	return &API{
		Auth:      NewAuth(client),
		Movies:    NewMovies(client, detailCache),
		Series:    NewSeries(client, detailCache),
		Ratings:   NewRatings(client),
		Favorites: NewFavorites(client),
		Images:    images,
	}
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

// idParam is the query parameter naming the subject of a rating or favorite.
func idParam(kind models.Kind) string {
	if kind == models.KindSeries {
		return "serieId"
	}
	return "movieId"
}

func kindPath(kind models.Kind) string {
	if kind == models.KindSeries {
		return "series"
	}
	return "movies"
}

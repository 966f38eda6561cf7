package models

import (
	"strconv"
	"strings"
)

// RatedMovie is one of the caller's movie ratings as stored by the backend.
// MyVote travels as a string.
type RatedMovie struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	MovieID    ID     `json:"movieId"`
	MyVote     string `json:"myVote"`
	Comment    string `json:"comment,omitempty"`
	Nickname   string `json:"nickname"`
	PosterPath string `json:"poster_path"`
	CreatedAt  string `json:"created_at"`
}

func (r *RatedMovie) Vote() float64 {
	return parseVote(r.MyVote)
}

type RatedSeries struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	SerieID    ID     `json:"serieId"`
	MyVote     string `json:"myVote"`
	Comment    string `json:"comment,omitempty"`
	Nickname   string `json:"nickname"`
	PosterPath string `json:"poster_path"`
	CreatedAt  string `json:"created_at"`
}

func (r *RatedSeries) Vote() float64 {
	return parseVote(r.MyVote)
}

func parseVote(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

type FavoriteMovie struct {
	ID       ID     `json:"id"`
	MovieID  ID     `json:"movieId"`
	Title    string `json:"title,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Favorite bool   `json:"favorite"`
}

type FavoriteSeries struct {
	ID       ID     `json:"id"`
	SerieID  ID     `json:"serieId"`
	Title    string `json:"title,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Favorite bool   `json:"favorite"`
}

// Enriched pairs a stored record with the catalog detail fetched for it.
// Detail stays nil when the lookup failed.
type Enriched[R any, D any] struct {
	Record R
	Detail *D
}

func (e Enriched[R, D]) HasDetail() bool {
	return e.Detail != nil
}

// ExistingRating is what the rating dialog needs to open in edit mode.
type ExistingRating struct {
	Vote    float64
	Comment string
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/rating"
)

// RateRequest describes one rating upsert. Comment is omitted when empty.
type RateRequest struct {
	Kind       models.Kind
	SubjectID  string
	Value      float64
	Title      string
	PosterPath string
	Comment    string
}

type Ratings struct {
	client *httpclient.Client
	log    *logger.Logger
}

func NewRatings(client *httpclient.Client) *Ratings {
	return &Ratings{client: client, log: logger.New("ratings")}
}

// Rate upserts the caller's rating for a subject. The backend keeps the last
// write per subject.
func (r *Ratings) Rate(ctx context.Context, req RateRequest) error {
	q := url.Values{}
	q.Set(idParam(req.Kind), req.SubjectID)
	q.Set("rating", rating.Format(req.Value))
	q.Set("title", req.Title)
	q.Set("poster_path", req.PosterPath)
	if c := strings.TrimSpace(req.Comment); c != "" {
		q.Set("comment", c)
	}

	_, err := r.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/rate/" + kindPath(req.Kind),
		Query:  q,
		Tag:    "rate " + string(req.Kind),
	})
	return err
}

func (r *Ratings) ListMovies(ctx context.Context) ([]models.RatedMovie, error) {
	var out []models.RatedMovie
	if err := r.list(ctx, models.KindMovie, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Ratings) ListSeries(ctx context.Context) ([]models.RatedSeries, error) {
	var out []models.RatedSeries
	if err := r.list(ctx, models.KindSeries, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Ratings) list(ctx context.Context, kind models.Kind, dest any) error {
	path := "/rate/" + kindPath(kind)
	return r.client.DoJSON(ctx, httpclient.Request{Path: path, Tag: "list " + string(kind) + " ratings"}, dest)
}

// FindMovie returns the caller's rating for movieID. There is no per-subject
// endpoint, so the full list is filtered; any failure reads as "not rated".
func (r *Ratings) FindMovie(ctx context.Context, movieID string) *models.RatedMovie {
	list, err := r.ListMovies(ctx)
	if err != nil {
		r.log.Debug("Rating lookup for movie %s failed: %v", movieID, err)
		return nil
	}
	for i := range list {
		if list[i].MovieID.String() == movieID {
			return &list[i]
		}
	}
	return nil
}

func (r *Ratings) FindSeries(ctx context.Context, serieID string) *models.RatedSeries {
	list, err := r.ListSeries(ctx)
	if err != nil {
		r.log.Debug("Rating lookup for series %s failed: %v", serieID, err)
		return nil
	}
	for i := range list {
		if list[i].SerieID.String() == serieID {
			return &list[i]
		}
	}
	return nil
}

// Existing returns what the rating dialog needs to open in edit mode, or nil.
func (r *Ratings) Existing(ctx context.Context, kind models.Kind, id string) *models.ExistingRating {
	if kind == models.KindSeries {
		if found := r.FindSeries(ctx, id); found != nil {
			return &models.ExistingRating{Vote: found.Vote(), Comment: found.Comment}
		}
		return nil
	}
	if found := r.FindMovie(ctx, id); found != nil {
		return &models.ExistingRating{Vote: found.Vote(), Comment: found.Comment}
	}
	return nil
}

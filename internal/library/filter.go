package library

import (
	"strings"

	"github.com/Varun5711/cinerate/internal/models"
)

// KindFilter narrows an aggregate view to one kind. The zero value keeps both.
type KindFilter string

const (
	KindAll    KindFilter = ""
	KindMovies KindFilter = "movie"
	KindSeries KindFilter = "series"
)

func ParseKindFilter(s string) KindFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return KindMovies
	case "series", "serie", "tv":
		return KindSeries
	}
	return KindAll
}

func (k KindFilter) Includes(kind models.Kind) bool {
	return k == KindAll || string(k) == string(kind)
}

// Entry is one row of an aggregate view, whatever its kind.
type Entry struct {
	Kind       models.Kind
	SubjectID  string
	Title      string
	Original   string
	Year       string
	PosterPath string
	Vote       float64
	Comment    string
	CreatedAt  string
	HasDetail  bool
}

// Matches reports whether term appears in the entry's titles, ignoring case.
func (e Entry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Original), term)
}

// Filter keeps the entries of the selected kind whose titles contain term.
// A minVote above zero also drops entries rated below it.
func Filter(entries []Entry, kind KindFilter, term string, minVote float64) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !kind.Includes(e.Kind) || !e.Matches(term) {
			continue
		}
		if minVote > 0 && e.Vote < minVote {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f *Favorites) Entries() []Entry {
	out := make([]Entry, 0, len(f.Movies)+len(f.Series))
	for _, m := range f.Movies {
		e := Entry{Kind: models.KindMovie, SubjectID: m.Record.MovieID.String(), Title: m.Record.Title}
		if m.HasDetail() {
			fillFromTitle(&e, m.Detail.AsTitle())
		}
		out = append(out, e)
	}
	for _, s := range f.Series {
		e := Entry{Kind: models.KindSeries, SubjectID: s.Record.SerieID.String(), Title: s.Record.Title}
		if s.HasDetail() {
			fillFromTitle(&e, s.Detail.AsTitle())
		}
		out = append(out, e)
	}
	return out
}

func (r *Ratings) Entries() []Entry {
	out := make([]Entry, 0, len(r.Movies)+len(r.Series))
	for _, m := range r.Movies {
		e := Entry{
			Kind:       models.KindMovie,
			SubjectID:  m.Record.MovieID.String(),
			Title:      m.Record.Title,
			PosterPath: m.Record.PosterPath,
			Vote:       m.Record.Vote(),
			Comment:    m.Record.Comment,
			CreatedAt:  m.Record.CreatedAt,
		}
		if m.HasDetail() {
			fillFromTitle(&e, m.Detail.AsTitle())
		}
		out = append(out, e)
	}
	for _, s := range r.Series {
		e := Entry{
			Kind:       models.KindSeries,
			SubjectID:  s.Record.SerieID.String(),
			Title:      s.Record.Title,
			PosterPath: s.Record.PosterPath,
			Vote:       s.Record.Vote(),
			Comment:    s.Record.Comment,
			CreatedAt:  s.Record.CreatedAt,
		}
		if s.HasDetail() {
			fillFromTitle(&e, s.Detail.AsTitle())
		}
		out = append(out, e)
	}
	return out
}

func fillFromTitle(e *Entry, t models.Title) {
	e.HasDetail = true
	if t.Name != "" {
		e.Title = t.Name
	}
	e.Original = t.OriginalName
	e.Year = t.Year
	if e.PosterPath == "" {
		e.PosterPath = t.PosterPath
	}
}

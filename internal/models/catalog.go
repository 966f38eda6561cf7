package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ID accepts both JSON numbers and strings; the backend is not consistent
// about which one it sends for subject ids.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path,omitempty"`
}

type Movie struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	OriginalTitle       string    `json:"original_title"`
	Overview            string    `json:"overview,omitempty"`
	Homepage            string    `json:"homepage,omitempty"`
	PosterPath          string    `json:"poster_path,omitempty"`
	BackdropPath        string    `json:"backdrop_path,omitempty"`
	ReleaseDate         string    `json:"release_date,omitempty"`
	VoteAverage         float64   `json:"vote_average,omitempty"`
	VoteCount           int       `json:"vote_count,omitempty"`
	GenreIDs            []int     `json:"genre_ids,omitempty"`
	Genres              []Genre   `json:"genres,omitempty"`
	Adult               bool      `json:"adult,omitempty"`
	OriginalLanguage    string    `json:"original_language,omitempty"`
	Popularity          float64   `json:"popularity,omitempty"`
	Runtime             int       `json:"runtime,omitempty"`
	Budget              int64     `json:"budget,omitempty"`
	Revenue             int64     `json:"revenue,omitempty"`
	ProductionCompanies []Company `json:"production_companies,omitempty"`
}

func (m *Movie) Year() string {
	return yearOf(m.ReleaseDate)
}

type Person struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
}

type Episode struct {
	Name          string `json:"name"`
	AirDate       string `json:"air_date"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
}

type Season struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path,omitempty"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date,omitempty"`
}

type Series struct {
	ID                  int       `json:"id"`
	Name                string    `json:"name"`
	OriginalName        string    `json:"original_name"`
	Overview            string    `json:"overview,omitempty"`
	Homepage            string    `json:"homepage,omitempty"`
	PosterPath          string    `json:"poster_path,omitempty"`
	BackdropPath        string    `json:"backdrop_path,omitempty"`
	FirstAirDate        string    `json:"first_air_date,omitempty"`
	LastAirDate         string    `json:"last_air_date,omitempty"`
	VoteAverage         float64   `json:"vote_average,omitempty"`
	VoteCount           int       `json:"vote_count,omitempty"`
	GenreIDs            []int     `json:"genre_ids,omitempty"`
	Genres              []Genre   `json:"genres,omitempty"`
	Adult               bool      `json:"adult,omitempty"`
	OriginalLanguage    string    `json:"original_language,omitempty"`
	Popularity          float64   `json:"popularity,omitempty"`
	NumberOfEpisodes    int       `json:"number_of_episodes,omitempty"`
	NumberOfSeasons     int       `json:"number_of_seasons,omitempty"`
	EpisodeRunTime      []int     `json:"episode_run_time,omitempty"`
	Status              string    `json:"status,omitempty"`
	Type                string    `json:"type,omitempty"`
	Networks            []Company `json:"networks,omitempty"`
	ProductionCompanies []Company `json:"production_companies,omitempty"`
	CreatedBy           []Person  `json:"created_by,omitempty"`
	LastEpisodeToAir    *Episode  `json:"last_episode_to_air,omitempty"`
	NextEpisodeToAir    *Episode  `json:"next_episode_to_air,omitempty"`
	Seasons             []Season  `json:"seasons,omitempty"`
}

func (s *Series) Year() string {
	return yearOf(s.FirstAirDate)
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

// GenreNames joins genre names for display.
func GenreNames(genres []Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// Title is the common view of a movie or series used by lists and filters.
type Title struct {
	Kind         Kind
	ID           int
	Name         string
	OriginalName string
	Year         string
	Overview     string
	PosterPath   string
	BackdropPath string
	VoteAverage  float64
}

func (m *Movie) AsTitle() Title {
	return Title{
		Kind:         KindMovie,
		ID:           m.ID,
		Name:         m.Title,
		OriginalName: m.OriginalTitle,
		Year:         m.Year(),
		Overview:     m.Overview,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		VoteAverage:  m.VoteAverage,
	}
}

func (s *Series) AsTitle() Title {
	return Title{
		Kind:         KindSeries,
		ID:           s.ID,
		Name:         s.Name,
		OriginalName: s.OriginalName,
		Year:         s.Year(),
		Overview:     s.Overview,
		PosterPath:   s.PosterPath,
		BackdropPath: s.BackdropPath,
		VoteAverage:  s.VoteAverage,
	}
}

func (t Title) IDString() string {
	return strconv.Itoa(t.ID)
}

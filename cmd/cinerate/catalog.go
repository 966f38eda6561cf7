package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/qrcode"
	"github.com/spf13/cobra"
)

func parseKind(s string) (models.Kind, error) {
	switch library.ParseKindFilter(s) {
	case library.KindMovies:
		return models.KindMovie, nil
	case library.KindSeries:
		return models.KindSeries, nil
	}
	return "", fmt.Errorf("unknown kind %q, use movie or series", s)
}

func kindNoun(kind models.Kind) string {
	if kind == models.KindSeries {
		return "series"
	}
	return "movies"
}

func (c *cli) list(ctx context.Context, kind models.Kind, category api.Category, page int) ([]models.Title, error) {
	if kind == models.KindSeries {
		series, err := c.app.API.Series.List(ctx, category, page)
		if err != nil {
			return nil, err
		}
		return c.app.API.Series.Titles(series), nil
	}
	movies, err := c.app.API.Movies.List(ctx, category, page)
	if err != nil {
		return nil, err
	}
	return c.app.API.Movies.Titles(movies), nil
}

func (c *cli) search(ctx context.Context, kind models.Kind, query string, page int) ([]models.Title, error) {
	if kind == models.KindSeries {
		series, err := c.app.API.Series.Search(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return c.app.API.Series.Titles(series), nil
	}
	movies, err := c.app.API.Movies.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return c.app.API.Movies.Titles(movies), nil
}

// details fetches one record and its common title view.
func (c *cli) details(ctx context.Context, kind models.Kind, id string) (any, models.Title, error) {
	if kind == models.KindSeries {
		s, err := c.app.API.Series.Details(ctx, id)
		if err != nil {
			return nil, models.Title{}, err
		}
		return s, s.AsTitle(), nil
	}
	m, err := c.app.API.Movies.Details(ctx, id)
	if err != nil {
		return nil, models.Title{}, err
	}
	return m, m.AsTitle(), nil
}

func (c *cli) catalogCmd(kind models.Kind) *cobra.Command {
	noun := kindNoun(kind)
	cmd := &cobra.Command{
		Use:   noun,
		Short: "Browse " + noun,
	}

	categories := api.MovieCategories
	if kind == models.KindSeries {
		categories = api.SeriesCategories
	}
	for _, category := range categories {
		cmd.AddCommand(c.categoryCmd(kind, category))
	}
	cmd.AddCommand(c.searchCmd(kind), c.showCmd(kind), c.shareCmd(kind))
	return cmd
}

func (c *cli) categoryCmd(kind models.Kind, category api.Category) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   string(category),
		Short: fmt.Sprintf("List %s %s", strings.ReplaceAll(string(category), "-", " "), kindNoun(kind)),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := c.list(cmd.Context(), kind, category, page)
			if err != nil {
				return err
			}
			return c.emit(titles, func() string { return titlesTable(titles) })
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func (c *cli) searchCmd(kind models.Kind) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search " + kindNoun(kind) + " by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := c.search(cmd.Context(), kind, strings.Join(args, " "), page)
			if err != nil {
				return err
			}
			return c.emit(titles, func() string { return titlesTable(titles) })
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func (c *cli) showCmd(kind models.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one title with your rating and favorite status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			record, title, err := c.details(ctx, kind, id)
			if err != nil {
				return err
			}

			var mine *models.ExistingRating
			var favorite bool
			if c.app.API.Auth.IsAuthenticated(ctx) {
				mine = c.app.API.Ratings.Existing(ctx, kind, id)
				favorite, _ = c.app.API.Favorites.Status(ctx, kind, id)
			}

			out := struct {
				Detail   any                    `json:"detail"`
				Mine     *models.ExistingRating `json:"mine,omitempty"`
				Favorite bool                   `json:"favorite"`
				Share    string                 `json:"share"`
			}{record, mine, favorite, qrcode.ShareURL(kind, id)}

			return c.emit(out, func() string {
				rows := [][]string{
					{"Title", title.Name},
					{"Original", title.OriginalName},
					{"Year", title.Year},
					{"Score", vote(title.VoteAverage)},
					{"Poster", c.app.API.Images.Poster(title.PosterPath)},
					{"Favorite", strconv.FormatBool(favorite)},
					{"Share", out.Share},
				}
				if mine != nil {
					rows = append(rows, []string{"My vote", vote(mine.Vote)})
					if mine.Comment != "" {
						rows = append(rows, []string{"My comment", mine.Comment})
					}
				}
				table := renderTable([]string{"FIELD", "VALUE"}, rows)
				if title.Overview == "" {
					return table
				}
				return table + "\n\n" + title.Overview
			})
		},
	}
}

func (c *cli) shareCmd(kind models.Kind) *cobra.Command {
	var png string
	var size int
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Print a QR code linking to the title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := qrcode.ShareURL(kind, args[0])
			if png != "" {
				if err := qrcode.WritePNG(url, png, size); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Wrote %s for %s\n", png, url)
				return nil
			}
			code, err := qrcode.Terminal(url)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, code)
			fmt.Fprintln(c.out, url)
			return nil
		},
	}
	cmd.Flags().StringVar(&png, "png", "", "Write a PNG image to this path instead")
	cmd.Flags().IntVar(&size, "size", 256, "PNG size in pixels")
	return cmd
}

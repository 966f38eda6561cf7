package main

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/rating"
	"github.com/spf13/cobra"
)

// parseRating accepts what the star widget can produce: half steps in (0, 10].
func parseRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !rating.Valid(v) || math.Mod(v, rating.Step) != 0 {
		return 0, apierr.Validation(rating.MessageInvalidRating)
	}
	return v, nil
}

func (c *cli) rateCmd() *cobra.Command {
	var comment, title string

	cmd := &cobra.Command{
		Use:   "rate <movie|series> <id> <rating>",
		Short: "Rate a title from 0.5 to 10 in half stars",
		Long: `Rate a title from 0.5 to 10 in half stars. Rating a title again
replaces the earlier rating.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]
			value, err := parseRating(args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			req := api.RateRequest{Kind: kind, SubjectID: id, Title: title}
			if _, t, err := c.details(ctx, kind, id); err == nil {
				req.Title, req.PosterPath = t.Name, t.PosterPath
			} else if title == "" || apierr.IsNotFound(err) {
				return err
			}

			w := rating.New(0, "")
			w.Click(value)
			w.SetComment(comment)
			err = w.Submit(ctx, func(ctx context.Context, value float64, comment string) error {
				req.Value, req.Comment = value, comment
				return c.app.API.Ratings.Rate(ctx, req)
			})
			if err != nil {
				return err
			}

			return c.emit(req, func() string {
				return fmt.Sprintf("Rated %s %s/10 (%s)", req.Title, rating.Format(value), rating.Label(value))
			})
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Optional comment")
	cmd.Flags().StringVar(&title, "title", "", "Title to store when the catalog lookup fails")
	return cmd
}

type listFilter struct {
	kind    string
	term    string
	minVote float64
}

func (f *listFilter) bind(cmd *cobra.Command, votes bool) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "Only movie or series")
	cmd.Flags().StringVarP(&f.term, "search", "s", "", "Only titles containing this text")
	if votes {
		cmd.Flags().Float64Var(&f.minVote, "min", 0, "Only ratings at or above this value")
	}
}

func (f *listFilter) apply(entries []library.Entry) []library.Entry {
	return library.Filter(entries, library.ParseKindFilter(f.kind), f.term, f.minVote)
}

func (c *cli) ratingsCmd() *cobra.Command {
	var filter listFilter
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "List your ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.lib.Ratings(cmd.Context())
			if err != nil {
				return err
			}
			entries := filter.apply(r.Entries())
			return c.emit(entries, func() string { return entriesTable(entries, true) })
		},
	}
	filter.bind(cmd, true)
	return cmd
}

func (c *cli) favoriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Manage favorites",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <movie|series> <id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := c.app.API.Favorites.Toggle(ctx, kind, args[1]); err != nil {
				return err
			}
			now, err := c.app.API.Favorites.Status(ctx, kind, args[1])
			if err != nil {
				return err
			}
			return c.emit(map[string]bool{"favorite": now}, func() string {
				if now {
					return "Added to favorites."
				}
				return "Removed from favorites."
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <movie|series> <id>",
		Short: "Show whether a title is a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			fav, err := c.app.API.Favorites.Status(cmd.Context(), kind, args[1])
			if err != nil {
				return err
			}
			return c.emit(map[string]bool{"favorite": fav}, func() string {
				return strconv.FormatBool(fav)
			})
		},
	})

	var filter listFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List your favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.lib.Favorites(cmd.Context())
			if err != nil {
				return err
			}
			entries := filter.apply(f.Entries())
			return c.emit(entries, func() string { return entriesTable(entries, false) })
		},
	}
	filter.bind(list, false)
	cmd.AddCommand(list)

	return cmd
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show rating and favorite counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !c.app.API.Auth.IsAuthenticated(ctx) {
				return errNotLoggedIn
			}
			s := c.lib.Dashboard(ctx)
			return c.emit(s, func() string {
				rows := [][]string{
					{"Movies rated", strconv.Itoa(s.MovieRatings)},
					{"Series rated", strconv.Itoa(s.SeriesRatings)},
					{"Favorite movies", strconv.Itoa(s.FavoriteMovies)},
					{"Favorite series", strconv.Itoa(s.FavoriteSeries)},
					{"With comments", strconv.Itoa(s.WithComments)},
					{"Movie average", vote(s.AverageMovie)},
					{"Series average", vote(s.AverageSeries)},
					{"Overall average", vote(s.AverageOverall)},
				}
				return renderTable([]string{"METRIC", "VALUE"}, rows)
			})
		},
	}
}

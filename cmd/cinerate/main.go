package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/bootstrap"
	"github.com/Varun5711/cinerate/internal/config"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/spf13/cobra"
)

func main() {
	c := newCLI()
	err := c.rootCmd().Execute()
	// a failed command skips the post-run hook
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+describe(err))
		os.Exit(1)
	}
}

// cli holds what every command needs once the root pre-run has wired it.
type cli struct {
	in         io.Reader
	stdin      *bufio.Reader
	out        io.Writer
	loadConfig func() (*config.Config, error)

	apiURL    string
	asJSON    bool
	ephemeral bool

	app     *bootstrap.App
	lib     *library.Library
	logFile io.Closer
}

func newCLI() *cli {
	return &cli{
		in:         os.Stdin,
		out:        os.Stdout,
		loadConfig: config.Load,
	}
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cinerate",
		Short:         "Rate movies and series from the terminal",
		Version:       httpclient.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	cmd.PersistentFlags().StringVar(&c.apiURL, "api", "", "Backend base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print JSON instead of tables")
	cmd.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "Keep the session in memory only")

	cmd.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.catalogCmd(models.KindMovie),
		c.catalogCmd(models.KindSeries),
		c.rateCmd(),
		c.ratingsCmd(),
		c.favoriteCmd(),
		c.dashboardCmd(),
	)
	return cmd
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
	}
	if c.ephemeral {
		cfg.Session.Backend = bootstrap.BackendMemory
	}

	// Failures are reported on stderr already; the details go to the log.
	if f, err := bootstrap.OpenLogFile(cfg.Log.File); err == nil {
		logger.SetDefaultOutput(f)
		logger.SetDefaultLevel(logger.ParseLevel(cfg.Log.Level))
		c.logFile = f
	} else {
		logger.SetDefaultOutput(io.Discard)
	}

	app, err := bootstrap.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	c.app = app
	c.lib = library.New(app.API)
	return nil
}

func (c *cli) close() error {
	var err error
	if c.app != nil {
		err = c.app.Close()
		c.app = nil
	}
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
	return err
}

// describe flattens an error into the title and description users see.
// Errors raised before any request, like bad arguments, print as they are.
func describe(err error) string {
	if _, ok := apierr.As(err); !ok {
		return err.Error()
	}
	title, desc := apierr.Describe(err)
	if desc == "" || desc == title {
		return title
	}
	return title + ": " + desc
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/cmd/tui/ui"
	"github.com/Varun5711/cinerate/internal/bootstrap"
	"github.com/Varun5711/cinerate/internal/config"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.OpenLogFile(cfg.Log.File)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.SetDefaultOutput(logFile)
	logger.SetDefaultLevel(logger.ParseLevel(cfg.Log.Level))

	log := logger.New("tui")
	// Stray standard log output would draw over the alt screen.
	log.SetStdLog()

	nav := client.NewNavigator(ui.Route(ui.LoginView))

	app, err := bootstrap.Open(context.Background(), cfg, httpclient.WithNavigator(nav))
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	log.Info("Starting against %s", cfg.API.BaseURL)

	p := tea.NewProgram(
		ui.NewModel(client.New(app.Core, app.API), nav),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	nav.Attach(p)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

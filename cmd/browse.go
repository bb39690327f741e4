package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"epubshelf/internal/config"
	"epubshelf/internal/download"
	"epubshelf/internal/eventbus"
	"epubshelf/internal/provider"
	"epubshelf/internal/ui"
)

const logFileName = "epubshelf.log"

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the terminal catalog browser",
		Long: `Opens the interactive catalog browser.

Categories are listed on the left and the books of the active category on
the right. Press / to search, [ and ] to switch category, enter to
download the focused book and ? for help.`,
		Example: `  # Browse the published catalog
  epubshelf

  # Browse a local catalog file
  epubshelf browse --source ./docs/data/books.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrowse(cmd)
		},
	}
}

func (a *app) runBrowse(cmd *cobra.Command) error {
	// The terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer logFile.Close()
	a.setupLogging(logFile)

	if !a.cfgExists {
		if err := a.cfgSvc.Save(a.cfg); err != nil {
			slog.Warn("Failed to save default config", "path", a.cfgSvc.Path(), "error", err)
		} else {
			slog.Info("Created default config", "path", a.cfgSvc.Path())
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := eventbus.New()
	// Cancel in-flight downloads before waiting for bus handlers
	defer func() {
		cancel()
		bus.Close()
	}()

	_ = download.NewService(ctx, bus, config.ExpandHome(a.cfg.DownloadDir), nil) // subscribes to download requests
	model := ui.NewModel(ctx, bus, a.cfg, provider.New(a.cfg.Source))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventDownloadCompleted, forward)
	bus.Subscribe(eventbus.EventError, forward)

	slog.Info("Starting UI", "source", a.cfg.Source)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("Error running program", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("UI exited normally")
	return nil
}

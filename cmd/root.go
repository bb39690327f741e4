package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"epubshelf/internal/config"
)

// app carries the state shared by every subcommand
type app struct {
	configPath string
	source     string
	debug      bool

	cfgSvc    config.ConfigService
	cfg       *config.Config
	cfgExists bool
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "epubshelf",
		Short: "Browse, search and download a catalog of EPUB books",
		Long: `epubshelf browses a catalog of EPUB books grouped by category.

The catalog is a JSON list of records (title, category, subcategory,
downloadUrl) fetched from a URL or read from a local file. Run without a
subcommand to open the terminal browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrowse(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/epubshelf/config.toml)")
	cmd.PersistentFlags().StringVarP(&a.source, "source", "s", "", "Catalog URL or file (.json, .jsonl, .yaml, .parquet)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newBrowseCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newDownloadCmd(a))

	return cmd
}

// loadConfig resolves the config: file, then environment, then flags
func (a *app) loadConfig() error {
	if a.configPath != "" {
		a.cfgSvc = config.NewConfigServiceForPath(config.ExpandHome(a.configPath))
	} else {
		a.cfgSvc = config.NewConfigService()
	}

	if _, err := os.Stat(a.cfgSvc.Path()); err == nil {
		a.cfgExists = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config: %w", err)
	}

	cfg, err := a.cfgSvc.Load()
	if err != nil {
		return err
	}
	if a.source != "" {
		cfg.Source = a.source
	}
	a.cfg = cfg
	return nil
}

// setupLogging installs the default slog logger writing to w
func (a *app) setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

package cmd

import (
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"epubshelf/internal/config"
	"epubshelf/internal/provider"
	"epubshelf/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a web page",
		Long: `Starts the catalog web page on the given address.

The catalog is fetched once at startup. The page offers the same
category navigation and search as the terminal browser, and the raw
records are available at /data/books.json.`,
		Example: `  # Serve on the configured address (default :8080)
  epubshelf serve

  # Serve a local catalog on a custom port
  epubshelf serve --addr :3000 --source ./docs/data/books.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(cmd.ErrOrStderr())

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			var about template.HTML
			if a.cfg.Server.AboutFile != "" {
				var err error
				about, err = web.LoadAbout(config.ExpandHome(a.cfg.Server.AboutFile))
				if err != nil {
					return fmt.Errorf("load about page: %w", err)
				}
			}

			srv, err := web.New(cmd.Context(), provider.New(a.cfg.Source), web.Options{
				Addr:           addr,
				About:          about,
				RequestTimeout: 30 * time.Second,
			})
			if err != nil {
				return err
			}

			slog.Info("Catalog available", "addr", addr, "source", a.cfg.Source)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}

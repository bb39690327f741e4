package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"epubshelf/internal/eventbus"
	"epubshelf/internal/indexer"
)

func newGenerateCmd(a *app) *cobra.Command {
	var root, output string
	var dirs []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build books.json from a checkout of the epub repository",
		Long: `Scans the category directories of a repository checkout for .epub
files and writes the catalog JSON consumed by browse, list and serve.

Each file becomes one record: the first directory level is the category,
the second the subcategory, and the download URL points at the raw file
on GitHub.`,
		Example: `  # Regenerate the published catalog from the repository root
  epubshelf generate

  # Scan other directories into a custom file
  epubshelf generate --root ~/src/epubs --dir sefaria --dir daat -o books.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(cmd.ErrOrStderr())

			gen := a.cfg.Generator
			if len(dirs) == 0 {
				dirs = gen.Directories
			}
			if output == "" {
				output = gen.Output
			}

			bus := eventbus.New()
			defer bus.Close()
			bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
				if event, ok := e.(eventbus.ScanCompletedEvent); ok {
					slog.Debug("Scan completed", "books", event.BooksFound)
				}
			})

			ix := indexer.New(indexer.Options{
				Root:        root,
				Directories: dirs,
				RepoUser:    gen.RepoUser,
				RepoName:    gen.RepoName,
				Branch:      gen.Branch,
			}, bus)

			books, err := ix.Scan(cmd.Context())
			if err != nil {
				return err
			}
			if err := indexer.WriteJSON(books, output); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Found %d EPUB files. Saved to %s\n", len(books), output)
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Repository checkout to scan")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default from config, docs/data/books.json)")
	cmd.Flags().StringArrayVar(&dirs, "dir", nil, "Category directory to scan, repeatable (default from config)")

	return cmd
}

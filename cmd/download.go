package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"epubshelf/internal/config"
	"epubshelf/internal/domain"
	"epubshelf/internal/download"
)

func newDownloadCmd(a *app) *cobra.Command {
	var filters filterFlags
	var dir string

	cmd := &cobra.Command{
		Use:   "download [title...]",
		Short: "Download books from the catalog",
		Long: `Downloads the books matching the filters into the download directory.
When titles are given only books with exactly those titles are fetched.
Files that already exist are skipped.`,
		Example: `  # One book by title
  epubshelf download "מסילת ישרים"

  # A whole category
  epubshelf download --category sefaria`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(cmd.ErrOrStderr())

			controller, err := selectBooks(cmd, a, discardPresenter{}, filters)
			if err != nil {
				return err
			}

			books := controller.Visible()
			if len(args) > 0 {
				books = slices.DeleteFunc(books, func(b domain.Book) bool {
					return !slices.Contains(args, b.Title)
				})
			}
			if len(books) == 0 {
				return download.ErrNothingToDownload
			}

			if dir == "" {
				dir = a.cfg.DownloadDir
			}
			svc := download.NewService(cmd.Context(), nil, config.ExpandHome(dir), nil)

			out := cmd.OutOrStdout()
			var failed int
			for _, r := range svc.FetchAll(cmd.Context(), books) {
				switch {
				case r.Err != nil:
					failed++
					fmt.Fprintf(out, "failed   %s: %v\n", r.Book.Title, r.Err)
				case r.Skipped:
					fmt.Fprintf(out, "exists   %s\n", r.Path)
				default:
					fmt.Fprintf(out, "saved    %s\n", r.Path)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, len(books))
			}
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Target directory (default from config)")

	return cmd
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"epubshelf/internal/catalog"
	"epubshelf/internal/domain"
	"epubshelf/internal/provider"
	"epubshelf/internal/report"
)

// filterFlags are shared by the commands that select books from the catalog
type filterFlags struct {
	category string
	search   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", domain.AllCategories, "Only books of this category")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Only books whose title, category or subcategory contains this text")
}

type listOptions struct {
	filterFlags
	showURLs       bool
	showCategories bool
	summary        bool
	asJSON         bool
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the books of the catalog",
		Long: `Prints the books matching the category and search filters, one per
line as title and category separated by a tab.`,
		Example: `  # Every book
  epubshelf list

  # Books of one category whose title mentions a word
  epubshelf list --category "תנ\"ך" --search רש"י

  # Book counts per category
  epubshelf list --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(cmd.ErrOrStderr())
			return runList(cmd, a, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.showURLs, "urls", false, "Include the download URL of each book")
	cmd.Flags().BoolVar(&opts.showCategories, "categories", false, "Print the category list before the books")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print book counts per category instead of the books")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the matching books as JSON")
	cmd.MarkFlagsMutuallyExclusive("summary", "json")

	return cmd
}

func runList(cmd *cobra.Command, a *app, opts *listOptions) error {
	out := cmd.OutOrStdout()

	var presenter catalog.Presenter
	var text *report.TextPresenter
	if opts.summary || opts.asJSON {
		presenter = discardPresenter{}
	} else {
		text = report.NewTextPresenter(out, opts.showCategories, opts.showURLs)
		presenter = text
	}

	controller, err := selectBooks(cmd, a, presenter, opts.filterFlags)
	if err != nil {
		return err
	}
	if text != nil {
		return text.Err()
	}

	if opts.summary {
		_, err := io.WriteString(out, report.Summary(controller.Visible()))
		return err
	}

	books := controller.Visible()
	if books == nil {
		books = []domain.Book{}
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

// selectBooks loads the catalog through a controller with the filters
// applied. Rendering goes to presenter as part of the load.
func selectBooks(cmd *cobra.Command, a *app, presenter catalog.Presenter, f filterFlags) (*catalog.Controller, error) {
	controller := catalog.NewController(presenter, nil, 0)
	controller.SetActiveCategory(f.category)
	controller.SetSearchTerm(f.search)
	controller.Load(cmd.Context(), provider.New(a.cfg.Source))

	if controller.State() == catalog.StateLoadFailed {
		return controller, fmt.Errorf("load catalog from %s: %w", a.cfg.Source, controller.Err())
	}
	return controller, nil
}

// discardPresenter is used when the caller reads the controller state
// instead of the rendered output
type discardPresenter struct{}

func (discardPresenter) RenderCategories([]string, string) {}
func (discardPresenter) RenderBooks([]domain.Book)        {}
func (discardPresenter) RenderNoResults()                 {}
func (discardPresenter) RenderLoadError()                 {}

var _ catalog.Presenter = discardPresenter{}

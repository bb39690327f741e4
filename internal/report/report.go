// Package report prints catalog views as plain text for the command line.
package report

import (
	"fmt"
	"io"
	"strings"

	"epubshelf/internal/catalog"
	"epubshelf/internal/domain"
)

// TextPresenter writes each render to w. Output is line oriented so it
// can be piped to other tools.
type TextPresenter struct {
	w              io.Writer
	showCategories bool
	showURLs       bool
	rendered       int
	err            error
}

// NewTextPresenter creates a presenter writing to w
func NewTextPresenter(w io.Writer, showCategories, showURLs bool) *TextPresenter {
	return &TextPresenter{w: w, showCategories: showCategories, showURLs: showURLs}
}

// Rendered reports how many books the last book render listed
func (p *TextPresenter) Rendered() int {
	return p.rendered
}

// Err returns the first write error
func (p *TextPresenter) Err() error {
	return p.err
}

func (p *TextPresenter) RenderCategories(categories []string, active string) {
	if !p.showCategories {
		return
	}
	for _, name := range categories {
		marker := " "
		if name == active {
			marker = "*"
		}
		p.printf("%s %s\n", marker, name)
	}
	p.printf("\n")
}

func (p *TextPresenter) RenderBooks(books []domain.Book) {
	p.rendered = len(books)
	for _, b := range books {
		line := b.Title + "\t" + b.CategoryLabel()
		if p.showURLs {
			line += "\t" + b.DownloadURL
		}
		p.printf("%s\n", line)
	}
	p.printf("\n%d %s\n", len(books), plural(len(books), "book", "books"))
}

func (p *TextPresenter) RenderNoResults() {
	p.rendered = 0
	p.printf("%s\n", catalog.NoResultsMessage)
}

func (p *TextPresenter) RenderLoadError() {
	p.rendered = 0
	p.printf("%s\n", catalog.LoadErrorMessage)
}

func (p *TextPresenter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Summary describes the categories of books with counts, in first-seen order
func Summary(books []domain.Book) string {
	var b strings.Builder
	counts := make(map[string]int)
	for _, book := range books {
		counts[book.Category]++
	}
	for _, name := range catalog.Categories(books)[1:] {
		fmt.Fprintf(&b, "%-24s %d\n", name, counts[name])
	}
	return b.String()
}

package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"epubshelf/internal/domain"
)

// BookRenderer handles rendering of book cards
type BookRenderer struct {
	styles    *Styles
	showPaths bool
}

// NewBookRenderer creates a new book renderer
func NewBookRenderer(styles *Styles, showPaths bool) *BookRenderer {
	return &BookRenderer{
		styles:    styles,
		showPaths: showPaths,
	}
}

// CardHeight is the number of lines one card occupies, gap included
func (b *BookRenderer) CardHeight() int {
	if b.showPaths {
		return 4
	}
	return 3
}

// RenderBook renders a card: title, category label, optional path and a
// trailing gap line.
func (b *BookRenderer) RenderBook(book domain.Book, isSelected bool, searchTerm string, width int) []string {
	cursor := "  "
	if isSelected {
		cursor = "› "
	}
	textWidth := width - runewidth.StringWidth(cursor)
	if textWidth < 1 {
		textWidth = 1
	}

	titleStyle := b.styles.CardTitle
	metaStyle := b.styles.CardMeta
	pathStyle := b.styles.CardPath
	if isSelected {
		titleStyle = titleStyle.Inherit(b.styles.SelectionBg)
		metaStyle = metaStyle.Inherit(b.styles.SelectionBg)
		pathStyle = pathStyle.Inherit(b.styles.SelectionBg)
	}

	title := runewidth.Truncate(book.Title, textWidth, "…")
	meta := runewidth.Truncate(book.CategoryLabel(), textWidth, "…")

	lines := []string{
		b.fill(cursor+highlightMatch(title, searchTerm, b.styles.Highlight.Inherit(titleStyle), titleStyle), width, isSelected),
		b.fill("  "+highlightMatch(meta, searchTerm, b.styles.Highlight.Inherit(metaStyle), metaStyle), width, isSelected),
	}
	if b.showPaths {
		path := book.Path
		if path == "" {
			path = book.DownloadURL
		}
		lines = append(lines, b.fill("  "+pathStyle.Render(runewidth.Truncate(path, textWidth, "…")), width, isSelected))
	}
	return append(lines, "")
}

func (b *BookRenderer) fill(line string, width int, isSelected bool) string {
	if !isSelected {
		return line
	}
	pad := width - lipgloss.Width(line)
	if pad <= 0 {
		return line
	}
	return line + b.styles.SelectionBg.Render(runewidth.FillRight("", pad))
}

package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CategoryRenderer handles rendering of the category sidebar entries
type CategoryRenderer struct {
	styles *Styles
}

// NewCategoryRenderer creates a new category renderer
func NewCategoryRenderer(styles *Styles) *CategoryRenderer {
	return &CategoryRenderer{
		styles: styles,
	}
}

// RenderCategory renders one sidebar line. The active category carries a
// marker; the cursor line gets a background when the sidebar has focus.
func (c *CategoryRenderer) RenderCategory(name string, isActive, isCursor bool, width int) string {
	marker := "  "
	if isActive {
		marker = "● "
	}
	line := marker + runewidth.Truncate(name, width-runewidth.StringWidth(marker), "…")

	style := lipgloss.NewStyle()
	if isActive {
		style = c.styles.CategoryActive
	}
	if isCursor {
		return style.Inherit(c.styles.SelectionBg).Render(padRight(line, width))
	}
	return style.Render(line)
}

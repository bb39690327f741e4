package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// highlightMatch styles the first case-insensitive occurrence of query.
// Text whose lowercase form changes byte length is rendered unhighlighted.
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	if query == "" {
		return normalStyle.Render(text)
	}

	caser := cases.Lower(language.Und)
	lowerText := caser.String(text)
	if len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	index := strings.Index(lowerText, caser.String(query))
	if index == -1 {
		return normalStyle.Render(text)
	}
	end := index + len(caser.String(query))

	before := text[:index]
	match := text[index:end]
	after := text[end:]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}

// padRight pads a line to width cells
func padRight(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

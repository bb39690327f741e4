package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"Tab", "Switch between categories and books"},
	}},
	{"Categories", []helpEntry{
		{"Enter", "Show the category under the cursor"},
		{"[ / ]", "Previous/next category"},
	}},
	{"Search", []helpEntry{
		{"/", "Search titles and categories"},
		{"Enter", "Keep the search and return to the list"},
		{"Esc", "Cancel the search edit"},
		{"Ctrl+U", "Clear the search"},
	}},
	{"Books", []helpEntry{
		{"Enter", "Download the book under the cursor"},
		{"i", "Show book details"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContent renders the help information for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("epubshelf Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			// Pad before styling so ANSI codes don't skew the columns
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", e.keys)), descStyle.Render(e.desc)))
		}
	}

	return help.String()
}

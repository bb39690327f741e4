package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Filter         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Scroll         lipgloss.Style
	Highlight      lipgloss.Style
	SelectionBg    lipgloss.Style
	Panel          lipgloss.Style
	PanelFocused   lipgloss.Style
	CategoryActive lipgloss.Style
	CardTitle      lipgloss.Style
	CardMeta       lipgloss.Style
	CardPath       lipgloss.Style
	MessageBox     lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		CategoryActive: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		CardTitle:      lipgloss.NewStyle().Bold(true),
		CardMeta:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		CardPath:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		MessageBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 2),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

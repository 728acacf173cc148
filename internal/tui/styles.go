// Package tui is a small bubbletea renderer over an engine.Snapshot: a
// live usage table or per-(date,model) activity table that refreshes on
// each aggregation cycle. It follows the teacher's lipgloss idiom (a
// Theme struct of named colors feeding a set of package-level
// lipgloss.Style values) collapsed to the one palette these tables need,
// rather than the teacher's full theme-cycling dashboard.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme names the palette the renderer styles against.
type Theme struct {
	Base, Surface, Border lipgloss.Color
	Text, Subtext, Dim    lipgloss.Color
	Accent, Green, Yellow, Red lipgloss.Color
}

var catppuccinMocha = Theme{
	Base: "#1E1E2E", Surface: "#313244", Border: "#45475A",
	Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
	Accent: "#CBA6F7", Green: "#A6E3A1", Yellow: "#F9E2AF", Red: "#F38BA8",
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(catppuccinMocha.Accent)
	columnHeader = lipgloss.NewStyle().Bold(true).Foreground(catppuccinMocha.Subtext)
	rowStyle     = lipgloss.NewStyle().Foreground(catppuccinMocha.Text)
	dimStyle     = lipgloss.NewStyle().Foreground(catppuccinMocha.Dim)
	costStyle    = lipgloss.NewStyle().Foreground(catppuccinMocha.Green)
	fuzzyStyle   = lipgloss.NewStyle().Foreground(catppuccinMocha.Yellow)
	errorStyle   = lipgloss.NewStyle().Foreground(catppuccinMocha.Red)
	borderStyle  = lipgloss.NewStyle().Foreground(catppuccinMocha.Border)
)

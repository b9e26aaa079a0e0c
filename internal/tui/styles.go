// Package tui provides the terminal review screen for link suggestions.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Anchor   lipgloss.Style
	Accepted lipgloss.Style
	Rejected lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	var (
		primary = lipgloss.Color("#1F3B63")
		muted   = lipgloss.Color("#6C7086")
		success = lipgloss.Color("#15803D")
		warning = lipgloss.Color("#B45309")
		danger  = lipgloss.Color("#B42318")
	)
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(primary).Padding(0, 1),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).BorderLeft(true).BorderStyle(lipgloss.ThickBorder()).BorderForeground(primary).PaddingLeft(1),
		Anchor:   lipgloss.NewStyle().Bold(true),
		Accepted: lipgloss.NewStyle().Foreground(success),
		Rejected: lipgloss.NewStyle().Foreground(danger).Strikethrough(true),
		High:     lipgloss.NewStyle().Foreground(success),
		Medium:   lipgloss.NewStyle().Foreground(warning),
		Low:      lipgloss.NewStyle().Foreground(danger),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}

// Relevance renders a relevance label in its colour.
func (s *Styles) Relevance(label string) string {
	switch label {
	case "High":
		return s.High.Render(label)
	case "Medium":
		return s.Medium.Render(label)
	default:
		return s.Low.Render(label)
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#8A8A8A")
	colorError   = lipgloss.Color("#E53935")
	colorAccent  = lipgloss.Color("#8BC34A")
)

// Styles - набор стилей экранов
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Container lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Header:    lipgloss.NewStyle().Bold(true),
		Item:      lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().PaddingLeft(1).Foreground(colorAccent).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Error:     lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Label:     lipgloss.NewStyle().Width(12),
		Focused:   lipgloss.NewStyle().Width(12).Foreground(colorAccent).Bold(true),
		Container: lipgloss.NewStyle().Padding(0, 1),
	}
}

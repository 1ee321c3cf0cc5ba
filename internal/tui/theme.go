package tui

import (
	"github.com/charmbracelet/lipgloss"

	"termfolio/internal/render"
)

// chrome holds the styles for everything around the rendered output.
type chrome struct {
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	title       lipgloss.Style
	status      lipgloss.Style
	help        lipgloss.Style
	rule        lipgloss.Style
	navActive   lipgloss.Style
	navInactive lipgloss.Style
}

func newChrome(t render.Theme) chrome {
	t = t.WithDefaults()
	return chrome{
		tabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.TabActiveFg)).Background(lipgloss.Color(t.TabActiveBg)).Bold(true),
		tabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color(t.TabInactive)),
		title:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.AccentOrange)).Bold(true),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusText)),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextMuted)),
		rule:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)),
		navActive:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.TabActiveFg)).Background(lipgloss.Color(t.AccentBlue)).Bold(true).Padding(0, 1),
		navInactive: lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextPrimary)).Padding(0, 1),
	}
}

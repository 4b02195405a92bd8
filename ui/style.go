package ui

import (
	"github.com/charmbracelet/lipgloss"

	"modside-analyzer/mod"
)

// CategoryColor returns the terminal color for a classification verdict:
// green for server capable, orange for client only, red for unparseable.
func CategoryColor(c mod.Category) lipgloss.Color {
	switch c {
	case mod.ServerCapable:
		return lipgloss.Color("10")
	case mod.ClientOnly:
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("9")
	}
}

// Colorize renders text in the category's color using lipgloss.
func Colorize(text string, c mod.Category) string {
	style := lipgloss.NewStyle().Foreground(CategoryColor(c))
	return style.Render(text)
}

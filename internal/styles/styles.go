// Package styles centralizes lipgloss styling for the host views.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	Directory = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	File = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	Symlink = lipgloss.NewStyle().
		Foreground(lipgloss.Color("36"))

	Selected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237"))

	ErrorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99"))
)

// EntryStyle returns the style for a tree row of the given kind.
func EntryStyle(isDir, isLink bool) lipgloss.Style {
	switch {
	case isDir:
		return Directory
	case isLink:
		return Symlink
	default:
		return File
	}
}

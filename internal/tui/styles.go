package tui

import "github.com/charmbracelet/lipgloss"

var (
	// color palette
	colorPrimary = lipgloss.Color("205")
	colorAccent  = lipgloss.Color("86")
	colorMuted   = lipgloss.Color("241")
	colorError   = lipgloss.Color("196")

	logoStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	menuDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)

const logo = `
 ██████  ███████ ███    ██ ██████  ███████ ██████       ██  █████  ███    ███
 ██   ██ ██      ████   ██ ██   ██ ██      ██   ██      ██ ██   ██ ████  ████
 ██████  █████   ██ ██  ██ ██   ██ █████   ██████       ██ ███████ ██ ████ ██
 ██   ██ ██      ██  ██ ██ ██   ██ ██      ██   ██ ██   ██ ██   ██ ██  ██  ██
 ██   ██ ███████ ██   ████ ██████  ███████ ██   ██  █████  ██   ██ ██      ██
`

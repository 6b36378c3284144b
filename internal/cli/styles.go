// Package cli provides the command-line interface for Keyvault: the cobra
// root command, scripted subcommands, and the interactive console with its
// numbered menus.
// This file defines the shared lipgloss styles used across the console to
// ensure a consistent look and feel.
package cli // import "github.com/toeirei/keyvault/internal/cli"

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the console.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // A nice teal/cyan
	colorSpecial   = lipgloss.Color("208") // An orange for special attention
	colorError     = lipgloss.Color("196") // A bright red
	colorSuccess   = lipgloss.Color("40")  // A nice green
)

// Styles defines the reusable lipgloss styles for console output.
var (
	// Section titles (main menu, key listings)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)

	// Secondary detail lines under a list entry
	detailStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Error messages
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	// Success marks and confirmations
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	// Warnings and destructive-action notices
	warnStyle = lipgloss.NewStyle().Foreground(colorSpecial)
)

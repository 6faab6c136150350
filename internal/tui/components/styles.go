// Package components provides shared UI components for the TUI.
package components

import "github.com/charmbracelet/lipgloss"

// Palette shared by the views.
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - forms, subtitles
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - Arabic terms, selection
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - copied, top result
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

var (
	arabicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	formStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	linkStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Underline(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	topBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBg).
			Background(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)
)

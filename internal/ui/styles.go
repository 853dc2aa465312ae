package ui

import (
	"crypto/sha256"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Row tints
var (
	draftStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))  // blue
	needsRebaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))  // cyan
	plainRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Header row
var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

// Cursor row standout
var cursorStyle = lipgloss.NewStyle().Reverse(true)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("62")).
		Bold(true)
	statusBarErrorStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("196")).
		Bold(true)
)

// Detail overlay
var (
	detailBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)
	detailHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	detailMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Command mode input
var (
	cmdPromptStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cmdInputTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// newLoadingSpinner creates a consistently styled spinner for the sync state.
func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return s
}

// repoColorStyle derives a stable per-repository color from a hash of its
// full name, floored away from black so it stays readable on dark terminals.
func repoColorStyle(repo string) lipgloss.Style {
	sum := sha256.Sum256([]byte(repo))
	r := 0x50 + int(sum[0])%0xB0
	g := 0x50 + int(sum[1])%0xB0
	b := 0x50 + int(sum[2])%0xB0
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
}

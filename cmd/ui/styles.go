// Package ui renders minigit's terminal output: lipgloss styles for
// status lines and headers, and tablewriter tables for `log --table`
// and the branch list `branch` prints when given no name.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	grayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	untrackedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	conflictStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5FFF")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Underline(true)

	commitBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FFF")).
			Padding(1, 2).
			MarginBottom(1)
)

// Icons used across status and log output.
const (
	IconCheck     = "✓"
	IconModified  = "◉"
	IconDeleted   = "✗"
	IconAdded     = "+"
	IconUntracked = "?"
	IconConflict  = "!"
	IconBranch    = "⎇"
	IconCommit    = "⊚"
)

func Green(s string) string  { return greenStyle.Render(s) }
func Red(s string) string    { return redStyle.Render(s) }
func Yellow(s string) string { return yellowStyle.Render(s) }
func Blue(s string) string   { return blueStyle.Render(s) }
func Cyan(s string) string   { return cyanStyle.Render(s) }
func Gray(s string) string   { return grayStyle.Render(s) }

// Header renders a banner-style section header.
func Header(text string) string { return headerStyle.Render(text) }

// Section renders an underlined subsection title.
func Section(text string) string { return sectionStyle.Render(text) }

// CommitBox renders a bordered box around a single commit's details.
func CommitBox(text string) string { return commitBoxStyle.Render(text) }

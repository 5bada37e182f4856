// Package tui provides the interactive terminal surfaces of the storefront.
// The models here only translate key presses into core calls and results;
// every invariant lives in the core packages.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// Action represents the user's choice in an interactive surface.
type Action int

const (
	// ActionNone indicates no action was taken.
	ActionNone Action = iota
	// ActionSelected indicates the user confirmed a selection or input.
	ActionSelected
	// ActionCancelled indicates the user backed out of the current step.
	ActionCancelled
	// ActionQuit indicates the user left the storefront entirely.
	ActionQuit
)

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	priceStyle    lipgloss.Style
	metadataStyle lipgloss.Style
	favoriteStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		priceStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		favoriteStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("161")),
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("161"))
)

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}

func truncate(value string, width int) string {
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StepStyle returns the style used to paint a stepper entry in state s.
func StepStyle(s contract.StepState) lipgloss.Style {
	switch s {
	case contract.StepCompleted:
		return StyleGreen
	case contract.StepActive:
		return StyleYellowBold
	case contract.StepUnlocked:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StepIcon returns the stepper glyph for s.
func StepIcon(s contract.StepState) string {
	switch s {
	case contract.StepCompleted:
		return "✔"
	case contract.StepActive:
		return "▶"
	case contract.StepUnlocked:
		return "○"
	default:
		return "✕"
	}
}

// StepBadge renders the icon and state label, e.g. "✔ COMPLETED".
func StepBadge(s contract.StepState) string {
	return StepStyle(s).Render(StepIcon(s) + " " + strings.ToUpper(string(s)))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

package cli

import (
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/cli/formatter"
	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// phaseguideHuhTheme returns a huh theme using the formatter palette.
func phaseguideHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// phaseOptions lists the phases the project may move to, labelled with
// their stepper state.
func phaseOptions(nav contract.Navigation) []huh.Option[string] {
	var options []huh.Option[string]
	for _, s := range nav.Steps {
		if !nav.CanNavigate(s.Phase) {
			continue
		}
		label := fmt.Sprintf("%d. %s (%d/%d)", s.Index+1, s.Title, s.CompletedModules, s.TotalModules)
		opt := huh.NewOption(label, string(s.Phase))
		if s.Phase == nav.CurrentPhase {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}
	return options
}

// wizardSelectPhase builds a select over the unlocked phases, or nil when
// there is nothing to choose from.
func wizardSelectPhase(nav contract.Navigation, result *string) *huh.Form {
	options := phaseOptions(nav)
	if len(options) == 0 {
		return nil
	}
	*result = string(nav.CurrentPhase)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Phase?").
				Options(options...).
				Value(result),
		),
	).WithTheme(phaseguideHuhTheme()).WithShowHelp(false)
}

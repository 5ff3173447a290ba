package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/phaseguide/internal/cli/formatter"
	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type navLoadedMsg struct {
	nav contract.Navigation
}

type tourActionMsg struct {
	message string
	focus   domain.PhaseID
	err     error
}

// tourModel walks one project through its phases: a stepper across the top,
// the modules of the viewed phase below it.
type tourModel struct {
	ctx       context.Context
	progress  service.ProgressService
	projectID string

	nav     contract.Navigation
	loaded  bool
	phase   int
	cursor  int
	message string
	err     error
	width   int
	// pending is the phase to focus once the next reload lands.
	pending domain.PhaseID
}

func newTourModel(ctx context.Context, progress service.ProgressService, projectID string) *tourModel {
	return &tourModel{ctx: ctx, progress: progress, projectID: projectID}
}

func (m *tourModel) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "phase")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "module")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (m *tourModel) Init() tea.Cmd {
	return m.loadNav()
}

func (m *tourModel) loadNav() tea.Cmd {
	return func() tea.Msg {
		return navLoadedMsg{nav: m.progress.Navigation(m.projectID, "")}
	}
}

func (m *tourModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case navLoadedMsg:
		first := !m.loaded
		m.nav = msg.nav
		m.loaded = true
		switch {
		case first:
			m.focusPhase(m.nav.CurrentPhase)
		case m.pending != "":
			m.focusPhase(m.pending)
			m.pending = ""
		}
		return m, nil

	case tourActionMsg:
		m.err = msg.err
		m.message = msg.message
		m.pending = msg.focus
		return m, m.loadNav()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *tourModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		return m, m.switchPhase(-1)
	case "right", "l":
		return m, m.switchPhase(1)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if step, ok := m.viewed(); ok && m.cursor < len(step.Modules)-1 {
			m.cursor++
		}
	case "enter":
		return m, m.advance()
	}
	return m, nil
}

func (m *tourModel) viewed() (contract.PhaseStep, bool) {
	if m.phase < 0 || m.phase >= len(m.nav.Steps) {
		return contract.PhaseStep{}, false
	}
	return m.nav.Steps[m.phase], true
}

func (m *tourModel) focusPhase(id domain.PhaseID) {
	step, ok := m.nav.Step(id)
	if !ok {
		return
	}
	m.phase = step.Index
	m.cursor = 0
	if step.Resume != "" {
		if ph, ok := domain.LookupPhase(id); ok {
			m.cursor = max(ph.ModuleIndex(step.Resume), 0)
		}
	}
}

// switchPhase moves to the nearest unlocked phase in direction dir and
// makes it current. Locked phases are skipped.
func (m *tourModel) switchPhase(dir int) tea.Cmd {
	for i := m.phase + dir; i >= 0 && i < len(m.nav.Steps); i += dir {
		target := m.nav.Steps[i]
		if !m.nav.CanNavigate(target.Phase) {
			continue
		}
		m.focusPhase(target.Phase)
		return func() tea.Msg {
			err := m.progress.SetCurrentPhase(m.ctx, m.projectID, target.Phase)
			return tourActionMsg{err: err}
		}
	}
	m.message = "No unlocked phase that way."
	return nil
}

// advance runs the next action on the selected module, or finishes the
// phase when the selected module is its closing one.
func (m *tourModel) advance() tea.Cmd {
	step, ok := m.viewed()
	if !ok || m.cursor >= len(step.Modules) {
		return nil
	}
	mod := step.Modules[m.cursor]
	if !mod.Unlocked {
		m.message = fmt.Sprintf("%s is locked.", mod.Title)
		return nil
	}

	phase := step.Phase
	if domain.IsTerminalModule(mod.Module) {
		return func() tea.Msg {
			res, err := m.progress.FinishPhase(m.ctx, m.projectID, phase)
			if err != nil {
				return tourActionMsg{err: err}
			}
			return tourActionMsg{
				message: strings.TrimSpace(formatter.FormatFinishResult(phase, res)),
				focus:   res.NextPhase,
			}
		}
	}
	module := mod.Module
	return func() tea.Msg {
		res, err := m.progress.Next(m.ctx, m.projectID, phase, module)
		if err != nil {
			return tourActionMsg{err: err}
		}
		return tourActionMsg{
			message: strings.TrimSpace(formatter.FormatNextResult(phase, module, res)),
			focus:   phase,
		}
	}
}

func (m *tourModel) View() string {
	if !m.loaded {
		return formatter.Dim("Loading...")
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("PHASEGUIDE") + "  " + formatter.Dim("[") +
		formatter.StyleGreen.Render(m.projectID) + formatter.Dim("]") + "\n\n")
	b.WriteString(m.renderStepper() + "\n\n")

	if step, ok := m.viewed(); ok {
		b.WriteString(formatter.Header(step.Title) + "\n")
		for i, mod := range step.Modules {
			b.WriteString(renderTourModule(mod, i == m.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else if m.message != "" {
		b.WriteString(m.message + "\n")
	}

	hints := make([]string, 0, 4)
	for _, k := range m.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	b.WriteString(sep + "\n" + strings.Join(hints, "  "))
	return b.String()
}

func (m *tourModel) renderStepper() string {
	parts := make([]string, 0, len(m.nav.Steps))
	for i, s := range m.nav.Steps {
		label := formatter.StepIcon(s.State) + " " + s.Title
		style := formatter.StepStyle(s.State)
		if i == m.phase {
			style = style.Underline(true)
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, formatter.Dim("  ›  "))
}

func renderTourModule(mod contract.ModuleStep, selected bool) string {
	cursor := "  "
	if selected {
		cursor = formatter.StyleHeader.Render("> ")
	}
	switch {
	case mod.Completed:
		return cursor + formatter.StyleGreen.Render("✔ ") + formatter.Dim(mod.Title)
	case mod.Unlocked:
		return cursor + formatter.StyleBlue.Render("○ ") + formatter.StyleFg.Render(mod.Title)
	default:
		return cursor + formatter.Dim("✕ "+mod.Title)
	}
}

func newTourCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tour <project>",
		Short: "Walk through a project's phases interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProject(app, args[0]); err != nil {
				return err
			}
			m := newTourModel(cmd.Context(), app.Progress, args[0])
			if app.RunTour != nil {
				return app.RunTour(m)
			}
			if !app.interactive() {
				return fmt.Errorf("tour needs an interactive terminal")
			}
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("running tour: %w", err)
			}
			return nil
		},
	}
}

package contract

import (
	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/unlock"
)

type StepState string

const (
	StepLocked    StepState = "locked"
	StepUnlocked  StepState = "unlocked"
	StepActive    StepState = "active"
	StepCompleted StepState = "completed"
)

// CompletionMode selects how a phase is judged completed for display.
type CompletionMode string

const (
	// CompletionFromModules marks a phase completed when every one of its
	// modules is in the completion set.
	CompletionFromModules CompletionMode = "modules"
	// CompletionByIndex marks every phase before the current one completed,
	// regardless of recorded module completion.
	CompletionByIndex CompletionMode = "index"
)

type ModuleStep struct {
	Module    domain.ModuleID
	Title     string
	Unlocked  bool
	Completed bool
}

type PhaseStep struct {
	Phase            domain.PhaseID
	Title            string
	Index            int
	State            StepState
	Unlocked         bool
	CompletedModules int
	TotalModules     int
	// Resume is the first unlocked module not yet completed, empty if none.
	Resume  domain.ModuleID
	Modules []ModuleStep
}

// Navigation is the stepper view of one project.
type Navigation struct {
	ProjectID    string
	Initialized  bool
	CurrentPhase domain.PhaseID
	Mode         CompletionMode
	Steps        []PhaseStep
}

// BuildNavigation derives the stepper for state, which may be nil for a
// project that was never initialized.
func BuildNavigation(projectID string, state *domain.ProjectProgress, mode CompletionMode) Navigation {
	if mode == "" {
		mode = CompletionFromModules
	}
	current := unlock.CurrentPhase(state)
	currentIdx := domain.PhaseIndex(current)

	nav := Navigation{
		ProjectID:    projectID,
		Initialized:  state != nil,
		CurrentPhase: current,
		Mode:         mode,
	}
	for i, ph := range domain.Phases() {
		step := PhaseStep{
			Phase:        ph.ID,
			Title:        ph.Title,
			Index:        i,
			Unlocked:     unlock.PhaseUnlocked(state, ph.ID),
			TotalModules: len(ph.Modules),
		}
		for _, m := range ph.Modules {
			ms := ModuleStep{
				Module:    m,
				Title:     domain.ModuleTitle(m),
				Unlocked:  unlock.ModuleUnlocked(state, ph.ID, m),
				Completed: unlock.ModuleCompleted(state, ph.ID, m),
			}
			if ms.Completed {
				step.CompletedModules++
			}
			if step.Resume == "" && ms.Unlocked && !ms.Completed {
				step.Resume = m
			}
			step.Modules = append(step.Modules, ms)
		}
		step.State = stepState(state, step, i, currentIdx, mode)
		nav.Steps = append(nav.Steps, step)
	}
	return nav
}

func stepState(state *domain.ProjectProgress, step PhaseStep, idx, currentIdx int, mode CompletionMode) StepState {
	if state != nil && idx == currentIdx {
		return StepActive
	}
	switch mode {
	case CompletionByIndex:
		if state != nil && idx < currentIdx {
			return StepCompleted
		}
	default:
		if step.TotalModules > 0 && step.CompletedModules == step.TotalModules {
			return StepCompleted
		}
	}
	if step.Unlocked {
		return StepUnlocked
	}
	return StepLocked
}

// Step returns the entry for phase.
func (n Navigation) Step(phase domain.PhaseID) (PhaseStep, bool) {
	for _, s := range n.Steps {
		if s.Phase == phase {
			return s, true
		}
	}
	return PhaseStep{}, false
}

// Current returns the entry for the current phase.
func (n Navigation) Current() PhaseStep {
	s, _ := n.Step(n.CurrentPhase)
	return s
}

// CanNavigate reports whether the learner may open phase.
func (n Navigation) CanNavigate(phase domain.PhaseID) bool {
	s, ok := n.Step(phase)
	return ok && s.Unlocked
}

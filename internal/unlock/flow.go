package unlock

import "github.com/alexanderramin/phaseguide/internal/domain"

// AdvanceResult describes the outcome of moving past one module.
type AdvanceResult struct {
	State domain.ProjectProgress
	// Unlocked is the module that became reachable, empty if none did.
	Unlocked domain.ModuleID
	// Completed is true when the module being left was newly marked complete.
	Completed bool
	// Suppressed is true for closing modules, which finish the phase instead.
	Suppressed bool
}

// Changed reports whether the advance altered the state.
func (r AdvanceResult) Changed() bool {
	return r.Unlocked != "" || r.Completed
}

// Advance is the plain "next" step from a module: unlock the following
// module, then mark the current one complete. Closing modules are
// suppressed and left untouched. Under rules.RequireUnlocked a module that
// is still locked cannot be left, so nothing changes.
func Advance(s domain.ProjectProgress, phase domain.PhaseID, module domain.ModuleID, rules Rules) AdvanceResult {
	if domain.IsTerminalModule(module) {
		return AdvanceResult{State: s, Suppressed: true}
	}
	res := AdvanceResult{State: s}
	if rules.RequireUnlocked && !s.HasUnlockedModule(phase, module) {
		return res
	}

	next, changed := NextModule(s, phase, module)
	if changed {
		ph, _ := domain.LookupPhase(phase)
		res.Unlocked, _ = ph.NextModule(module)
	}
	done, completed := Complete(next, phase, module, rules)
	res.State = done
	res.Completed = completed
	return res
}

// FinishResult describes the outcome of closing a phase.
type FinishResult struct {
	State domain.ProjectProgress
	// NextPhase is the phase moved into, empty when phase was the last one.
	NextPhase domain.PhaseID
	// Completed is true when the closing module ends up in the completion set.
	Completed bool
	Changed   bool
}

// FinishPhase is the closing-screen action: complete the phase's closing
// module, unlock the next phase and make it current. On the last phase only
// the completion applies. Under rules.RequireUnlocked the phase cannot be
// finished until its closing module is unlocked.
func FinishPhase(s domain.ProjectProgress, phase domain.PhaseID, rules Rules) FinishResult {
	ph, ok := domain.LookupPhase(phase)
	if !ok {
		return FinishResult{State: s}
	}
	terminal := ph.TerminalModule()
	if rules.RequireUnlocked && !s.HasUnlockedModule(phase, terminal) {
		return FinishResult{State: s}
	}
	state, completed := Complete(s, phase, terminal, rules)
	state, unlocked := NextPhase(state, phase)

	res := FinishResult{
		State:     state,
		Completed: state.HasCompletedModule(phase, terminal),
		Changed:   completed || unlocked,
	}
	if next, ok := domain.NextPhaseID(phase); ok {
		var moved bool
		res.State, moved = SetCurrentPhase(res.State, next)
		res.NextPhase = next
		res.Changed = res.Changed || moved
	}
	return res
}

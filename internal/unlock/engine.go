// Package unlock computes phase and module unlock transitions for a guided
// project. Every function is pure: it takes a progress value, never mutates
// it, and returns the next value together with whether anything changed.
// Requests that cannot apply (past the last phase, unknown identifiers) are
// no-ops rather than errors.
package unlock

import "github.com/alexanderramin/phaseguide/internal/domain"

// Rules tunes transition checks.
type Rules struct {
	// RequireUnlocked rejects completion of a module that was never unlocked.
	RequireUnlocked bool
}

// DefaultRules enforces unlock-before-complete.
func DefaultRules() Rules {
	return Rules{RequireUnlocked: true}
}

// PermissiveRules accepts completion of any catalog module of a known phase.
func PermissiveRules() Rules {
	return Rules{RequireUnlocked: false}
}

// Initialize returns the default state when existing is nil or has lost the
// first phase from its unlocked set. A valid existing state is returned
// unchanged.
func Initialize(existing *domain.ProjectProgress) (domain.ProjectProgress, bool) {
	if existing == nil || !existing.HasPhase(domain.FirstPhase()) {
		return domain.NewProjectProgress(), true
	}
	return existing.Clone(), false
}

// NextPhase unlocks the phase after current and seeds its first module.
// The seed is merged into any modules already unlocked there so a repeated
// call never re-locks progress.
func NextPhase(s domain.ProjectProgress, current domain.PhaseID) (domain.ProjectProgress, bool) {
	next, ok := domain.NextPhaseID(current)
	if !ok {
		return s, false
	}
	out := s.Clone()
	phaseAdded := out.UnlockPhase(next)
	moduleAdded := out.UnlockModule(next, domain.ModuleOverview)
	if !phaseAdded && !moduleAdded {
		return s, false
	}
	return out, true
}

// NextModule unlocks the module following current within phase.
func NextModule(s domain.ProjectProgress, phase domain.PhaseID, current domain.ModuleID) (domain.ProjectProgress, bool) {
	ph, ok := domain.LookupPhase(phase)
	if !ok {
		return s, false
	}
	next, ok := ph.NextModule(current)
	if !ok {
		return s, false
	}
	out := s.Clone()
	if !out.UnlockModule(phase, next) {
		return s, false
	}
	return out, true
}

// Complete marks module finished within phase. The phase must be known and
// the module must belong to it; under default rules it must also already be
// unlocked.
func Complete(s domain.ProjectProgress, phase domain.PhaseID, module domain.ModuleID, rules Rules) (domain.ProjectProgress, bool) {
	ph, ok := domain.LookupPhase(phase)
	if !ok || !ph.HasModule(module) {
		return s, false
	}
	if rules.RequireUnlocked && !s.HasUnlockedModule(phase, module) {
		return s, false
	}
	out := s.Clone()
	if !out.CompleteModule(phase, module) {
		return s, false
	}
	return out, true
}

// SetCurrentPhase overwrites the current phase. It does not check that the
// phase is unlocked; unknown identifiers are ignored.
func SetCurrentPhase(s domain.ProjectProgress, phase domain.PhaseID) (domain.ProjectProgress, bool) {
	if !domain.IsValidPhase(phase) || s.CurrentPhase == phase {
		return s, false
	}
	out := s.Clone()
	out.CurrentPhase = phase
	return out, true
}

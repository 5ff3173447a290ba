package unlock

import "github.com/alexanderramin/phaseguide/internal/domain"

// The query helpers are total: a nil state answers false, or the first
// phase for CurrentPhase.

func PhaseUnlocked(s *domain.ProjectProgress, phase domain.PhaseID) bool {
	return s != nil && s.HasPhase(phase)
}

func ModuleUnlocked(s *domain.ProjectProgress, phase domain.PhaseID, module domain.ModuleID) bool {
	return s != nil && s.HasUnlockedModule(phase, module)
}

func ModuleCompleted(s *domain.ProjectProgress, phase domain.PhaseID, module domain.ModuleID) bool {
	return s != nil && s.HasCompletedModule(phase, module)
}

func CurrentPhase(s *domain.ProjectProgress) domain.PhaseID {
	if s == nil || s.CurrentPhase == "" {
		return domain.FirstPhase()
	}
	return s.CurrentPhase
}

// PhaseFinished reports whether every module of phase is complete.
func PhaseFinished(s *domain.ProjectProgress, phase domain.PhaseID) bool {
	ph, ok := domain.LookupPhase(phase)
	if !ok || s == nil {
		return false
	}
	return s.CompletedCount(phase) == len(ph.Modules)
}

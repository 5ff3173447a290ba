package testutil

import (
	"time"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/google/uuid"
)

// Progress options
type ProgressOption func(*domain.ProjectProgress)

// WithCurrentPhase sets the current phase without unlocking it.
func WithCurrentPhase(p domain.PhaseID) ProgressOption {
	return func(s *domain.ProjectProgress) {
		s.CurrentPhase = p
	}
}

// WithUnlocked unlocks phase and the given modules within it.
func WithUnlocked(phase domain.PhaseID, modules ...domain.ModuleID) ProgressOption {
	return func(s *domain.ProjectProgress) {
		s.UnlockPhase(phase)
		for _, m := range modules {
			s.UnlockModule(phase, m)
		}
	}
}

// WithCompleted unlocks and completes the given modules of phase.
func WithCompleted(phase domain.PhaseID, modules ...domain.ModuleID) ProgressOption {
	return func(s *domain.ProjectProgress) {
		s.UnlockPhase(phase)
		for _, m := range modules {
			s.UnlockModule(phase, m)
			s.CompleteModule(phase, m)
		}
	}
}

// NewTestProgress returns the default starting state with opts applied.
func NewTestProgress(opts ...ProgressOption) domain.ProjectProgress {
	s := domain.NewProjectProgress()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Event options
type EventOption func(*domain.ProgressEvent)

func WithEventTarget(phase domain.PhaseID, module domain.ModuleID) EventOption {
	return func(e *domain.ProgressEvent) {
		e.Phase = phase
		e.Module = module
	}
}

func WithOccurredAt(t time.Time) EventOption {
	return func(e *domain.ProgressEvent) {
		e.OccurredAt = t
	}
}

func NewTestEvent(projectID string, action domain.ProgressAction, opts ...EventOption) *domain.ProgressEvent {
	e := &domain.ProgressEvent{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

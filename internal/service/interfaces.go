package service

import (
	"context"

	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/alexanderramin/phaseguide/internal/domain"
)

// NextResult is the outcome of the next action on a module screen.
type NextResult struct {
	// Suppressed is set for closing modules; use FinishPhase instead.
	Suppressed bool
	Completed  domain.ModuleID
	Unlocked   domain.ModuleID
}

// FinishResult is the outcome of the closing-screen action.
type FinishResult struct {
	// NextPhase is the phase the project moved into, empty after the last phase.
	NextPhase domain.PhaseID
	// Completed reports whether the phase's closing module is now completed.
	Completed bool
	Changed   bool
}

type ProgressService interface {
	InitializeProject(ctx context.Context, projectID string) error
	ResetProject(ctx context.Context, projectID string) error
	UnlockNextPhase(ctx context.Context, projectID string, current domain.PhaseID) error
	UnlockNextModule(ctx context.Context, projectID string, phase domain.PhaseID, current domain.ModuleID) error
	CompleteModule(ctx context.Context, projectID string, phase domain.PhaseID, module domain.ModuleID) error
	SetCurrentPhase(ctx context.Context, projectID string, phase domain.PhaseID) error
	Next(ctx context.Context, projectID string, phase domain.PhaseID, module domain.ModuleID) (*NextResult, error)
	FinishPhase(ctx context.Context, projectID string, phase domain.PhaseID) (*FinishResult, error)

	IsPhaseUnlocked(projectID string, phase domain.PhaseID) bool
	IsModuleUnlocked(projectID string, phase domain.PhaseID, module domain.ModuleID) bool
	IsModuleCompleted(projectID string, phase domain.PhaseID, module domain.ModuleID) bool
	GetCurrentPhase(projectID string) domain.PhaseID
	Get(projectID string) (*domain.ProjectProgress, bool)
	List() []string
	Navigation(projectID string, mode contract.CompletionMode) contract.Navigation
	History(ctx context.Context, projectID string, limit int) ([]*domain.ProgressEvent, error)
}

type TransferService interface {
	// Export returns the persisted document for every project.
	Export(ctx context.Context) (string, error)
	// Import replaces all progress with doc and returns the project count.
	Import(ctx context.Context, doc string) (int, error)
}

package domain

import "time"

type ProgressAction string

const (
	ActionInitialize     ProgressAction = "initialize"
	ActionReset          ProgressAction = "reset"
	ActionImport         ProgressAction = "import"
	ActionUnlockPhase    ProgressAction = "unlock_phase"
	ActionUnlockModule   ProgressAction = "unlock_module"
	ActionCompleteModule ProgressAction = "complete_module"
	ActionSetPhase       ProgressAction = "set_phase"
)

// ProgressEvent records one state change applied to a project.
type ProgressEvent struct {
	ID         string
	ProjectID  string
	Action     ProgressAction
	Phase      PhaseID
	Module     ModuleID
	OccurredAt time.Time
}

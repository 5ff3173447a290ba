package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/progress"
	"github.com/alexanderramin/phaseguide/internal/repository"
	"github.com/alexanderramin/phaseguide/internal/unlock"
	"github.com/google/uuid"
)

type progressService struct {
	store    *progress.Store
	events   repository.ProgressEventRepo
	rules    unlock.Rules
	logger   *slog.Logger
	observer UseCaseObserver
	now      func() time.Time
}

// NewProgressService exposes the unlock engine over store. Every change is
// also appended to events; a nil events repo disables history.
func NewProgressService(store *progress.Store, events repository.ProgressEventRepo, rules unlock.Rules, logger *slog.Logger, observers ...UseCaseObserver) ProgressService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &progressService{
		store:    store,
		events:   events,
		rules:    rules,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// onExisting lifts a transition so that projects without an entry stay
// untouched.
func onExisting(fn func(domain.ProjectProgress) (domain.ProjectProgress, bool)) progress.TransitionFunc {
	return func(cur *domain.ProjectProgress) (domain.ProjectProgress, bool) {
		if cur == nil {
			return domain.ProjectProgress{}, false
		}
		return fn(*cur)
	}
}

// record appends history entries. History is best effort: a failed append
// is logged and the state change stands.
func (s *progressService) record(ctx context.Context, projectID string, entries ...historyEntry) {
	if s.events == nil {
		return
	}
	for _, h := range entries {
		e := &domain.ProgressEvent{
			ID:         uuid.New().String(),
			ProjectID:  projectID,
			Action:     h.action,
			Phase:      h.phase,
			Module:     h.module,
			OccurredAt: s.now(),
		}
		if err := s.events.Append(ctx, e); err != nil {
			s.logger.WarnContext(ctx, "progress_event_append_failed",
				"project", projectID, "action", string(h.action), "error", err)
		}
	}
}

type historyEntry struct {
	action domain.ProgressAction
	phase  domain.PhaseID
	module domain.ModuleID
}

func (s *progressService) InitializeProject(ctx context.Context, projectID string) (err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "initialize-project", scope, startedAt, err, fields) }()

	_, changed, err := s.store.Update(ctx, projectID, unlock.Initialize)
	if err != nil {
		return fmt.Errorf("initialize project %s: %w", projectID, err)
	}
	fields["changed"] = changed
	if changed {
		s.record(ctx, projectID, historyEntry{action: domain.ActionInitialize, phase: domain.FirstPhase()})
	}
	return nil
}

func (s *progressService) ResetProject(ctx context.Context, projectID string) (err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "reset-project", scope, startedAt, err, fields) }()

	if err := s.store.Set(ctx, projectID, domain.NewProjectProgress()); err != nil {
		return fmt.Errorf("reset project %s: %w", projectID, err)
	}
	s.record(ctx, projectID, historyEntry{action: domain.ActionReset, phase: domain.FirstPhase()})
	return nil
}

func (s *progressService) UnlockNextPhase(ctx context.Context, projectID string, current domain.PhaseID) (err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID, Phase: current}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "unlock-next-phase", scope, startedAt, err, fields) }()

	_, changed, err := s.store.Update(ctx, projectID, onExisting(func(st domain.ProjectProgress) (domain.ProjectProgress, bool) {
		return unlock.NextPhase(st, current)
	}))
	if err != nil {
		return fmt.Errorf("unlock next phase for %s: %w", projectID, err)
	}
	fields["changed"] = changed
	if changed {
		next, _ := domain.NextPhaseID(current)
		s.record(ctx, projectID, historyEntry{action: domain.ActionUnlockPhase, phase: next, module: domain.ModuleOverview})
	}
	return nil
}

func (s *progressService) UnlockNextModule(ctx context.Context, projectID string, phase domain.PhaseID, current domain.ModuleID) (err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID, Phase: phase, Module: current}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "unlock-next-module", scope, startedAt, err, fields) }()

	_, changed, err := s.store.Update(ctx, projectID, onExisting(func(st domain.ProjectProgress) (domain.ProjectProgress, bool) {
		return unlock.NextModule(st, phase, current)
	}))
	if err != nil {
		return fmt.Errorf("unlock next module for %s: %w", projectID, err)
	}
	fields["changed"] = changed
	if changed {
		ph, _ := domain.LookupPhase(phase)
		next, _ := ph.NextModule(current)
		s.record(ctx, projectID, historyEntry{action: domain.ActionUnlockModule, phase: phase, module: next})
	}
	return nil
}

func (s *progressService) CompleteModule(ctx context.Context, projectID string, phase domain.PhaseID, module domain.ModuleID) (err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID, Phase: phase, Module: module}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "complete-module", scope, startedAt, err, fields) }()

	_, changed, err := s.store.Update(ctx, projectID, onExisting(func(st domain.ProjectProgress) (domain.ProjectProgress, bool) {
		return unlock.Complete(st, phase, module, s.rules)
	}))
	if err != nil {
		return fmt.Errorf("complete module for %s: %w", projectID, err)
	}
	fields["changed"] = changed
	if changed {
		s.record(ctx, projectID, historyEntry{action: domain.ActionCompleteModule, phase: phase, module: module})
	}
	return nil
}

func (s *progressService) SetCurrentPhase(ctx context.Context, projectID string, phase domain.PhaseID) (err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID, Phase: phase}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "set-current-phase", scope, startedAt, err, fields) }()

	_, changed, err := s.store.Update(ctx, projectID, onExisting(func(st domain.ProjectProgress) (domain.ProjectProgress, bool) {
		return unlock.SetCurrentPhase(st, phase)
	}))
	if err != nil {
		return fmt.Errorf("set current phase for %s: %w", projectID, err)
	}
	fields["changed"] = changed
	if changed {
		s.record(ctx, projectID, historyEntry{action: domain.ActionSetPhase, phase: phase})
	}
	return nil
}

func (s *progressService) Next(ctx context.Context, projectID string, phase domain.PhaseID, module domain.ModuleID) (result *NextResult, err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID, Phase: phase, Module: module}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "next", scope, startedAt, err, fields) }()

	var adv unlock.AdvanceResult
	_, _, err = s.store.Update(ctx, projectID, func(cur *domain.ProjectProgress) (domain.ProjectProgress, bool) {
		if cur == nil {
			return domain.ProjectProgress{}, false
		}
		adv = unlock.Advance(*cur, phase, module, s.rules)
		return adv.State, adv.Changed()
	})
	if err != nil {
		return nil, fmt.Errorf("next from %s/%s: %w", phase, module, err)
	}

	result = &NextResult{Suppressed: adv.Suppressed, Unlocked: adv.Unlocked}
	if adv.Completed {
		result.Completed = module
	}
	fields["suppressed"] = adv.Suppressed

	var history []historyEntry
	if adv.Unlocked != "" {
		history = append(history, historyEntry{action: domain.ActionUnlockModule, phase: phase, module: adv.Unlocked})
	}
	if adv.Completed {
		history = append(history, historyEntry{action: domain.ActionCompleteModule, phase: phase, module: module})
	}
	s.record(ctx, projectID, history...)
	return result, nil
}

func (s *progressService) FinishPhase(ctx context.Context, projectID string, phase domain.PhaseID) (result *FinishResult, err error) {
	startedAt := time.Now().UTC()
	scope := UseCaseScope{Project: projectID, Phase: phase}
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "finish-phase", scope, startedAt, err, fields) }()

	var (
		before domain.ProjectProgress
		fin    unlock.FinishResult
	)
	_, _, err = s.store.Update(ctx, projectID, func(cur *domain.ProjectProgress) (domain.ProjectProgress, bool) {
		if cur == nil {
			return domain.ProjectProgress{}, false
		}
		before = cur.Clone()
		fin = unlock.FinishPhase(*cur, phase, s.rules)
		return fin.State, fin.Changed
	})
	if err != nil {
		return nil, fmt.Errorf("finish phase %s: %w", phase, err)
	}
	result = &FinishResult{NextPhase: fin.NextPhase, Completed: fin.Completed, Changed: fin.Changed}
	fields["changed"] = fin.Changed
	if !fin.Changed {
		return result, nil
	}

	var history []historyEntry
	if ph, ok := domain.LookupPhase(phase); ok {
		terminal := ph.TerminalModule()
		if !before.HasCompletedModule(phase, terminal) && fin.State.HasCompletedModule(phase, terminal) {
			history = append(history, historyEntry{action: domain.ActionCompleteModule, phase: phase, module: terminal})
		}
	}
	if fin.NextPhase != "" {
		if !before.HasPhase(fin.NextPhase) {
			history = append(history, historyEntry{action: domain.ActionUnlockPhase, phase: fin.NextPhase, module: domain.ModuleOverview})
		}
		if before.CurrentPhase != fin.NextPhase {
			history = append(history, historyEntry{action: domain.ActionSetPhase, phase: fin.NextPhase})
		}
	}
	s.record(ctx, projectID, history...)
	return result, nil
}

func (s *progressService) state(projectID string) *domain.ProjectProgress {
	st, ok := s.store.Get(projectID)
	if !ok {
		return nil
	}
	return &st
}

func (s *progressService) IsPhaseUnlocked(projectID string, phase domain.PhaseID) bool {
	return unlock.PhaseUnlocked(s.state(projectID), phase)
}

func (s *progressService) IsModuleUnlocked(projectID string, phase domain.PhaseID, module domain.ModuleID) bool {
	return unlock.ModuleUnlocked(s.state(projectID), phase, module)
}

func (s *progressService) IsModuleCompleted(projectID string, phase domain.PhaseID, module domain.ModuleID) bool {
	return unlock.ModuleCompleted(s.state(projectID), phase, module)
}

func (s *progressService) GetCurrentPhase(projectID string) domain.PhaseID {
	return unlock.CurrentPhase(s.state(projectID))
}

func (s *progressService) Get(projectID string) (*domain.ProjectProgress, bool) {
	st := s.state(projectID)
	return st, st != nil
}

func (s *progressService) List() []string {
	return s.store.ProjectIDs()
}

func (s *progressService) Navigation(projectID string, mode contract.CompletionMode) contract.Navigation {
	return contract.BuildNavigation(projectID, s.state(projectID), mode)
}

func (s *progressService) History(ctx context.Context, projectID string, limit int) (events []*domain.ProgressEvent, err error) {
	if s.events == nil {
		return nil, nil
	}
	events, err = s.events.ListByProject(ctx, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", projectID, err)
	}
	return events, nil
}

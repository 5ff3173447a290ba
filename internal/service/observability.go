package service

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/alexanderramin/phaseguide/internal/domain"
)

// UseCaseScope names the progress a use case touched. Empty members did not
// apply to the call.
type UseCaseScope struct {
	Project string
	Phase   domain.PhaseID
	Module  domain.ModuleID
}

func (s UseCaseScope) attrs() []any {
	var out []any
	if s.Project != "" {
		out = append(out, slog.String("project", s.Project))
	}
	if s.Phase != "" {
		out = append(out, slog.String("phase", string(s.Phase)))
	}
	if s.Module != "" {
		out = append(out, slog.String("module", string(s.Module)))
	}
	return out
}

// UseCaseEvent is one progress service call. Fields holds outcome details
// such as changed or suppressed.
type UseCaseEvent struct {
	Name      string
	Scope     UseCaseScope
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events to w as slog text records.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []any{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	}
	attrs = append(attrs, event.Scope.attrs()...)
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	switch {
	case event.Err != nil:
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	case !event.Success:
		level = slog.LevelWarn
	}
	o.logger.Log(ctx, level, "progress_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe reports a use case on scope that started at startedAt and ended with err.
func observe(ctx context.Context, obs UseCaseObserver, name string, scope UseCaseScope, startedAt time.Time, err error, fields map[string]any) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Scope:     scope,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

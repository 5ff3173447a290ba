package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Success(t *testing.T) {
	buf := new(bytes.Buffer)
	obs := NewLogUseCaseObserver(buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "next",
		Scope:    UseCaseScope{Project: "42", Phase: domain.PhaseBRD, Module: domain.ModuleOverview},
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"suppressed": false, "changed": true},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "progress_use_case")
	assert.Contains(t, out, "use_case=next")
	assert.Contains(t, out, "project=42 phase=brd module=overview changed=true suppressed=false")
}

func TestLogUseCaseObserver_OmitsEmptyScope(t *testing.T) {
	buf := new(bytes.Buffer)
	obs := NewLogUseCaseObserver(buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "export",
		Success: true,
		Fields:  map[string]any{"projects": 2},
	})

	out := buf.String()
	assert.NotContains(t, out, "project=")
	assert.NotContains(t, out, "phase=")
	assert.Contains(t, out, "projects=2")
}

func TestLogUseCaseObserver_UnsuccessfulWithoutError(t *testing.T) {
	buf := new(bytes.Buffer)
	NewLogUseCaseObserver(buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name:  "finish-phase",
		Scope: UseCaseScope{Project: "42", Phase: domain.PhaseTesting},
	})

	assert.Contains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "error=")
}

func TestLogUseCaseObserver_Failure(t *testing.T) {
	buf := new(bytes.Buffer)
	obs := NewLogUseCaseObserver(buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "import",
		Err:  errors.New("bad document"),
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="bad document"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}

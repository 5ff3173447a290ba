package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/repository"
	"github.com/alexanderramin/phaseguide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressEventRepo_AppendAndList(t *testing.T) {
	repo := repository.NewSQLiteProgressEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	at := time.Date(2025, 6, 15, 10, 0, 0, 123000000, time.UTC)

	e := testutil.NewTestEvent("42", domain.ActionUnlockModule,
		testutil.WithEventTarget(domain.PhaseBRD, "functional-requirements"),
		testutil.WithOccurredAt(at),
	)
	require.NoError(t, repo.Append(ctx, e))

	events, err := repo.ListByProject(ctx, "42", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	got := events[0]
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "42", got.ProjectID)
	assert.Equal(t, domain.ActionUnlockModule, got.Action)
	assert.Equal(t, domain.PhaseBRD, got.Phase)
	assert.Equal(t, domain.ModuleID("functional-requirements"), got.Module)
	assert.True(t, at.Equal(got.OccurredAt), "want %s got %s", at, got.OccurredAt)
}

func TestProgressEventRepo_ListKeepsInsertionOrder(t *testing.T) {
	repo := repository.NewSQLiteProgressEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	same := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	actions := []domain.ProgressAction{
		domain.ActionInitialize, domain.ActionUnlockModule, domain.ActionCompleteModule,
	}
	for _, a := range actions {
		require.NoError(t, repo.Append(ctx, testutil.NewTestEvent("42", a, testutil.WithOccurredAt(same))))
	}

	events, err := repo.ListByProject(ctx, "42", 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, a := range actions {
		assert.Equal(t, a, events[i].Action, "position %d", i)
	}
}

func TestProgressEventRepo_LegacyRowsOrderedByTime(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProgressEventRepo(database)
	ctx := context.Background()

	// Rows written before the insertion counter existed all carry seq 0.
	legacy := []struct{ id, action, at string }{
		{"c", "complete_module", "2025-01-01T00:00:03Z"},
		{"a", "initialize", "2025-01-01T00:00:01Z"},
		{"b2", "unlock_module", "2025-01-01T00:00:02Z"},
		{"b1", "unlock_module", "2025-01-01T00:00:02Z"},
	}
	for _, row := range legacy {
		_, err := database.ExecContext(ctx,
			`INSERT INTO progress_events (id, project_id, action, occurred_at, seq) VALUES (?, '42', ?, ?, 0)`,
			row.id, row.action, row.at)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Append(ctx, testutil.NewTestEvent("42", domain.ActionSetPhase)))

	events, err := repo.ListByProject(ctx, "42", 0)
	require.NoError(t, err)
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	require.Len(t, ids, 5)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids[:4])
	assert.Equal(t, domain.ActionSetPhase, events[4].Action)

	recent, err := repo.ListByProject(ctx, "42", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, domain.ActionSetPhase, recent[1].Action)
}

func TestProgressEventRepo_LimitKeepsMostRecent(t *testing.T) {
	repo := repository.NewSQLiteProgressEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, a := range []domain.ProgressAction{
		domain.ActionInitialize, domain.ActionUnlockModule, domain.ActionCompleteModule, domain.ActionUnlockPhase,
	} {
		require.NoError(t, repo.Append(ctx, testutil.NewTestEvent("42", a)))
	}

	events, err := repo.ListByProject(ctx, "42", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.ActionCompleteModule, events[0].Action)
	assert.Equal(t, domain.ActionUnlockPhase, events[1].Action)
}

func TestProgressEventRepo_ScopedByProject(t *testing.T) {
	repo := repository.NewSQLiteProgressEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testutil.NewTestEvent("42", domain.ActionInitialize)))
	require.NoError(t, repo.Append(ctx, testutil.NewTestEvent("7", domain.ActionInitialize)))

	events, err := repo.ListByProject(ctx, "7", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "7", events[0].ProjectID)

	none, err := repo.ListByProject(ctx, "missing", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

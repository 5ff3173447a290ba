package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/progress"
	"github.com/alexanderramin/phaseguide/internal/repository"
	"github.com/alexanderramin/phaseguide/internal/testutil"
	"github.com/alexanderramin/phaseguide/internal/unlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importDoc = `{
	"7": {"currentPhase": "uiux", "unlockedPhases": ["uiux", "brd"],
	      "unlockedModules": {"brd": ["overview"], "uiux": ["overview"]},
	      "completedModules": {"brd": ["overview"]}},
	"8": {"currentPhase": "brd", "unlockedPhases": ["brd"],
	      "unlockedModules": {"brd": ["overview"]}, "completedModules": {}}
}`

func TestTransferService_ExportEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := progress.New(repository.NewSQLiteKVRepo(database))
	store.Load(context.Background())
	svc := NewTransferService(store, testutil.NewTestUoW(database))

	doc, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, doc)
}

func TestTransferService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newProgressFixture(t, unlock.DefaultRules())
	require.NoError(t, src.svc.InitializeProject(ctx, "42"))
	_, err := src.svc.Next(ctx, "42", domain.PhaseBRD, domain.ModuleOverview)
	require.NoError(t, err)

	doc, err := NewTransferService(src.store, nil).Export(ctx)
	require.NoError(t, err)

	database := testutil.NewTestDB(t)
	store := progress.New(repository.NewSQLiteKVRepo(database))
	store.Load(ctx)
	n, err := NewTransferService(store, testutil.NewTestUoW(database)).Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, ok := store.Get("42")
	require.True(t, ok)
	want, _ := src.store.Get("42")
	assert.Equal(t, want, got)
}

func TestTransferService_ImportReplacesAndRecords(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	kv := repository.NewSQLiteKVRepo(database)
	store := progress.New(kv)
	store.Load(ctx)
	require.NoError(t, store.Set(ctx, "42", domain.NewProjectProgress()))

	svc := NewTransferService(store, testutil.NewTestUoW(database))
	n, err := svc.Import(ctx, importDoc)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{"7", "8"}, store.ProjectIDs(), "import replaces the whole map")
	st, _ := store.Get("7")
	assert.Equal(t, []domain.PhaseID{domain.PhaseBRD, domain.PhaseUIUX}, st.UnlockedPhases)

	raw, err := kv.Get(ctx, progress.DefaultKey)
	require.NoError(t, err)
	var persisted map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Len(t, persisted, 2)

	evts, err := repository.NewSQLiteProgressEventRepo(database).ListByProject(ctx, "7", 0)
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, domain.ActionImport, evts[0].Action)
	assert.Equal(t, domain.PhaseUIUX, evts[0].Phase)
}

func TestTransferService_ImportRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	store := progress.New(repository.NewSQLiteKVRepo(database))
	store.Load(ctx)
	require.NoError(t, store.Set(ctx, "42", domain.NewProjectProgress()))
	svc := NewTransferService(store, testutil.NewTestUoW(database))

	for _, doc := range []string{"", "   ", `{"42":`, `[1,2]`} {
		_, err := svc.Import(ctx, doc)
		assert.Error(t, err, "doc=%q", doc)
	}
	assert.Equal(t, []string{"42"}, store.ProjectIDs())
}

func TestTransferService_ImportRollbackOnEventFailure(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	kv := repository.NewSQLiteKVRepo(database)
	store := progress.New(kv)
	store.Load(ctx)
	require.NoError(t, store.Set(ctx, "42", domain.NewProjectProgress()))

	// Exec #1 writes the document, #2 appends the first import event.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected event failure"),
	}
	_, err := NewTransferService(store, failUoW).Import(ctx, importDoc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected event failure")

	raw, err := kv.Get(ctx, progress.DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"42"`)
	assert.NotContains(t, raw, `"7"`)
	assert.Equal(t, []string{"42"}, store.ProjectIDs())

	evts, err := repository.NewSQLiteProgressEventRepo(database).ListByProject(ctx, "7", 0)
	require.NoError(t, err)
	assert.Empty(t, evts)
}

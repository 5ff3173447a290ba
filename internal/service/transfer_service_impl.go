package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/phaseguide/internal/db"
	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/progress"
	"github.com/alexanderramin/phaseguide/internal/repository"
	"github.com/google/uuid"
)

type transferService struct {
	store    *progress.Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewTransferService moves whole progress documents in and out of store.
// Imports are written through uow so the document and its history land
// together.
func NewTransferService(store *progress.Store, uow db.UnitOfWork, observers ...UseCaseObserver) TransferService {
	return &transferService{
		store:    store,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *transferService) Export(ctx context.Context) (doc string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "export", UseCaseScope{}, startedAt, err, fields) }()

	snapshot := s.store.Snapshot()
	fields["projects"] = len(snapshot)
	doc, err = progress.Encode(snapshot)
	if err != nil {
		return "", fmt.Errorf("export progress: %w", err)
	}
	return doc, nil
}

func (s *transferService) Import(ctx context.Context, doc string) (count int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "import", UseCaseScope{}, startedAt, err, fields) }()

	if strings.TrimSpace(doc) == "" {
		return 0, fmt.Errorf("import progress: empty document")
	}
	states, err := progress.Decode(doc)
	if err != nil {
		return 0, fmt.Errorf("import progress: %w", err)
	}
	normalized, err := progress.Encode(states)
	if err != nil {
		return 0, fmt.Errorf("import progress: %w", err)
	}

	ids := make([]string, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVRepo(tx)
		if err := kv.Put(ctx, s.store.Key(), normalized); err != nil {
			return err
		}
		events := repository.NewSQLiteProgressEventRepo(tx)
		now := time.Now().UTC()
		for _, id := range ids {
			e := &domain.ProgressEvent{
				ID:         uuid.New().String(),
				ProjectID:  id,
				Action:     domain.ActionImport,
				Phase:      states[id].CurrentPhase,
				OccurredAt: now,
			}
			if err := events.Append(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import progress: %w", err)
	}

	s.store.Load(ctx)
	fields["projects"] = len(ids)
	return len(ids), nil
}

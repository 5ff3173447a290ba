package repository

import (
	"context"

	"github.com/alexanderramin/phaseguide/internal/domain"
)

// KVRepo is local key/value storage holding one text document per key.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

type ProgressEventRepo interface {
	Append(ctx context.Context, e *domain.ProgressEvent) error
	// ListByProject returns the most recent limit events in the order they
	// happened. A limit of zero or less returns all of them.
	ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.ProgressEvent, error)
}

package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/phaseguide/internal/repository"
)

// MemoryKV is an in-process KVRepo that counts writes.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	Puts   int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Seed stores value without counting it as a write.
func (m *MemoryKV) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns the stored document and whether the key exists.
func (m *MemoryKV) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, repository.ErrNotFound)
	}
	return v, nil
}

func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.Puts++
	return nil
}

// FailingKV returns GetErr from every read and PutErr from every write.
// A nil error lets the call through to the embedded MemoryKV.
type FailingKV struct {
	*MemoryKV
	GetErr error
	PutErr error
}

func NewFailingKV(getErr, putErr error) *FailingKV {
	return &FailingKV{MemoryKV: NewMemoryKV(), GetErr: getErr, PutErr: putErr}
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, error) {
	if f.GetErr != nil {
		return "", f.GetErr
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *FailingKV) Put(ctx context.Context, key, value string) error {
	if f.PutErr != nil {
		return f.PutErr
	}
	return f.MemoryKV.Put(ctx, key, value)
}

var (
	_ repository.KVRepo = (*MemoryKV)(nil)
	_ repository.KVRepo = (*FailingKV)(nil)
)

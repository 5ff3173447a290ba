// Package progress owns the in-memory progress map for every project and
// keeps it in sync with a single key of local storage.
//
// The store has an explicit lifecycle: Load before use, Close when done.
// Storage faults are logged and absorbed; callers never see them.
package progress

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/repository"
)

// DefaultKey is the storage key holding the serialized map.
const DefaultKey = "projectProgress"

// ErrNotReady is returned by mutations issued before Load.
var ErrNotReady = errors.New("progress store not loaded")

// Storage is the persistence shim: one text document per key.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Store holds progress for all projects. It is safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger

	mu     sync.Mutex
	states map[string]domain.ProjectProgress
	ready  bool
}

type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger reports recovered storage faults to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.New(slog.DiscardHandler),
		states:  make(map[string]domain.ProjectProgress),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// Load hydrates the store from storage. A missing key, a read failure or a
// malformed document all leave the store empty. The store is ready
// afterwards in every case.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = make(map[string]domain.ProjectProgress)
	s.ready = true

	doc, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.DebugContext(ctx, "progress_load_empty", "key", s.key)
			return
		}
		s.logger.WarnContext(ctx, "progress_load_failed", "key", s.key, "error", err.Error())
		return
	}

	states, err := Decode(doc)
	if err != nil {
		s.logger.WarnContext(ctx, "progress_load_malformed", "key", s.key, "error", err.Error())
		return
	}
	s.states = states
	s.logger.DebugContext(ctx, "progress_loaded", "key", s.key, "projects", len(states))
}

// Ready reports whether Load has run and Close has not.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Save writes the full map to storage. An empty map is never written.
func (s *Store) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) {
	if len(s.states) == 0 {
		return
	}
	doc, err := Encode(s.states)
	if err != nil {
		s.logger.WarnContext(ctx, "progress_save_failed", "key", s.key, "error", err.Error())
		return
	}
	if err := s.storage.Put(ctx, s.key, doc); err != nil {
		s.logger.WarnContext(ctx, "progress_save_failed", "key", s.key, "error", err.Error())
	}
}

// Get returns a copy of the project's state.
func (s *Store) Get(projectID string) (domain.ProjectProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[projectID]
	if !ok {
		return domain.ProjectProgress{}, false
	}
	return st.Clone(), true
}

// Set replaces the project's entry and saves.
func (s *Store) Set(ctx context.Context, projectID string, state domain.ProjectProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotReady
	}
	s.states[projectID] = state.Clone()
	s.saveLocked(ctx)
	return nil
}

// TransitionFunc computes the next state from the current one, which is nil
// when the project has no entry. It reports whether anything changed.
type TransitionFunc func(current *domain.ProjectProgress) (domain.ProjectProgress, bool)

// Update applies fn to the project's state under the store lock and saves
// when fn reports a change. It returns the resulting state (absent projects
// that stay absent yield ok=false).
func (s *Store) Update(ctx context.Context, projectID string, fn TransitionFunc) (state domain.ProjectProgress, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return domain.ProjectProgress{}, false, ErrNotReady
	}

	var current *domain.ProjectProgress
	if st, ok := s.states[projectID]; ok {
		c := st.Clone()
		current = &c
	}
	next, changed := fn(current)
	if !changed {
		if current == nil {
			return domain.ProjectProgress{}, false, nil
		}
		return *current, false, nil
	}
	s.states[projectID] = next.Clone()
	s.saveLocked(ctx)
	return next, true, nil
}

// ProjectIDs returns the known project IDs in sorted order.
func (s *Store) ProjectIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a deep copy of the whole map.
func (s *Store) Snapshot() map[string]domain.ProjectProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.ProjectProgress, len(s.states))
	for id, st := range s.states {
		out[id] = st.Clone()
	}
	return out
}

// Close flushes the map one last time and marks the store not ready.
func (s *Store) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	s.saveLocked(ctx)
	s.ready = false
}

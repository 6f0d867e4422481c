package audit

import (
	"context"
	"sync"

	"github.com/seoscan/seoscan/internal/model"
)

// Store persists audit records.
//
// Design decision: The orchestrator depends on this small interface rather
// than a concrete database so serve mode can run entirely in memory while
// deployments that want history plug in the SQLite store. Implementations
// must be safe for concurrent use.
type Store interface {
	// Create inserts a new audit record. The audit ID must be unique.
	Create(ctx context.Context, a *model.Audit) error

	// Update replaces the stored record for the audit's ID.
	Update(ctx context.Context, a *model.Audit) error

	// Get returns the audit with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Audit, error)
}

// MemoryStore is an in-memory Store.
// It is the default for serve mode; audits vanish on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	audits map[string]*model.Audit
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		audits: make(map[string]*model.Audit),
	}
}

// Create inserts a new audit record.
func (s *MemoryStore) Create(_ context.Context, a *model.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clone on the way in so later caller mutations don't leak into the
	// store without an Update.
	s.audits[a.ID] = a.Clone()
	return nil
}

// Update replaces the stored record for the audit's ID.
func (s *MemoryStore) Update(_ context.Context, a *model.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.audits[a.ID]; !ok {
		return ErrNotFound
	}
	s.audits[a.ID] = a.Clone()
	return nil
}

// Get returns a snapshot of the audit with the given ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.audits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a.Clone(), nil
}

// Len returns the number of stored audits.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.audits)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// DraftStore keeps drafts in memory. Stored and returned drafts are
// cloned so callers can't mutate each other's copies.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*domain.Draft
}

// NewDraftStore creates an empty in-memory draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*domain.Draft)}
}

// Save stores a copy of the draft under name.
func (s *DraftStore) Save(ctx context.Context, name string, draft *domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[name] = draft.Clone()
	return nil
}

// Load returns a copy of the named draft, or domain.ErrDraftNotFound.
func (s *DraftStore) Load(ctx context.Context, name string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[name]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return draft.Clone(), nil
}

// Delete removes the named draft. Deleting a missing draft is a no-op.
func (s *DraftStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, name)
	return nil
}

// List returns all draft names, sorted.
func (s *DraftStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.drafts))
	for name := range s.drafts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

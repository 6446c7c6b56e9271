// Package session serializes draft access. Multiple goroutines (HTTP
// handlers, MCP tools) may save, restore and delete the same draft;
// the manager hands out per-draft locks and garbage collects them by
// reference counting.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dwilhelm/optlist/internal/logging"
	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates draft access, ensuring safe concurrent
// operations against the underlying store.
type Manager struct {
	store ports.DraftStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker ports.Locker // Optional distributed locker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.Locker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new draft manager over the given store.
func NewManager(store ports.DraftStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference
// count. The caller MUST Lock entry.mu and call release(id) after
// unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry when it
// reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Load retrieves an existing draft from the store.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Draft, error) {
	var draft *domain.Draft
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		draft, err = m.store.Load(ctx, id)
		return err
	})
	return draft, err
}

// LoadOrCreate tries to load a draft. If not found, it initializes an
// empty one and persists it immediately to reserve the ID.
func (m *Manager) LoadOrCreate(ctx context.Context, id string) (*domain.Draft, error) {
	var draft *domain.Draft
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		draft, err = m.store.Load(ctx, id)
		if err == nil {
			return nil
		}

		if err != domain.ErrDraftNotFound {
			return fmt.Errorf("failed to check draft existence: %w", err)
		}

		draft = domain.NewDraft()
		if err := m.store.Save(ctx, id, draft); err != nil {
			return fmt.Errorf("failed to initialize draft: %w", err)
		}
		return nil
	})
	return draft, err
}

// Save persists the draft.
func (m *Manager) Save(ctx context.Context, id string, draft *domain.Draft) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, id, draft)
	})
}

// Delete removes the draft from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying draft store.
func (m *Manager) Store() ports.DraftStore {
	return m.store
}

// WithLock executes fn while holding the lock for the draft.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"draft_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

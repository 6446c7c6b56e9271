package ports

import (
	"context"
	"time"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// Surface is the rendering collaborator. The list logically owns it: it
// pushes entry creation and state changes, and the host forwards user
// clicks back as toggle calls. Implementations must not call back into
// the list from inside a notification.
type Surface interface {
	// EntryAdded announces a newly created entry.
	EntryAdded(v domain.View)

	// CheckedChanged announces a displayed-state change, whether caused
	// by a user toggle, a link firing, or a load pass.
	CheckedChanged(key string, checked bool)

	// EnabledChanged announces that an entry became togglable or not.
	EnabledChanged(key string, enabled bool)

	// Cleared announces that the list was released and all entries are gone.
	Cleared()
}

// Policy is the enforcement collaborator: an external authority that can
// mark bound values read-only regardless of entry state.
type Policy interface {
	// IsLocked reports whether the given key is enforced read-only.
	IsLocked(key string) bool
}

// ConfigSource exposes a configuration document as named boolean values.
// It is the keyed flavor of binding used by manifest-driven panels.
type ConfigSource interface {
	// Get reads the value for key. A missing or non-boolean key is an error.
	Get(key string) (bool, error)

	// Set writes the value for key.
	Set(key string, value bool) error
}

// Committer is implemented by sources that buffer writes until an explicit
// commit (e.g. a YAML document rewritten atomically).
type Committer interface {
	Commit(ctx context.Context) error
}

// DraftStore persists uncommitted panel snapshots keyed by draft ID.
type DraftStore interface {
	// Save persists the draft for a given ID.
	Save(ctx context.Context, id string, draft *domain.Draft) error

	// Load retrieves the draft for a given ID.
	// Returns domain.ErrDraftNotFound if the draft does not exist.
	Load(ctx context.Context, id string) (*domain.Draft, error)

	// Delete removes the draft for a given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored drafts.
	List(ctx context.Context) ([]string, error)
}

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// Locker coordinates draft access across replicas. Single-instance hosts
// don't need one; the session manager uses it when configured.
type Locker interface {
	// Lock acquires a lock for the key, blocking until acquired or the
	// context is canceled. The returned UnlockFunc MUST be called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

// NopSurface discards all notifications.
type NopSurface struct{}

func (NopSurface) EntryAdded(domain.View)      {}
func (NopSurface) CheckedChanged(string, bool) {}
func (NopSurface) EnabledChanged(string, bool) {}
func (NopSurface) Cleared()                    {}

// NopPolicy locks nothing.
type NopPolicy struct{}

func (NopPolicy) IsLocked(string) bool { return false }

package middleware

import (
	"context"
	"strings"

	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

type filterMiddleware struct {
	next     ports.DraftStore
	prefixes []string
}

// NewFilterMiddleware creates a middleware that drops keys under the
// given prefixes before drafts are persisted. Hosts use it to keep
// sensitive groups out of parked drafts entirely.
func NewFilterMiddleware(prefixes ...string) Middleware {
	return func(next ports.DraftStore) ports.DraftStore {
		return &filterMiddleware{next: next, prefixes: prefixes}
	}
}

func (m *filterMiddleware) Save(ctx context.Context, id string, draft *domain.Draft) error {
	filtered := draft.Clone()
	for key := range filtered.States {
		if m.matches(key) {
			delete(filtered.States, key)
		}
	}
	return m.next.Save(ctx, id, filtered)
}

func (m *filterMiddleware) matches(key string) bool {
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (m *filterMiddleware) Load(ctx context.Context, id string) (*domain.Draft, error) {
	return m.next.Load(ctx, id)
}

func (m *filterMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *filterMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Package middleware wraps draft stores with cross-cutting behavior:
// encryption at rest and key filtering.
package middleware

import "github.com/dwilhelm/optlist/pkg/ports"

// Middleware allows wrapping a DraftStore to add behavior.
type Middleware func(ports.DraftStore) ports.DraftStore

// Chain applies middlewares so the first listed is the outermost.
func Chain(store ports.DraftStore, middlewares ...Middleware) ports.DraftStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}

// Package memory provides in-memory adapters, used in tests and as the
// default backend for ephemeral panels.
package memory

import (
	"fmt"
	"sync"
)

// Source is a thread-safe in-memory configuration source.
type Source struct {
	mu     sync.RWMutex
	values map[string]bool
}

// NewSource creates a Source seeded with the given values.
func NewSource(seed map[string]bool) *Source {
	values := make(map[string]bool, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &Source{values: values}
}

// Get returns the value for key, or an error if the key is unknown.
func (s *Source) Get(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return false, fmt.Errorf("unknown key: %s", key)
	}
	return v, nil
}

// Set stores the value for key, creating it if needed.
func (s *Source) Set(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Snapshot returns a copy of all values.
func (s *Source) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

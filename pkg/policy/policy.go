// Package policy provides common lock policies for option panels.
//
// A policy decides which entries are locked against user changes. The
// canonical use is enforced configuration: an administrator pins a set
// of keys, the panel shows them checked or unchecked but refuses
// toggles and never writes them back.
package policy

import "strings"

// Static locks an explicit set of keys.
type Static struct {
	keys map[string]bool
}

// NewStatic builds a Static policy from the given keys.
func NewStatic(keys ...string) *Static {
	p := &Static{keys: make(map[string]bool, len(keys))}
	for _, k := range keys {
		p.keys[k] = true
	}
	return p
}

// IsLocked reports whether key is in the locked set.
func (p *Static) IsLocked(key string) bool {
	return p.keys[key]
}

// Add locks another key. Takes effect for entries created afterwards
// and for existing entries on the next load.
func (p *Static) Add(key string) {
	p.keys[key] = true
}

// Remove unlocks a key.
func (p *Static) Remove(key string) {
	delete(p.keys, key)
}

// Prefix locks every key under the given prefixes. Useful for locking
// whole groups at once ("security/").
type Prefix struct {
	prefixes []string
}

// NewPrefix builds a Prefix policy.
func NewPrefix(prefixes ...string) *Prefix {
	return &Prefix{prefixes: prefixes}
}

// IsLocked reports whether key starts with any locked prefix.
func (p *Prefix) IsLocked(key string) bool {
	for _, pre := range p.prefixes {
		if strings.HasPrefix(key, pre) {
			return true
		}
	}
	return false
}

// Any combines policies; a key is locked if any member locks it.
type Any []interface{ IsLocked(string) bool }

// IsLocked reports whether any member policy locks key.
func (p Any) IsLocked(key string) bool {
	for _, member := range p {
		if member.IsLocked(key) {
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReleased is returned by every operation after the list was released.
var ErrReleased = errors.New("option list released")

// ErrEntryNotFound is returned when an entry key cannot be resolved.
var ErrEntryNotFound = errors.New("entry not found")

// ErrEntryExists is returned when an entry key is registered twice.
var ErrEntryExists = errors.New("entry already exists")

// ErrEntryDisabled is returned when a toggle targets a locked or forced entry.
var ErrEntryDisabled = errors.New("entry is disabled")

// ErrDraftNotFound is returned when a draft ID cannot be found in the store.
var ErrDraftNotFound = errors.New("draft not found")

// BindingError reports a bad property reference at setup time.
// It is a static configuration mistake, never a runtime condition to retry.
type BindingError struct {
	Field  string
	Reason string
}

func (e *BindingError) Error() string {
	if e.Field == "" {
		return "binding: " + e.Reason
	}
	return fmt.Sprintf("binding %q: %s", e.Field, e.Reason)
}

// WriteFailure records a single entry whose write-back failed.
type WriteFailure struct {
	Key string
	Err error
}

func (f WriteFailure) Error() string {
	return fmt.Sprintf("entry %q: %v", f.Key, f.Err)
}

func (f WriteFailure) Unwrap() error { return f.Err }

// CommitError aggregates per-entry write-back failures. A failing entry
// never blocks the remaining entries; failures are collected and reported
// together once the pass completes.
type CommitError struct {
	Failures []WriteFailure
}

func (e *CommitError) Error() string {
	if len(e.Failures) == 1 {
		return "commit: " + e.Failures[0].Error()
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("commit: %d entries failed:\n- %s", len(e.Failures), strings.Join(parts, "\n- "))
}

// CommitFailures returns the per-entry failures if err is a *CommitError.
func CommitFailures(err error) ([]WriteFailure, bool) {
	var ce *CommitError
	if errors.As(err, &ce) {
		return ce.Failures, true
	}
	return nil, false
}

package domain

import "time"

// Draft is an uncommitted snapshot of a panel's displayed states.
// It lets a host park unsaved edits (e.g. a dialog dismissed mid-way)
// and restore them later without touching the bound configuration.
type Draft struct {
	// States maps entry keys to their displayed checked state.
	States map[string]bool `json:"states" yaml:"states"`

	// SavedAt records when the draft was taken.
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`

	// Sealed carries an opaque encrypted payload when a persistence
	// middleware envelopes the draft. Plain drafts leave it empty.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// NewDraft creates an empty draft stamped with the current time.
func NewDraft() *Draft {
	return &Draft{
		States:  make(map[string]bool),
		SavedAt: time.Now().UTC(),
	}
}

// Clone returns an independent copy so stores can hand out snapshots
// without sharing the map.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := &Draft{
		States:  make(map[string]bool, len(d.States)),
		SavedAt: d.SavedAt,
		Sealed:  d.Sealed,
	}
	for k, v := range d.States {
		out.States[k] = v
	}
	return out
}

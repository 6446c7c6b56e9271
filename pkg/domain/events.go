package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventToggle EventType = "toggle"
	EventForce  EventType = "force"
	EventLoad   EventType = "load"
	EventCommit EventType = "commit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ToggleEvent represents a user toggle, including the propagation it caused.
type ToggleEvent struct {
	EventBase
	Key     string `json:"key"`
	Checked bool   `json:"checked"`
	// Forced counts entries whose state was forced by links in the sweep.
	Forced int `json:"forced,omitempty"`
}

// ForceEvent represents a single link firing during a sweep.
type ForceEvent struct {
	EventBase
	Source  string   `json:"source"`
	Target  string   `json:"target"`
	Link    LinkType `json:"link"`
	Checked bool     `json:"checked"`
}

// SyncEvent represents an UpdateData pass in either direction.
type SyncEvent struct {
	EventBase
	WriteBack bool `json:"write_back"`
	Entries   int  `json:"entries"`
	Skipped   int  `json:"skipped,omitempty"`
	Failed    int  `json:"failed,omitempty"`
}

// LifecycleHooks defines callbacks for list observability.
// All hooks run synchronously on the caller's goroutine; nil hooks are skipped.
type LifecycleHooks struct {
	OnToggle func(*ToggleEvent)
	OnForce  func(*ForceEvent)
	OnSync   func(*SyncEvent)
}

package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dwilhelm/optlist/internal/logging"
	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

// List is the core bound option list. It owns the entries in creation
// order, the links in registration order, and the one non-trivial piece
// of logic in this module: the bounded implication sweep.
//
// A List is single-goroutine by contract: it is owned exclusively by the
// host that created it, every operation runs to completion, and the
// backing configuration is only touched by UpdateData.
type List struct {
	logger  *slog.Logger
	surface ports.Surface
	policy  ports.Policy
	hooks   domain.LifecycleHooks

	entries  []*domain.Entry
	byKey    map[string]*domain.Entry
	links    []domain.Link
	released bool
}

// Option configures a List.
type Option func(*List)

// WithLogger sets a structured logger for the list.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSurface attaches the rendering collaborator.
func WithSurface(s ports.Surface) Option {
	return func(l *List) {
		if s != nil {
			l.surface = s
		}
	}
}

// WithPolicy attaches the enforcement policy.
func WithPolicy(p ports.Policy) Option {
	return func(l *List) {
		if p != nil {
			l.policy = p
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(l *List) {
		l.hooks = h
	}
}

// New creates an empty list.
func New(opts ...Option) *List {
	l := &List{
		logger:  logging.NewNop(),
		surface: ports.NopSurface{},
		policy:  ports.NopPolicy{},
		byKey:   make(map[string]*domain.Entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ItemOption configures a single entry at creation time.
type ItemOption func(*domain.Entry)

// WithTooltip sets the entry's markdown help text.
func WithTooltip(text string) ItemOption {
	return func(e *domain.Entry) {
		e.Tooltip = text
	}
}

// WithOverride pins the entry's state and disables user toggling.
func WithOverride(o domain.Override) ItemOption {
	return func(e *domain.Entry) {
		e.Override = o
	}
}

// CreateItem reads the bound value, creates an entry and announces it to
// the surface. The initial checked state comes from the binding unless an
// override pins it. A bad binding fails with *domain.BindingError and no
// entry is added. A policy lock disables the entry without touching the
// bound value.
func (l *List) CreateItem(b domain.Binding, group, label, key string, opts ...ItemOption) (*domain.Entry, error) {
	if l.released {
		return nil, domain.ErrReleased
	}
	if key == "" {
		return nil, &domain.BindingError{Reason: "entry key must not be empty"}
	}
	if _, dup := l.byKey[key]; dup {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryExists, key)
	}
	if !b.Valid() {
		return nil, &domain.BindingError{Field: key, Reason: "binding is missing an accessor"}
	}

	value, err := b.Get()
	if err != nil {
		return nil, &domain.BindingError{Field: key, Reason: err.Error()}
	}

	e := &domain.Entry{
		Key:     key,
		Group:   group,
		Label:   label,
		Checked: value,
		Binding: b,
		Locked:  l.policy.IsLocked(key),
	}
	for _, opt := range opts {
		opt(e)
	}

	switch e.Override {
	case domain.ForcedChecked:
		e.Checked = true
	case domain.ForcedUnchecked:
		e.Checked = false
	}

	l.entries = append(l.entries, e)
	l.byKey[key] = e
	l.surface.EntryAdded(e.Snapshot())

	l.logger.Debug("entry created",
		"key", key, "checked", e.Checked, "locked", e.Locked, "override", e.Override.String())

	return e, nil
}

// AddLink registers an implication between two existing entries.
// Links are evaluated in registration order; on conflicting forces the
// later-registered link wins.
func (l *List) AddLink(source, target string, t domain.LinkType) error {
	if l.released {
		return domain.ErrReleased
	}
	if _, ok := l.byKey[source]; !ok {
		return fmt.Errorf("link source: %w: %s", domain.ErrEntryNotFound, source)
	}
	if _, ok := l.byKey[target]; !ok {
		return fmt.Errorf("link target: %w: %s", domain.ErrEntryNotFound, target)
	}
	if source == target {
		return fmt.Errorf("link %s: source and target are the same entry", source)
	}

	l.links = append(l.links, domain.Link{Source: source, Target: target, Type: t})
	return nil
}

// Entry returns the entry for key.
func (l *List) Entry(key string) (*domain.Entry, error) {
	if l.released {
		return nil, domain.ErrReleased
	}
	e, ok := l.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, key)
	}
	return e, nil
}

// Entries returns snapshots of all entries in creation order.
func (l *List) Entries() []domain.View {
	views := make([]domain.View, 0, len(l.entries))
	for _, e := range l.entries {
		views = append(views, e.Snapshot())
	}
	return views
}

// Links returns the registered links in registration order.
func (l *List) Links() []domain.Link {
	out := make([]domain.Link, len(l.links))
	copy(out, l.links)
	return out
}

// SetChecked applies a user toggle and runs one bounded implication sweep.
// Toggling a disabled entry is rejected; the host's surface should not
// forward such clicks, but the list defends anyway.
func (l *List) SetChecked(key string, checked bool) error {
	if l.released {
		return domain.ErrReleased
	}
	e, ok := l.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, key)
	}
	if !e.Enabled() {
		return fmt.Errorf("%w: %s", domain.ErrEntryDisabled, key)
	}

	if e.Checked != checked {
		e.Checked = checked
		l.surface.CheckedChanged(key, checked)
	}

	forced := l.propagate(e)

	l.logger.Debug("toggle applied", "key", key, "checked", checked, "forced", forced)

	if l.hooks.OnToggle != nil {
		l.hooks.OnToggle(&domain.ToggleEvent{
			EventBase: domain.EventBase{Timestamp: time.Now().UTC(), Type: domain.EventToggle},
			Key:       key,
			Checked:   checked,
			Forced:    forced,
		})
	}
	return nil
}

// Release detaches all bindings. Entries and links become invalid; every
// later operation returns domain.ErrReleased.
func (l *List) Release() {
	if l.released {
		return
	}
	l.released = true
	l.entries = nil
	l.byKey = map[string]*domain.Entry{}
	l.links = nil
	l.surface.Cleared()
}

// Released reports whether Release was called.
func (l *List) Released() bool {
	return l.released
}

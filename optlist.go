package optlist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwilhelm/optlist/internal/engine"
	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

// Panel is the high-level entry point for the optlist library.
// It wraps the internal engine and provides a simplified API for hosts:
// a list of boolean options bound to configuration values, with
// implication links between them and policy-based locking.
type Panel struct {
	engine    *engine.List
	source    ports.ConfigSource
	committer ports.Committer
	drafts    ports.DraftStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	engineOpts []engine.Option
}

// Option defines a functional option for configuring the Panel.
type Option func(*Panel)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Panel) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the panel.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Panel) {
		p.logger = logger
	}
}

// WithSurface attaches the rendering collaborator notified of entry
// additions and state changes.
func WithSurface(s ports.Surface) Option {
	return func(p *Panel) {
		p.engineOpts = append(p.engineOpts, engine.WithSurface(s))
	}
}

// WithPolicy attaches the enforcement policy consulted for locks.
func WithPolicy(pol ports.Policy) Option {
	return func(p *Panel) {
		p.engineOpts = append(p.engineOpts, engine.WithPolicy(pol))
	}
}

// WithConfigSource sets the keyed configuration backend used by
// CreateKeyedItem.
func WithConfigSource(src ports.ConfigSource) Option {
	return func(p *Panel) {
		p.source = src
	}
}

// WithCommitter sets a flush step run after a successful write-back,
// typically the persistence layer of the config source.
func WithCommitter(c ports.Committer) Option {
	return func(p *Panel) {
		p.committer = c
	}
}

// WithDraftStore enables SaveDraft and RestoreDraft.
func WithDraftStore(store ports.DraftStore) Option {
	return func(p *Panel) {
		p.drafts = store
	}
}

// ItemOption configures a single entry at creation time.
type ItemOption = engine.ItemOption

// WithTooltip sets the entry's markdown help text.
func WithTooltip(text string) ItemOption { return engine.WithTooltip(text) }

// WithOverride pins the entry's state and disables user toggling.
func WithOverride(o domain.Override) ItemOption { return engine.WithOverride(o) }

// New initializes an empty Panel. Entries are added with CreateItem or
// CreateKeyedItem, or in bulk from a manifest.
func New(opts ...Option) *Panel {
	p := &Panel{}
	for _, opt := range opts {
		opt(p)
	}

	engineOpts := []engine.Option{engine.WithHooks(p.hooks)}
	if p.logger != nil {
		engineOpts = append(engineOpts, engine.WithLogger(p.logger))
	}
	engineOpts = append(engineOpts, p.engineOpts...)

	p.engine = engine.New(engineOpts...)
	return p
}

// CreateItem adds an entry backed by an explicit binding.
func (p *Panel) CreateItem(b domain.Binding, group, label, key string, opts ...ItemOption) (domain.View, error) {
	e, err := p.engine.CreateItem(b, group, label, key, opts...)
	if err != nil {
		return domain.View{}, err
	}
	return e.Snapshot(), nil
}

// CreateKeyedItem adds an entry bound to the panel's configuration
// source under the entry's own key. Requires WithConfigSource.
func (p *Panel) CreateKeyedItem(group, label, key string, opts ...ItemOption) (domain.View, error) {
	if p.source == nil {
		return domain.View{}, fmt.Errorf("keyed entry %s: no config source configured", key)
	}
	src := p.source
	b := domain.Binding{
		Get: func() (bool, error) { return src.Get(key) },
		Set: func(v bool) error { return src.Set(key, v) },
	}
	return p.CreateItem(b, group, label, key, opts...)
}

// AddLink registers an implication between two existing entries.
func (p *Panel) AddLink(source, target string, t domain.LinkType) error {
	return p.engine.AddLink(source, target, t)
}

// SetChecked applies a user toggle and propagates implication links.
func (p *Panel) SetChecked(key string, checked bool) error {
	return p.engine.SetChecked(key, checked)
}

// Entry returns a snapshot of a single entry.
func (p *Panel) Entry(key string) (domain.View, error) {
	e, err := p.engine.Entry(key)
	if err != nil {
		return domain.View{}, err
	}
	return e.Snapshot(), nil
}

// Entries returns snapshots of all entries in creation order.
func (p *Panel) Entries() []domain.View {
	return p.engine.Entries()
}

// Links returns the registered implication links in registration order.
func (p *Panel) Links() []domain.Link {
	return p.engine.Links()
}

// States returns the displayed states keyed by entry.
func (p *Panel) States() map[string]bool {
	return p.engine.States()
}

// Load re-reads every bound value into the panel and refreshes policy
// locks. Displayed state is overwritten; bound values are untouched.
func (p *Panel) Load() error {
	return p.engine.UpdateData(false)
}

// Commit writes displayed states back to their bound values, skipping
// policy-locked entries, then flushes the committer if one is
// configured. Per-entry write failures are aggregated into a
// *domain.CommitError; a failing entry never blocks the rest.
func (p *Panel) Commit(ctx context.Context) error {
	if err := p.engine.UpdateData(true); err != nil {
		return err
	}
	if p.committer != nil {
		if err := p.committer.Commit(ctx); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
	return nil
}

// SaveDraft stores the current displayed states under name without
// touching the bound values. Requires WithDraftStore.
func (p *Panel) SaveDraft(ctx context.Context, name string) error {
	if p.drafts == nil {
		return fmt.Errorf("save draft %s: no draft store configured", name)
	}
	draft := &domain.Draft{States: p.engine.States(), SavedAt: time.Now().UTC()}
	return p.drafts.Save(ctx, name, draft)
}

// RestoreDraft applies a stored draft's states to matching enabled
// entries. Unknown keys in the draft are ignored.
func (p *Panel) RestoreDraft(ctx context.Context, name string) error {
	if p.drafts == nil {
		return fmt.Errorf("restore draft %s: no draft store configured", name)
	}
	draft, err := p.drafts.Load(ctx, name)
	if err != nil {
		return err
	}
	return p.engine.Restore(draft)
}

// DeleteDraft removes a stored draft.
func (p *Panel) DeleteDraft(ctx context.Context, name string) error {
	if p.drafts == nil {
		return fmt.Errorf("delete draft %s: no draft store configured", name)
	}
	return p.drafts.Delete(ctx, name)
}

// Drafts lists stored draft names.
func (p *Panel) Drafts(ctx context.Context) ([]string, error) {
	if p.drafts == nil {
		return nil, nil
	}
	return p.drafts.List(ctx)
}

// Release detaches all bindings and invalidates the panel.
func (p *Panel) Release() {
	p.engine.Release()
}

// Released reports whether Release was called.
func (p *Panel) Released() bool {
	return p.engine.Released()
}

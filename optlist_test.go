package optlist_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

type mapSource struct {
	values map[string]bool
	setErr error
}

func (s *mapSource) Get(key string) (bool, error) {
	v, ok := s.values[key]
	if !ok {
		return false, fmt.Errorf("unknown key: %s", key)
	}
	return v, nil
}

func (s *mapSource) Set(key string, value bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

type countingCommitter struct {
	calls int
	err   error
}

func (c *countingCommitter) Commit(ctx context.Context) error {
	c.calls++
	return c.err
}

type mapDraftStore struct {
	drafts map[string]*domain.Draft
}

func (s *mapDraftStore) Save(ctx context.Context, name string, d *domain.Draft) error {
	if s.drafts == nil {
		s.drafts = map[string]*domain.Draft{}
	}
	s.drafts[name] = d.Clone()
	return nil
}

func (s *mapDraftStore) Load(ctx context.Context, name string) (*domain.Draft, error) {
	d, ok := s.drafts[name]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return d.Clone(), nil
}

func (s *mapDraftStore) Delete(ctx context.Context, name string) error {
	delete(s.drafts, name)
	return nil
}

func (s *mapDraftStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.drafts))
	for name := range s.drafts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var (
	_ ports.ConfigSource = (*mapSource)(nil)
	_ ports.Committer    = (*countingCommitter)(nil)
	_ ports.DraftStore   = (*mapDraftStore)(nil)
)

func TestPanel_KeyedItemsRoundTrip(t *testing.T) {
	src := &mapSource{values: map[string]bool{
		"security/lock_on_minimize": true,
		"security/clear_clipboard":  false,
	}}
	panel := optlist.New(optlist.WithConfigSource(src))

	_, err := panel.CreateKeyedItem("security", "Lock on minimize", "security/lock_on_minimize")
	require.NoError(t, err)
	_, err = panel.CreateKeyedItem("security", "Clear clipboard on exit", "security/clear_clipboard")
	require.NoError(t, err)

	v, err := panel.Entry("security/lock_on_minimize")
	require.NoError(t, err)
	assert.True(t, v.Checked)

	require.NoError(t, panel.SetChecked("security/clear_clipboard", true))
	require.NoError(t, panel.Commit(context.Background()))
	assert.True(t, src.values["security/clear_clipboard"])
}

func TestPanel_KeyedItemWithoutSourceFails(t *testing.T) {
	panel := optlist.New()
	_, err := panel.CreateKeyedItem("g", "A", "g/a")
	assert.Error(t, err)
}

func TestPanel_KeyedItemUnknownKeyFails(t *testing.T) {
	src := &mapSource{values: map[string]bool{}}
	panel := optlist.New(optlist.WithConfigSource(src))

	_, err := panel.CreateKeyedItem("g", "Missing", "g/missing")
	var be *domain.BindingError
	require.ErrorAs(t, err, &be)
	assert.Empty(t, panel.Entries())
}

func TestPanel_CommitFlushesCommitter(t *testing.T) {
	src := &mapSource{values: map[string]bool{"g/a": false}}
	committer := &countingCommitter{}
	panel := optlist.New(
		optlist.WithConfigSource(src),
		optlist.WithCommitter(committer),
	)

	_, err := panel.CreateKeyedItem("g", "A", "g/a")
	require.NoError(t, err)

	require.NoError(t, panel.Commit(context.Background()))
	assert.Equal(t, 1, committer.calls)
}

func TestPanel_CommitErrorSkipsFlush(t *testing.T) {
	src := &mapSource{values: map[string]bool{"g/a": false}, setErr: errors.New("readonly")}
	committer := &countingCommitter{}
	panel := optlist.New(
		optlist.WithConfigSource(src),
		optlist.WithCommitter(committer),
	)

	_, err := panel.CreateKeyedItem("g", "A", "g/a")
	require.NoError(t, err)
	require.NoError(t, panel.SetChecked("g/a", true))

	err = panel.Commit(context.Background())
	failures, ok := domain.CommitFailures(err)
	require.True(t, ok)
	assert.Len(t, failures, 1)
	assert.Equal(t, 0, committer.calls, "flush only runs after a clean write-back")
}

func TestPanel_DraftSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	src := &mapSource{values: map[string]bool{"g/a": false, "g/b": true}}
	panel := optlist.New(
		optlist.WithConfigSource(src),
		optlist.WithDraftStore(&mapDraftStore{}),
	)

	_, err := panel.CreateKeyedItem("g", "A", "g/a")
	require.NoError(t, err)
	_, err = panel.CreateKeyedItem("g", "B", "g/b")
	require.NoError(t, err)

	require.NoError(t, panel.SetChecked("g/a", true))
	require.NoError(t, panel.SaveDraft(ctx, "experiment"))

	// Abandon the draft: reload from the source.
	require.NoError(t, panel.Load())
	assert.Equal(t, map[string]bool{"g/a": false, "g/b": true}, panel.States())

	// Pick it back up later.
	require.NoError(t, panel.RestoreDraft(ctx, "experiment"))
	assert.Equal(t, map[string]bool{"g/a": true, "g/b": true}, panel.States())
	assert.False(t, src.values["g/a"], "restoring a draft does not commit")

	names, err := panel.Drafts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"experiment"}, names)

	require.NoError(t, panel.DeleteDraft(ctx, "experiment"))
	assert.ErrorIs(t, panel.RestoreDraft(ctx, "experiment"), domain.ErrDraftNotFound)
}

func TestPanel_DraftWithoutStoreFails(t *testing.T) {
	panel := optlist.New()
	assert.Error(t, panel.SaveDraft(context.Background(), "x"))
	assert.Error(t, panel.RestoreDraft(context.Background(), "x"))
	assert.Error(t, panel.DeleteDraft(context.Background(), "x"))
}

func TestPanel_HooksObserveToggles(t *testing.T) {
	var events []string
	panel := optlist.New(optlist.WithLifecycleHooks(domain.LifecycleHooks{
		OnToggle: func(ev *domain.ToggleEvent) {
			events = append(events, fmt.Sprintf("toggle:%s=%v", ev.Key, ev.Checked))
		},
		OnForce: func(ev *domain.ForceEvent) {
			events = append(events, fmt.Sprintf("force:%s=%v", ev.Target, ev.Checked))
		},
	}))

	a, b := true, true
	_, err := panel.CreateItem(domain.BindValue(&a), "g", "A", "g/a")
	require.NoError(t, err)
	_, err = panel.CreateItem(domain.BindValue(&b), "g", "B", "g/b")
	require.NoError(t, err)
	require.NoError(t, panel.AddLink("g/a", "g/b", domain.LinkUncheckedUnchecked))

	require.NoError(t, panel.SetChecked("g/a", false))
	assert.Equal(t, []string{"force:g/b=false", "toggle:g/a=false"}, events)
}

func TestPanel_ReleaseInvalidates(t *testing.T) {
	panel := optlist.New()
	v := false
	_, err := panel.CreateItem(domain.BindValue(&v), "g", "A", "g/a")
	require.NoError(t, err)

	panel.Release()
	assert.True(t, panel.Released())
	assert.ErrorIs(t, panel.Load(), domain.ErrReleased)
	assert.ErrorIs(t, panel.Commit(context.Background()), domain.ErrReleased)
}

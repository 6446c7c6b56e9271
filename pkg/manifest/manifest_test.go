package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/domain"
)

const sampleYAML = `
version: 1
name: security
entries:
  - key: security/lock_on_minimize
    group: security
    label: Lock on minimize
    default: true
  - key: security/clear_clipboard
    group: security
    label: Clear clipboard on exit
    tooltip: Wipes the clipboard when the application closes.
  - key: policy/audit
    group: policy
    label: Audit mode
    override: forced_checked
links:
  - source: security/lock_on_minimize
    target: security/clear_clipboard
    type: unchecked_unchecked
`

type fakeSource struct {
	values map[string]bool
}

func (s *fakeSource) Get(key string) (bool, error) {
	v, ok := s.values[key]
	if !ok {
		return false, fmt.Errorf("unknown key: %s", key)
	}
	return v, nil
}

func (s *fakeSource) Set(key string, value bool) error {
	s.values[key] = value
	return nil
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "security", m.Name)
	require.Len(t, m.Entries, 3)
	require.Len(t, m.Links, 1)

	def, ok := m.Entry("security/lock_on_minimize")
	require.True(t, ok)
	assert.True(t, def.Default)

	_, ok = m.Entry("nope")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Entries, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	m, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	src := &fakeSource{values: map[string]bool{
		"security/clear_clipboard": true,
	}}
	panel := optlist.New()
	require.NoError(t, m.Apply(panel, src))

	views := panel.Entries()
	require.Len(t, views, 3)

	// Missing key reads as the declared default.
	lock, err := panel.Entry("security/lock_on_minimize")
	require.NoError(t, err)
	assert.True(t, lock.Checked)

	clip, err := panel.Entry("security/clear_clipboard")
	require.NoError(t, err)
	assert.True(t, clip.Checked)
	assert.Equal(t, "Wipes the clipboard when the application closes.", clip.Tooltip)

	audit, err := panel.Entry("policy/audit")
	require.NoError(t, err)
	assert.True(t, audit.Checked)
	assert.False(t, audit.Enabled)

	// The declared link is live.
	require.NoError(t, panel.SetChecked("security/lock_on_minimize", false))
	clip, err = panel.Entry("security/clear_clipboard")
	require.NoError(t, err)
	assert.False(t, clip.Checked)
}

func TestApply_BadLinkType(t *testing.T) {
	m := &Manifest{
		Entries: []EntryDef{
			{Key: "g/a", Label: "A"},
			{Key: "g/b", Label: "B"},
		},
		Links: []LinkDef{{Source: "g/a", Target: "g/b", Type: "sideways"}},
	}
	err := m.Apply(optlist.New(), &fakeSource{values: map[string]bool{}})
	assert.Error(t, err)
}

func TestApply_BadOverride(t *testing.T) {
	m := &Manifest{Entries: []EntryDef{{Key: "g/a", Label: "A", Override: "maybe"}}}
	err := m.Apply(optlist.New(), &fakeSource{values: map[string]bool{}})
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	raw := map[string]any{
		"version": 1,
		"entries": []map[string]any{
			{"key": "g/a", "group": "g", "label": "A", "default": true},
		},
		"links": []map[string]any{
			{"source": "g/a", "target": "g/b", "type": "checked_checked"},
		},
	}

	m, err := FromMap(raw)
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "g/a", m.Entries[0].Key)
	assert.True(t, m.Entries[0].Default)
	require.Len(t, m.Links, 1)
	assert.Equal(t, "checked_checked", m.Links[0].Type)
}

func TestBuilder(t *testing.T) {
	m, err := NewBuilder().
		Name("startup").
		Entry("startup/remember_last").
		Group("startup").
		Label("Remember last opened file").
		Default(true).
		Done().
		Entry("startup/open_last").
		Group("startup").
		Label("Open last file on start").
		Tooltip("Requires remembering the last file.").
		Done().
		Link("startup/remember_last", "startup/open_last", domain.LinkUncheckedUnchecked).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "startup", m.Name)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, "startup/remember_last", m.Entries[0].Key)
	require.Len(t, m.Links, 1)
	assert.Equal(t, "unchecked_unchecked", m.Links[0].Type)

	// Re-adding an existing key returns the same entry builder.
	b := NewBuilder()
	b.Entry("g/a").Label("first")
	b.Entry("g/a").Group("g")
	m2, err := b.Build()
	require.NoError(t, err)
	require.Len(t, m2.Entries, 1)
	assert.Equal(t, "first", m2.Entries[0].Label)
	assert.Equal(t, "g", m2.Entries[0].Group)
}

func TestBuilder_RequiresLabel(t *testing.T) {
	b := NewBuilder()
	b.Entry("g/a")
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuilder_Forced(t *testing.T) {
	b := NewBuilder()
	b.Entry("g/a").Label("A").Forced(true)
	b.Entry("g/b").Label("B").Forced(false)
	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "forced_checked", m.Entries[0].Override)
	assert.Equal(t, "forced_unchecked", m.Entries[1].Override)
}

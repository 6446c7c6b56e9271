package manifest

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist/internal/testutils"
)

func seedOptionDocs(t *testing.T, repo core.Repository) {
	t.Helper()
	ctx := context.Background()

	docs := []core.Document{
		{
			ID: "lock_on_minimize.md",
			Content: `---
key: security/lock_on_minimize
group: security
label: Lock on minimize
default: true
links:
  - target: security/clear_clipboard
    type: unchecked_unchecked
---
Locks the workspace when the main window is minimized.`,
		},
		{
			ID: "clear_clipboard.md",
			Content: `---
key: security/clear_clipboard
group: security
label: Clear clipboard on exit
---
Wipes the clipboard when the application closes.`,
		},
	}

	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc))
	}
}

func TestSource_Manifest(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, loam.WithStrict(true))
	seedOptionDocs(t, repo)

	src := NewSource(loam.NewTypedRepository[EntryMetadata](repo))
	m, err := src.Manifest(context.Background())
	require.NoError(t, err)

	require.Len(t, m.Entries, 2)
	// Entries come back sorted by key.
	assert.Equal(t, "security/clear_clipboard", m.Entries[0].Key)
	assert.Equal(t, "security/lock_on_minimize", m.Entries[1].Key)

	lock := m.Entries[1]
	assert.Equal(t, "security", lock.Group)
	assert.Equal(t, "Lock on minimize", lock.Label)
	assert.True(t, lock.Default)
	assert.Equal(t, "Locks the workspace when the main window is minimized.", lock.Tooltip)

	require.Len(t, m.Links, 1)
	assert.Equal(t, "security/lock_on_minimize", m.Links[0].Source)
	assert.Equal(t, "security/clear_clipboard", m.Links[0].Target)
	assert.Equal(t, "unchecked_unchecked", m.Links[0].Type)
}

func TestSource_Manifest_KeyFallsBackToDocID(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, loam.WithStrict(true))
	require.NoError(t, repo.Save(context.Background(), core.Document{
		ID: "bare.md",
		Content: `---
label: Bare option
---
`,
	}))

	src := NewSource(loam.NewTypedRepository[EntryMetadata](repo))
	m, err := src.Manifest(context.Background())
	require.NoError(t, err)

	require.Len(t, m.Entries, 1)
	assert.Equal(t, "bare", m.Entries[0].Key)
}

func TestSource_Manifest_KeyCollision(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, loam.WithStrict(true))
	ctx := context.Background()

	for _, id := range []string{"one.md", "two.md"} {
		require.NoError(t, repo.Save(ctx, core.Document{
			ID: id,
			Content: `---
key: g/same
label: Same
---
`,
		}))
	}

	src := NewSource(loam.NewTypedRepository[EntryMetadata](repo))
	_, err := src.Manifest(ctx)
	assert.ErrorContains(t, err, "collision")
}

func TestOpen_InvalidPathStillInitializes(t *testing.T) {
	// Loam initializes empty repositories; an empty dir yields an empty
	// manifest rather than an error.
	src, err := Open(t.TempDir())
	require.NoError(t, err)

	m, err := src.Manifest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// RunDraftStoreContract verifies that a DraftStore implementation adheres
// to the interface contract. Every adapter runs this suite.
func RunDraftStoreContract(t *testing.T, store DraftStore) {
	ctx := context.Background()
	draftID := "contract-test-draft-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		draft := domain.NewDraft()
		draft.States["security/lock_on_minimize"] = true
		draft.States["ui/show_tray_icon"] = false

		err := store.Save(ctx, draftID, draft)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, draftID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, true, loaded.States["security/lock_on_minimize"])
		assert.Equal(t, false, loaded.States["ui/show_tray_icon"])
		assert.False(t, loaded.SavedAt.IsZero(), "SavedAt should survive the round trip")
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		draft := domain.NewDraft()
		draft.States["a"] = true
		require.NoError(t, store.Save(ctx, draftID, draft))

		first, err := store.Load(ctx, draftID)
		require.NoError(t, err)
		first.States["a"] = false

		second, err := store.Load(ctx, draftID)
		require.NoError(t, err)
		assert.True(t, second.States["a"], "mutating a loaded draft must not affect the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+draftID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, draftID, domain.NewDraft()))

		err := store.Delete(ctx, draftID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, draftID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound, "Load after Delete should return ErrDraftNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := draftID + "-1"
		id2 := draftID + "-2"
		_ = store.Save(ctx, id1, domain.NewDraft())
		_ = store.Save(ctx, id2, domain.NewDraft())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// RunConfigSourceContract verifies that a ConfigSource implementation
// adheres to the interface contract. seed maps keys to initial values the
// source is expected to already hold.
func RunConfigSourceContract(t *testing.T, src ConfigSource, seed map[string]bool) {
	t.Run("Get seeded keys", func(t *testing.T) {
		for key, want := range seed {
			got, err := src.Get(key)
			require.NoError(t, err, "Get(%q)", key)
			assert.Equal(t, want, got, "Get(%q)", key)
		}
	})

	t.Run("Get missing key", func(t *testing.T) {
		_, err := src.Get("no/such/key")
		require.Error(t, err, "missing keys must be an error, not a zero value")
	})

	t.Run("Set then Get", func(t *testing.T) {
		for key, old := range seed {
			require.NoError(t, src.Set(key, !old))
			got, err := src.Get(key)
			require.NoError(t, err)
			assert.Equal(t, !old, got)
			// Restore so the suite is re-runnable against the same source.
			require.NoError(t, src.Set(key, old))
		}
	})
}

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist/pkg/ports"
)

func TestSource_Contract(t *testing.T) {
	seed := map[string]bool{
		"security/lock_on_minimize": true,
		"ui/show_tray_icon":         false,
	}
	ports.RunConfigSourceContract(t, NewSource(seed), seed)
}

func TestSource_SeedIsCopied(t *testing.T) {
	seed := map[string]bool{"g/a": true}
	src := NewSource(seed)

	seed["g/a"] = false
	got, err := src.Get("g/a")
	require.NoError(t, err)
	assert.True(t, got, "mutating the seed map must not affect the source")
}

func TestSource_Snapshot(t *testing.T) {
	src := NewSource(map[string]bool{"g/a": true})
	require.NoError(t, src.Set("g/b", false))

	snap := src.Snapshot()
	assert.Equal(t, map[string]bool{"g/a": true, "g/b": false}, snap)

	snap["g/a"] = false
	got, err := src.Get("g/a")
	require.NoError(t, err)
	assert.True(t, got, "snapshots are copies")
}

func TestDraftStore_Contract(t *testing.T) {
	ports.RunDraftStoreContract(t, NewDraftStore())
}

var (
	_ ports.ConfigSource = (*Source)(nil)
	_ ports.DraftStore   = (*DraftStore)(nil)
)

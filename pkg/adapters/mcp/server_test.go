package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/adapters/memory"
	"github.com/dwilhelm/optlist/pkg/domain"
)

func newTestServer(t *testing.T) (*Server, *memory.Source) {
	t.Helper()

	src := memory.NewSource(map[string]bool{
		"security/lock_on_minimize": true,
		"security/clear_clipboard":  true,
	})
	panel := optlist.New(
		optlist.WithConfigSource(src),
		optlist.WithDraftStore(memory.NewDraftStore()),
	)

	_, err := panel.CreateKeyedItem("security", "Lock on minimize", "security/lock_on_minimize")
	require.NoError(t, err)
	_, err = panel.CreateKeyedItem("security", "Clear clipboard on exit", "security/clear_clipboard")
	require.NoError(t, err)
	require.NoError(t, panel.AddLink("security/lock_on_minimize", "security/clear_clipboard", domain.LinkUncheckedUnchecked))

	return NewServer(panel), src
}

func TestHandleGetPanel(t *testing.T) {
	s, _ := newTestServer(t)

	snap, err := s.handleGetPanel(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, snap.Entries, 2)
	require.Len(t, snap.Links, 1)
	assert.Equal(t, "security/lock_on_minimize", snap.Entries[0].Key)
}

func TestHandleToggle_Propagates(t *testing.T) {
	s, _ := newTestServer(t)

	snap, err := s.handleToggle(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"key":     "security/lock_on_minimize",
		"checked": false,
	})
	require.NoError(t, err)

	byKey := map[string]domain.View{}
	for _, v := range snap.Entries {
		byKey[v.Key] = v
	}
	assert.False(t, byKey["security/lock_on_minimize"].Checked)
	assert.False(t, byKey["security/clear_clipboard"].Checked, "the implication link fired")
}

func TestHandleToggle_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handleToggle(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"checked": true,
	})
	assert.ErrorContains(t, err, "missing entry key")

	_, err = s.handleToggle(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"key":     "nope",
		"checked": true,
	})
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestHandleLoad_RefreshesFromSource(t *testing.T) {
	s, src := newTestServer(t)

	require.NoError(t, src.Set("security/clear_clipboard", false))

	snap, err := s.handleLoad(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)

	for _, v := range snap.Entries {
		if v.Key == "security/clear_clipboard" {
			assert.False(t, v.Checked)
		}
	}
}

func TestHandleRestoreDraft_Missing(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handleRestoreDraft(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"name": "nope",
	})
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

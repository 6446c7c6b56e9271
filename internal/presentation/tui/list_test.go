package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilhelm/optlist/pkg/domain"
)

func TestRenderList(t *testing.T) {
	entries := []domain.View{
		{Key: "security/lock", Group: "security", Label: "Lock on minimize", Checked: true, Enabled: true},
		{Key: "security/clear", Group: "security", Label: "Clear clipboard", Checked: false, Enabled: true},
		{Key: "policy/audit", Group: "policy", Label: "Audit mode", Checked: true, Locked: true},
		{Key: "ui/tray", Group: "ui", Label: "Show tray icon", Checked: false, Enabled: false},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderList(&buf, entries, ListOptions{Width: 80}))
	out := buf.String()

	assert.Contains(t, out, "security")
	assert.Contains(t, out, "[x] Lock on minimize")
	assert.Contains(t, out, "[ ] Clear clipboard")
	assert.Contains(t, out, "[x] Audit mode  (locked)")
	assert.Contains(t, out, "[ ] Show tray icon  (forced)")

	// Each group header appears once, in panel order.
	assert.Equal(t, 1, strings.Count(out, "policy"))
	assert.Less(t, strings.Index(out, "security"), strings.Index(out, "policy"))
}

func TestRenderList_Tooltips(t *testing.T) {
	entries := []domain.View{
		{Key: "security/lock", Group: "security", Label: "Lock on minimize", Enabled: true,
			Tooltip: "Locks the workspace when the window is minimized."},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderList(&buf, entries, ListOptions{Tooltips: true, Width: 80}))

	assert.Contains(t, buf.String(), "Locks the workspace")
}

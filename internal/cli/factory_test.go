package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `version: 1
name: Security options
entries:
  - key: security/lock_on_minimize
    group: security
    label: Lock on minimize
    default: true
  - key: security/clear_clipboard
    group: security
    label: Clear clipboard on exit
  - key: policy/audit
    group: policy
    label: Audit mode
    default: true
links:
  - source: security/lock_on_minimize
    target: security/clear_clipboard
    type: unchecked_unchecked
`

func writeTestProject(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0o644))

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("security/lock_on_minimize: false\n"), 0o644))

	return Config{ManifestPath: manifestPath, ConfigPath: configPath}
}

func TestBuildPanel(t *testing.T) {
	cfg := writeTestProject(t)

	panel, _, err := BuildPanel(context.Background(), cfg)
	require.NoError(t, err)

	entries := panel.Entries()
	require.Len(t, entries, 3)
	assert.False(t, entries[0].Checked, "config file value wins over manifest default")
	assert.True(t, entries[2].Checked, "manifest default fills a missing key")
	require.Len(t, panel.Links(), 1)
}

func TestBuildPanel_LockPrefixes(t *testing.T) {
	cfg := writeTestProject(t)
	cfg.LockPrefixes = []string{"policy/"}

	panel, _, err := BuildPanel(context.Background(), cfg)
	require.NoError(t, err)

	v, err := panel.Entry("policy/audit")
	require.NoError(t, err)
	assert.True(t, v.Locked)
	assert.False(t, v.Enabled)
}

func TestBuildPanel_CommitWritesConfig(t *testing.T) {
	cfg := writeTestProject(t)

	panel, _, err := BuildPanel(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, panel.SetChecked("security/lock_on_minimize", true))
	require.NoError(t, panel.Commit(context.Background()))

	data, err := os.ReadFile(cfg.ConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "security/lock_on_minimize: true")
}

func TestBuildPanel_MissingManifest(t *testing.T) {
	_, _, err := BuildPanel(context.Background(), Config{
		ManifestPath: filepath.Join(t.TempDir(), "nope.yaml"),
		ConfigPath:   filepath.Join(t.TempDir(), "config.yaml"),
	})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

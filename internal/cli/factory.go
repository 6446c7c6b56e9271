// Package cli assembles panels from command-line configuration: a
// manifest (YAML file or loam markdown directory), a YAML config file,
// and optional policy lock prefixes.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/internal/logging"
	"github.com/dwilhelm/optlist/pkg/adapters/file"
	"github.com/dwilhelm/optlist/pkg/manifest"
	"github.com/dwilhelm/optlist/pkg/policy"
	"github.com/dwilhelm/optlist/pkg/ports"
	"github.com/dwilhelm/optlist/pkg/schema"
)

// Config carries the flags shared by panel-driving commands.
type Config struct {
	// ManifestPath is a YAML manifest file or a loam markdown directory.
	ManifestPath string
	// ConfigPath is the YAML document the entries bind to.
	ConfigPath string
	// LockPrefixes marks key prefixes as policy-locked.
	LockPrefixes []string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadManifest reads the manifest from a YAML file or, when the path is
// a directory, assembles it from a loam markdown repository.
func LoadManifest(ctx context.Context, path string) (*manifest.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if info.IsDir() {
		src, err := manifest.Open(path)
		if err != nil {
			return nil, err
		}
		return src.Manifest(ctx)
	}
	return manifest.Load(path)
}

// BuildPanel assembles a panel from cfg: manifest entries and links
// bound to the config file, with prefix policy locks applied. The
// returned source doubles as the panel's committer.
func BuildPanel(ctx context.Context, cfg Config, opts ...optlist.Option) (*optlist.Panel, *file.Source, error) {
	m, err := LoadManifest(ctx, cfg.ManifestPath)
	if err != nil {
		return nil, nil, err
	}

	keys := make([]string, 0, len(m.Entries))
	for _, def := range m.Entries {
		keys = append(keys, def.Key)
	}
	src, err := file.Open(cfg.ConfigPath, file.WithSchema(schema.FromKeys(keys...)))
	if err != nil {
		return nil, nil, err
	}

	panelOpts := []optlist.Option{
		optlist.WithLogger(NewLogger(cfg.LogLevel)),
		optlist.WithConfigSource(src),
		optlist.WithCommitter(src),
	}
	if len(cfg.LockPrefixes) > 0 {
		locks := make(policy.Any, 0, len(cfg.LockPrefixes))
		for _, prefix := range cfg.LockPrefixes {
			locks = append(locks, policy.NewPrefix(prefix))
		}
		panelOpts = append(panelOpts, optlist.WithPolicy(locks))
	}
	panelOpts = append(panelOpts, opts...)

	panel := optlist.New(panelOpts...)
	if err := m.Apply(panel, src); err != nil {
		return nil, nil, err
	}

	return panel, src, nil
}

var _ ports.Committer = (*file.Source)(nil)

// NewLogger builds the application logger for a textual level.
func NewLogger(level string) *slog.Logger {
	return logging.New(ParseLevel(level))
}

// ParseLevel maps a flag value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package file provides YAML-file adapters: a buffered configuration
// source that rewrites its document atomically on commit, and a draft
// store backed by a directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dwilhelm/optlist/pkg/schema"
)

// Source exposes a flat YAML document as a configuration source.
// Writes are buffered in memory; Commit rewrites the file atomically
// (temp file plus rename), so a crash mid-commit never truncates the
// document.
type Source struct {
	mu     sync.Mutex
	path   string
	values map[string]any
	schema schema.Schema
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithSchema validates the document against a schema at open time.
func WithSchema(s schema.Schema) SourceOption {
	return func(src *Source) {
		src.schema = s
	}
}

// Open reads the YAML document at path. A missing file is an empty
// document; it is created on the first commit.
func Open(path string, opts ...SourceOption) (*Source, error) {
	src := &Source{path: path, values: make(map[string]any)}
	for _, opt := range opts {
		opt(src)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if len(data) > 0 {
		if err := yaml.Unmarshal(data, &src.values); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if src.values == nil {
			src.values = make(map[string]any)
		}
	}

	if src.schema != nil {
		if err := schema.Validate(src.schema, src.values); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	return src, nil
}

// Get reads the value for key. Missing or non-boolean keys are errors.
func (s *Source) Get(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return false, fmt.Errorf("unknown key: %s", key)
	}
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("key %s: expected bool, got %T", key, raw)
	}
	return v, nil
}

// Set buffers the value for key until the next Commit.
func (s *Source) Set(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Commit rewrites the document with all buffered values.
func (s *Source) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeAtomic(s.path, data)
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

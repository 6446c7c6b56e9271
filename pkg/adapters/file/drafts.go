package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dwilhelm/optlist/pkg/domain"
)

const draftExt = ".yaml"

// DraftStore persists drafts as YAML files in a directory, one file
// per draft.
type DraftStore struct {
	dir string
}

// NewDraftStore creates the directory if needed and returns the store.
func NewDraftStore(dir string) (*DraftStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &DraftStore{dir: dir}, nil
}

func (s *DraftStore) draftPath(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid draft id: %q", id)
	}
	return filepath.Join(s.dir, id+draftExt), nil
}

// Save writes the draft atomically.
func (s *DraftStore) Save(ctx context.Context, id string, draft *domain.Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.draftPath(id)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return writeAtomic(path, data)
}

// Load reads the named draft, or returns domain.ErrDraftNotFound.
func (s *DraftStore) Load(ctx context.Context, id string) (*domain.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.draftPath(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var draft domain.Draft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", id, err)
	}
	if draft.States == nil {
		draft.States = make(map[string]bool)
	}
	return &draft, nil
}

// Delete removes the named draft. Deleting a missing draft is a no-op.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.draftPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// List returns all draft IDs in the directory, sorted.
func (s *DraftStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, draftExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, draftExt))
	}
	sort.Strings(ids)
	return ids, nil
}

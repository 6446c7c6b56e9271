package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
)

// EntryMetadata is the frontmatter of one option document in a loam
// repository. The markdown body becomes the entry's tooltip.
type EntryMetadata struct {
	Key      string    `json:"key" mapstructure:"key"`
	Group    string    `json:"group" mapstructure:"group"`
	Label    string    `json:"label" mapstructure:"label"`
	Default  bool      `json:"default" mapstructure:"default"`
	Override string    `json:"override" mapstructure:"override"`
	Links    []DocLink `json:"links" mapstructure:"links"`
}

// DocLink is an outgoing implication declared on the source document.
type DocLink struct {
	Target string `json:"target" mapstructure:"target"`
	Type   string `json:"type" mapstructure:"type"`
}

// Source reads a panel manifest out of a loam markdown repository:
// one document per option, frontmatter for the definition, body for
// the help text.
type Source struct {
	Repo *loam.TypedRepository[EntryMetadata]
}

// Open initializes a loam repository at path and wraps it as a Source.
// Strict mode keeps frontmatter types consistent across adapters;
// read-only mode avoids loam's sandbox behavior, the panel never
// modifies its own definition.
func Open(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return &Source{Repo: loam.NewTypedRepository[EntryMetadata](repo)}, nil
}

// NewSource wraps an already-typed loam repository.
func NewSource(repo *loam.TypedRepository[EntryMetadata]) *Source {
	return &Source{Repo: repo}
}

// Manifest assembles the full panel definition from the repository.
// Entries are ordered by key so the result is stable across loam's
// directory walk; links keep each document's declared order.
func (s *Source) Manifest(ctx context.Context) (*Manifest, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	m := &Manifest{Version: 1}
	seen := make(map[string]string)
	linksByKey := make(map[string][]DocLink)

	for _, doc := range docs {
		key := doc.Data.Key
		if key == "" {
			key = trimExtension(doc.ID)
		}

		if existing, ok := seen[key]; ok {
			return nil, fmt.Errorf("collision detected: key '%s' is defined in both '%s' and '%s'", key, existing, doc.ID)
		}
		seen[key] = doc.ID
		linksByKey[key] = doc.Data.Links

		label := doc.Data.Label
		if label == "" {
			label = key
		}

		m.Entries = append(m.Entries, EntryDef{
			Key:      key,
			Group:    doc.Data.Group,
			Label:    label,
			Tooltip:  strings.TrimSpace(doc.Content),
			Default:  doc.Data.Default,
			Override: doc.Data.Override,
		})
	}

	sort.Slice(m.Entries, func(i, j int) bool { return m.Entries[i].Key < m.Entries[j].Key })

	for _, def := range m.Entries {
		for _, dl := range linksByKey[def.Key] {
			if dl.Target == "" {
				return nil, fmt.Errorf("entry %s: link without target", def.Key)
			}
			m.Links = append(m.Links, LinkDef{Source: def.Key, Target: dl.Target, Type: dl.Type})
		}
	}

	return m, nil
}

// Watch surfaces repository change events, for hosts that rebuild the
// panel on edit.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Package manifest loads panel definitions from YAML files, from a
// fluent builder, or from a loam markdown repository, and applies them
// to a Panel against a keyed configuration source.
package manifest

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

// EntryDef declares one option in a manifest.
// Tags cover both YAML files and loam frontmatter (mapstructure).
type EntryDef struct {
	Key      string `yaml:"key" json:"key" mapstructure:"key"`
	Group    string `yaml:"group" json:"group" mapstructure:"group"`
	Label    string `yaml:"label" json:"label" mapstructure:"label"`
	Tooltip  string `yaml:"tooltip,omitempty" json:"tooltip,omitempty" mapstructure:"tooltip"`
	Default  bool   `yaml:"default" json:"default" mapstructure:"default"`
	Override string `yaml:"override,omitempty" json:"override,omitempty" mapstructure:"override"`
}

// LinkDef declares one implication link in a manifest.
type LinkDef struct {
	Source string `yaml:"source" json:"source" mapstructure:"source"`
	Target string `yaml:"target" json:"target" mapstructure:"target"`
	Type   string `yaml:"type" json:"type" mapstructure:"type"`
}

// Manifest is a complete panel definition.
type Manifest struct {
	Version int        `yaml:"version" json:"version" mapstructure:"version"`
	Name    string     `yaml:"name,omitempty" json:"name,omitempty" mapstructure:"name"`
	Entries []EntryDef `yaml:"entries" json:"entries" mapstructure:"entries"`
	Links   []LinkDef  `yaml:"links,omitempty" json:"links,omitempty" mapstructure:"links"`
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and decodes a YAML manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// FromMap decodes an already-parsed manifest, as produced by JSON wire
// adapters or frontmatter readers.
func FromMap(raw map[string]any) (*Manifest, error) {
	var m Manifest
	if err := mapstructure.Decode(raw, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Apply creates the manifest's entries and links on panel, binding each
// entry to src under its own key. A key missing from the source reads
// as the entry's declared default; the key is materialized on the first
// commit.
func (m *Manifest) Apply(panel *optlist.Panel, src ports.ConfigSource) error {
	for _, def := range m.Entries {
		override, err := domain.ParseOverride(def.Override)
		if err != nil {
			return fmt.Errorf("entry %s: %w", def.Key, err)
		}

		key, def := def.Key, def
		b := domain.Binding{
			Get: func() (bool, error) {
				v, err := src.Get(key)
				if err != nil {
					return def.Default, nil
				}
				return v, nil
			},
			Set: func(v bool) error { return src.Set(key, v) },
		}

		opts := []optlist.ItemOption{optlist.WithOverride(override)}
		if def.Tooltip != "" {
			opts = append(opts, optlist.WithTooltip(def.Tooltip))
		}
		if _, err := panel.CreateItem(b, def.Group, def.Label, def.Key, opts...); err != nil {
			return fmt.Errorf("entry %s: %w", def.Key, err)
		}
	}

	for _, def := range m.Links {
		t, err := domain.ParseLinkType(def.Type)
		if err != nil {
			return fmt.Errorf("link %s -> %s: %w", def.Source, def.Target, err)
		}
		if err := panel.AddLink(def.Source, def.Target, t); err != nil {
			return fmt.Errorf("link %s -> %s: %w", def.Source, def.Target, err)
		}
	}
	return nil
}

// Entry returns the definition for key, if present.
func (m *Manifest) Entry(key string) (EntryDef, bool) {
	for _, def := range m.Entries {
		if def.Key == key {
			return def, true
		}
	}
	return EntryDef{}, false
}

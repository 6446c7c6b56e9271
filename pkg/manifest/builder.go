package manifest

import (
	"fmt"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// Builder constructs a Manifest fluently, for hosts that define their
// panel in code rather than in files.
type Builder struct {
	entries []*EntryBuilder
	links   []LinkDef
	byKey   map[string]*EntryBuilder
	name    string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{byKey: make(map[string]*EntryBuilder)}
}

// Name sets the manifest name.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Entry adds an option definition, or returns the existing one for key.
func (b *Builder) Entry(key string) *EntryBuilder {
	if eb, ok := b.byKey[key]; ok {
		return eb
	}
	eb := &EntryBuilder{def: EntryDef{Key: key}, builder: b}
	b.entries = append(b.entries, eb)
	b.byKey[key] = eb
	return eb
}

// Link declares an implication between two entries.
func (b *Builder) Link(source, target string, t domain.LinkType) *Builder {
	b.links = append(b.links, LinkDef{Source: source, Target: target, Type: t.String()})
	return b
}

// Build compiles the manifest.
func (b *Builder) Build() (*Manifest, error) {
	m := &Manifest{Version: 1, Name: b.name}
	for _, eb := range b.entries {
		if eb.def.Label == "" {
			return nil, fmt.Errorf("entry %s: label is required", eb.def.Key)
		}
		m.Entries = append(m.Entries, eb.def)
	}
	m.Links = b.links
	return m, nil
}

// EntryBuilder configures a single option definition.
type EntryBuilder struct {
	def     EntryDef
	builder *Builder
}

// Group sets the visual section.
func (eb *EntryBuilder) Group(group string) *EntryBuilder {
	eb.def.Group = group
	return eb
}

// Label sets the user-visible text.
func (eb *EntryBuilder) Label(label string) *EntryBuilder {
	eb.def.Label = label
	return eb
}

// Tooltip sets the markdown help text.
func (eb *EntryBuilder) Tooltip(text string) *EntryBuilder {
	eb.def.Tooltip = text
	return eb
}

// Default sets the value used when the config source has no entry yet.
func (eb *EntryBuilder) Default(v bool) *EntryBuilder {
	eb.def.Default = v
	return eb
}

// Forced pins the entry's displayed state and disables toggling.
func (eb *EntryBuilder) Forced(checked bool) *EntryBuilder {
	if checked {
		eb.def.Override = domain.ForcedChecked.String()
	} else {
		eb.def.Override = domain.ForcedUnchecked.String()
	}
	return eb
}

// Done returns to the parent builder for chaining.
func (eb *EntryBuilder) Done() *Builder {
	return eb.builder
}

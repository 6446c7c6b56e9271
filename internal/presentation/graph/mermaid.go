// Package graph renders a panel's entries and implication links as a
// Mermaid flowchart for documentation and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	Entries []domain.View
}

// GenerateMermaid produces Mermaid flowchart syntax from a panel's
// entries and links. Entry shape marks its binding role:
// - Locked: [[Subroutine]]
// - Forced (override): [/Parallelogram/]
// - Default: [Rectangle]
// An overlay styles checked and locked entries when provided.
func GenerateMermaid(entries []domain.View, links []domain.Link, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	group := ""
	for _, v := range entries {
		if v.Group != group {
			if group != "" {
				sb.WriteString("    end\n")
			}
			group = v.Group
			sb.WriteString(fmt.Sprintf("    subgraph %s\n", sanitizeMermaidID(group)))
		}

		safeID := sanitizeMermaidID(v.Key)

		opener, closer := "[", "]"
		switch {
		case v.Locked:
			opener, closer = "[[", "]]"
		case !v.Enabled:
			opener, closer = "[/", "/]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(v.Label), closer))
	}
	if group != "" {
		sb.WriteString("    end\n")
	}

	for _, l := range links {
		safeFrom := sanitizeMermaidID(l.Source)
		safeTo := sanitizeMermaidID(l.Target)

		// Checked triggers draw solid, unchecked triggers dotted; the
		// label names the state forced on the target.
		var arrow string
		switch l.Type {
		case domain.LinkCheckedChecked:
			arrow = `-- "checks" -->`
		case domain.LinkCheckedUnchecked:
			arrow = `-- "unchecks" -->`
		case domain.LinkUncheckedChecked:
			arrow = `-. "checks" .->`
		case domain.LinkUncheckedUnchecked:
			arrow = `-. "unchecks" .->`
		default:
			arrow = "-->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef checked fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef locked fill:#eceff1,stroke:#607d8b,stroke-width:2px,color:#000;\n")

		for _, v := range overlay.Entries {
			safeID := sanitizeMermaidID(v.Key)
			switch {
			case v.Locked:
				sb.WriteString(fmt.Sprintf("    class %s locked;\n", safeID))
			case v.Checked:
				sb.WriteString(fmt.Sprintf("    class %s checked;\n", safeID))
			}
		}
	}

	return sb.String()
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

package graph_test

import (
	"strings"
	"testing"

	"github.com/dwilhelm/optlist/internal/presentation/graph"
	"github.com/dwilhelm/optlist/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		entries  []domain.View
		links    []domain.Link
		overlay  *graph.Overlay
		contains []string
	}{
		{
			name: "Entry Shapes",
			entries: []domain.View{
				{Key: "security/lock", Group: "security", Label: "Lock on minimize", Enabled: true},
				{Key: "policy/audit", Group: "policy", Label: "Audit mode", Locked: true},
				{Key: "ui/tray", Group: "ui", Label: "Show tray icon", Enabled: false},
			},
			contains: []string{
				`security_lock["Lock on minimize"]`,
				`policy_audit[["Audit mode"]]`,
				`ui_tray[/"Show tray icon"/]`,
			},
		},
		{
			name: "Group Subgraphs",
			entries: []domain.View{
				{Key: "security/lock", Group: "security", Label: "Lock", Enabled: true},
				{Key: "ui/tray", Group: "ui", Label: "Tray", Enabled: true},
			},
			contains: []string{
				"subgraph security",
				"subgraph ui",
				"end",
			},
		},
		{
			name: "Link Arrows",
			links: []domain.Link{
				{Source: "a", Target: "b", Type: domain.LinkCheckedChecked},
				{Source: "a", Target: "c", Type: domain.LinkUncheckedUnchecked},
			},
			contains: []string{
				`a -- "checks" --> b`,
				`a -. "unchecks" .-> c`,
			},
		},
		{
			name: "Label Escaping",
			entries: []domain.View{
				{Key: "x", Group: "g", Label: `Say "hello"`, Enabled: true},
			},
			contains: []string{
				`x["Say 'hello'"]`,
			},
		},
		{
			name: "Overlay Styles",
			entries: []domain.View{
				{Key: "a", Group: "g", Label: "A", Checked: true, Enabled: true},
				{Key: "b", Group: "g", Label: "B", Checked: true, Locked: true},
			},
			overlay: &graph.Overlay{Entries: []domain.View{
				{Key: "a", Checked: true},
				{Key: "b", Checked: true, Locked: true},
			}},
			contains: []string{
				"class a checked;",
				"class b locked;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.entries, tt.links, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

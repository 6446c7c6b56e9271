package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// TerminalWidth reports the width of the attached terminal, or a sane
// default when stdout is not a TTY (pipes, CI).
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// ListOptions controls how RenderList draws the panel.
type ListOptions struct {
	// Tooltips renders each entry's tooltip markdown below its row.
	Tooltips bool
	// Width bounds tooltip word wrap. Zero means TerminalWidth().
	Width int
}

// RenderList writes the panel as a grouped checkbox list. Entries keep
// panel order; groups appear in order of first occurrence.
func RenderList(w io.Writer, entries []domain.View, opts ListOptions) error {
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}

	var renderTooltip func(string) (string, error)
	if opts.Tooltips {
		renderTooltip = NewRenderer(width)
	}

	p := termenv.ColorProfile()
	currentGroup := ""

	for _, v := range entries {
		if v.Group != currentGroup {
			currentGroup = v.Group
			header := termenv.String(currentGroup).Bold().Foreground(p.Color("#818cf8"))
			fmt.Fprintf(w, "\n%s\n", header)
		}

		if _, err := fmt.Fprintln(w, renderRow(p, v)); err != nil {
			return err
		}

		if renderTooltip != nil && strings.TrimSpace(v.Tooltip) != "" {
			out, err := renderTooltip(v.Tooltip)
			if err != nil {
				return fmt.Errorf("render tooltip for %s: %w", v.Key, err)
			}
			fmt.Fprint(w, indent(out, "    "))
		}
	}

	return nil
}

// renderRow draws one entry: checkbox, label and a lock marker when the
// entry cannot be toggled.
func renderRow(p termenv.Profile, v domain.View) string {
	box := "[ ]"
	if v.Checked {
		box = "[x]"
	}

	row := fmt.Sprintf("  %s %s", box, v.Label)
	switch {
	case v.Locked:
		row += "  (locked)"
		return termenv.String(row).Faint().String()
	case !v.Enabled:
		row += "  (forced)"
		return termenv.String(row).Faint().String()
	case v.Checked:
		return termenv.String(row).Foreground(p.Color("#a78bfa")).String()
	default:
		return row
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

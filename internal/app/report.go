package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/ui/output"
	"go.trai.ch/gendocs/internal/ui/style"
)

// writeDrifts prints one line per drifted file, followed by its diff.
func writeDrifts(w io.Writer, drifts []domain.Drift) {
	r := output.Renderer(w)
	for _, d := range drifts {
		icon, color := driftIcon(d.Kind)
		mark := r.NewStyle().Foreground(color).Bold(true).Render(icon)
		_, _ = fmt.Fprintf(w, "%s %-8s %s\n", mark, d.Kind, d.Path)
		if d.Diff != "" {
			_, _ = io.WriteString(w, indent(d.Diff))
		}
	}
}

func driftIcon(kind domain.DriftKind) (string, lipgloss.Color) {
	switch kind {
	case domain.DriftMissing:
		return style.Plus, style.Green
	case domain.DriftModified:
		return style.Tilde, style.Yellow
	default:
		return style.Minus, style.Red
	}
}

func indent(s string) string {
	var b strings.Builder
	for line := range strings.Lines(s) {
		b.WriteString("    ")
		b.WriteString(line)
	}
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

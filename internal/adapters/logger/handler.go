package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/gendocs/internal/ui/output"
	"go.trai.ch/gendocs/internal/ui/style"
)

// PrettyHandler is a slog.Handler writing one colored line per record:
// an optional level icon, the message, then key=value attributes.
type PrettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	levels map[slog.Level]levelStyle
	min    slog.Level
	attrs  string
	prefix string
}

type levelStyle struct {
	icon  string
	style lipgloss.Style
}

// NewPrettyHandler creates a PrettyHandler writing to w, or to stderr when w
// is nil. Only opts.Level is honoured.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	r := output.Renderer(w)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	h := &PrettyHandler{
		mu: &sync.Mutex{},
		w:  r.Output(),
		levels: map[slog.Level]levelStyle{
			slog.LevelInfo:  {style: base.Foreground(style.Slate)},
			slog.LevelWarn:  {icon: style.Warning, style: base.Foreground(style.Yellow)},
			slog.LevelError: {icon: style.Cross, style: base.Foreground(style.Red)},
		},
		min: slog.LevelInfo,
	}
	if opts != nil && opts.Level != nil {
		h.min = opts.Level.Level()
	}
	return h
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := h.levelStyle(r.Level)

	var line strings.Builder
	if ls.icon != "" {
		line.WriteString(ls.icon)
		line.WriteByte(' ')
	}
	line.WriteString(r.Message)
	line.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&line, h.prefix, a)
		return true
	})

	// Lines are styled one by one; lipgloss pads multi-line blocks.
	var out strings.Builder
	line.WriteByte('\n')
	for l := range strings.Lines(line.String()) {
		out.WriteString(ls.style.Render(strings.TrimSuffix(l, "\n")))
		out.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, out.String())
	return err
}

func (h *PrettyHandler) levelStyle(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return h.levels[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.levels[slog.LevelWarn]
	default:
		return h.levels[slog.LevelInfo]
	}
}

// WithAttrs implements slog.Handler. The attributes are formatted once.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup implements slog.Handler. Groups nest as dotted key prefixes.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, prefix, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.Resolve().String())
}

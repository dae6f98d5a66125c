package progrock

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/gendocs/internal/ui/output"
	"go.trai.ch/gendocs/internal/ui/style"
)

var _ progrock.Writer = (*Progress)(nil)

// Progress is a progrock.Writer printing one line per completed vertex,
// followed by the lines the vertex logged. Vertices complete once; updates
// are dropped until an output is attached with SetOutput.
type Progress struct {
	mu   sync.Mutex
	w    io.Writer
	ok   lipgloss.Style
	fail lipgloss.Style
	same lipgloss.Style
	logs map[string]*bytes.Buffer
}

// NewProgress creates a Progress without output.
func NewProgress() *Progress {
	return &Progress{
		logs: make(map[string]*bytes.Buffer),
	}
}

// SetOutput attaches w. A nil w detaches the current output.
func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w = w
	if w == nil {
		return
	}
	r := output.Renderer(w)
	p.ok = r.NewStyle().Foreground(style.Green)
	p.fail = r.NewStyle().Foreground(style.Red)
	p.same = r.NewStyle().Foreground(style.Slate)
}

// WriteStatus implements progrock.Writer.
func (p *Progress) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.w == nil {
		return nil
	}

	for _, l := range update.GetLogs() {
		buf, ok := p.logs[l.GetVertex()]
		if !ok {
			buf = &bytes.Buffer{}
			p.logs[l.GetVertex()] = buf
		}
		buf.Write(l.GetData())
	}

	for _, v := range update.GetVertexes() {
		if v.GetCompleted() == nil {
			continue
		}
		if err := p.writeVertex(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Progress) writeVertex(v *progrock.Vertex) error {
	var line string
	switch {
	case v.GetError() != "":
		line = p.fail.Render(style.Cross) + " " + v.GetName() + ": " + v.GetError()
	case v.GetCanceled():
		line = p.fail.Render(style.Cross) + " " + v.GetName() + " (canceled)"
	case v.GetCached():
		line = p.same.Render(style.Check) + " " + v.GetName() + " (unchanged)"
	default:
		line = p.ok.Render(style.Check) + " " + v.GetName()
	}
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		return err
	}

	buf, ok := p.logs[v.GetId()]
	if !ok {
		return nil
	}
	delete(p.logs, v.GetId())
	for l := range bytes.Lines(buf.Bytes()) {
		if _, err := fmt.Fprintf(p.w, "    %s", l); err != nil {
			return err
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (p *Progress) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.logs)
	return nil
}

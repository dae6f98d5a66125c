// Package progrock records generation progress on a progrock recorder and
// prints finished pages as they complete.
package progrock

import (
	"context"
	"io"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/gendocs/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on top of a progrock recorder.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a Recorder writing to a Progress with no output attached.
func New() *Recorder {
	return NewRecorder(NewProgress())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex. Vertices in a group are named "group/name".
// Every call starts a distinct vertex, even for a repeated name.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	var cfg ports.VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Group != "" {
		name = cfg.Group + "/" + name
	}
	id := digest.FromString(name + "#" + strconv.FormatUint(r.seq.Add(1), 10))
	v := &Vertex{vertex: r.rec.Vertex(id, name)}
	return ports.ContextWithVertex(ctx, v), v
}

// ShowProgress attaches w to the underlying Progress, if any.
func (r *Recorder) ShowProgress(w io.Writer) {
	if p, ok := r.w.(*Progress); ok {
		p.SetOutput(w)
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}

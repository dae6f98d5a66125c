package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/gendocs/internal/adapters/telemetry/progrock"
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
)

// tape keeps every vertex update it receives.
type tape struct {
	mu       sync.Mutex
	vertexes []*vprogrock.Vertex
	logs     []*vprogrock.VertexLog
	closed   bool
}

func (t *tape) WriteStatus(u *vprogrock.StatusUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vertexes = append(t.vertexes, u.GetVertexes()...)
	t.logs = append(t.logs, u.GetLogs()...)
	return nil
}

func (t *tape) Close() error {
	t.closed = true
	return nil
}

func (t *tape) completed() map[string]*vprogrock.Vertex {
	out := make(map[string]*vprogrock.Vertex)
	for _, v := range t.vertexes {
		if v.GetCompleted() != nil {
			out[v.GetName()] = v
		}
	}
	return out
}

func TestRecorder_Integration(t *testing.T) {
	tp := &tape{}
	recorder := progrock.NewRecorder(tp)

	ctx, vertex := recorder.Record(context.Background(), "index.md", ports.WithGroup("pages"))
	carried, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, carried)

	vertex.Log(domain.LogLevelWarn, `argument "b" is not documented`)
	vertex.Complete(nil)

	_, failed := recorder.Record(context.Background(), "broken.md", ports.WithGroup("pages"))
	failed.Complete(errors.New("render failed"))

	_, cached := recorder.Record(context.Background(), "same.md", ports.WithGroup("files"))
	cached.Cached()
	cached.Complete(nil)

	require.NoError(t, recorder.Close())
	assert.True(t, tp.closed)

	done := tp.completed()
	require.Len(t, done, 3)
	assert.Empty(t, done["pages/index.md"].GetError())
	assert.Equal(t, "render failed", done["pages/broken.md"].GetError())
	assert.True(t, done["files/same.md"].GetCached())

	require.Len(t, tp.logs, 1)
	assert.Equal(t, vprogrock.LogStream_STDERR, tp.logs[0].GetStream())
	assert.Equal(t, "[WARN] argument \"b\" is not documented\n", string(tp.logs[0].GetData()))
}

func TestRecorder_RepeatedNames(t *testing.T) {
	tp := &tape{}
	recorder := progrock.NewRecorder(tp)

	_, first := recorder.Record(context.Background(), "index.md")
	_, second := recorder.Record(context.Background(), "index.md")
	first.Complete(nil)
	second.Complete(nil)

	ids := make(map[string]bool)
	for _, v := range tp.vertexes {
		ids[v.GetId()] = true
	}
	assert.Len(t, ids, 2)
}

func TestProgress(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	recorder := progrock.New()
	recorder.ShowProgress(&buf)

	_, page := recorder.Record(context.Background(), "api/core.md", ports.WithGroup("pages"))
	page.Log(domain.LogLevelWarn, "Engine.run: argument \"b\" is not documented")
	page.Log(domain.LogLevelInfo, "rendered 2 symbols")
	page.Complete(nil)

	_, broken := recorder.Record(context.Background(), "api/io.md", ports.WithGroup("pages"))
	broken.Complete(errors.New("symbol Reader not found"))

	_, same := recorder.Record(context.Background(), "index.md", ports.WithGroup("files"))
	same.Cached()
	same.Complete(nil)

	_, canceled := recorder.Record(context.Background(), "slow.md", ports.WithGroup("pages"))
	canceled.Complete(context.Canceled)

	want := "✓ pages/api/core.md\n" +
		"    [WARN] Engine.run: argument \"b\" is not documented\n" +
		"    [INFO] rendered 2 symbols\n" +
		"✗ pages/api/io.md: symbol Reader not found\n" +
		"✓ files/index.md (unchanged)\n" +
		"✗ pages/slow.md (canceled)\n"
	assert.Equal(t, want, buf.String())
	require.NoError(t, recorder.Close())
}

func TestProgress_Detached(t *testing.T) {
	var buf bytes.Buffer
	recorder := progrock.New()
	recorder.ShowProgress(&buf)
	recorder.ShowProgress(nil)

	_, v := recorder.Record(context.Background(), "index.md")
	v.Complete(nil)

	assert.Empty(t, buf.String())
}

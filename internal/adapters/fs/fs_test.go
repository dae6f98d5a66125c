package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gendocs/internal/adapters/fs"
	"go.trai.ch/gendocs/internal/core/domain"
)

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".jj"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "ignored"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("git"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".jj", "store"), []byte("jj"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignored", "file"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", "main.py"), []byte("x = 1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("# Readme"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.tmp"), []byte("tmp"), 0o600))

	walker := fs.NewWalker()
	files := slices.Collect(walker.WalkFiles(tmpDir, []string{"ignored", "*.tmp"}))

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "README.md"),
		filepath.Join(tmpDir, "src", "main.py"),
	}, files)
}

func TestWalker_ReadAndExists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	walker := fs.NewWalker()
	assert.True(t, walker.Exists(path))
	assert.False(t, walker.Exists(filepath.Join(tmpDir, "b.txt")))

	content, err := walker.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestHasher(t *testing.T) {
	h := fs.NewHasher()
	sum := h.Sum([]byte("# Title\n"))
	assert.Len(t, sum, 16)
	assert.Equal(t, sum, h.Sum([]byte("# Title\n")))
	assert.NotEqual(t, sum, h.Sum([]byte("# Other\n")))
}

func newSite(root string) *domain.Site {
	site := domain.NewSite(root)
	site.Put("index.md", []byte("# Home\n"))
	site.Put("api/core.md", []byte("#\n\n## Engine\n"))
	return site
}

func TestPublisher_Publish(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs", "sources")
	require.NoError(t, os.MkdirAll(root, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stale.md"), []byte("old"), 0o600))

	p := fs.NewPublisher(fs.NewHasher(), fs.NewWalker())
	require.NoError(t, p.Publish(newSite(root)))

	content, err := os.ReadFile(filepath.Join(root, "api", "core.md"))
	require.NoError(t, err)
	assert.Equal(t, "#\n\n## Engine\n", string(content))
	assert.NoFileExists(t, filepath.Join(root, "stale.md"))
}

func TestPublisher_Diff(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sources")
	p := fs.NewPublisher(fs.NewHasher(), fs.NewWalker())
	site := newSite(root)

	drifts, err := p.Diff(site)
	require.NoError(t, err)
	assert.Equal(t, []domain.Drift{
		{Path: "index.md", Kind: domain.DriftMissing},
		{Path: "api/core.md", Kind: domain.DriftMissing},
	}, drifts)

	require.NoError(t, p.Publish(site))
	drifts, err = p.Diff(site)
	require.NoError(t, err)
	assert.Empty(t, drifts)

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.md"), []byte("# Old home\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "zz.md"), []byte("extra"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "aa.md"), []byte("extra"), 0o600))

	drifts, err = p.Diff(site)
	require.NoError(t, err)
	require.Len(t, drifts, 3)

	assert.Equal(t, "index.md", drifts[0].Path)
	assert.Equal(t, domain.DriftModified, drifts[0].Kind)
	assert.Contains(t, drifts[0].Diff, "--- a/index.md")
	assert.Contains(t, drifts[0].Diff, "+++ b/index.md")
	assert.Contains(t, drifts[0].Diff, "-# Old home")
	assert.Contains(t, drifts[0].Diff, "+# Home")

	assert.Equal(t, domain.Drift{Path: "aa.md", Kind: domain.DriftExtra}, drifts[1])
	assert.Equal(t, domain.Drift{Path: "zz.md", Kind: domain.DriftExtra}, drifts[2])
}

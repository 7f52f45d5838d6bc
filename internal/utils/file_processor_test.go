package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))
	}
}

func rels(files []SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Rel
	}
	return out
}

func TestWalkSources_SortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"users.go",
		"health.go",
		"doc.go",
		"health_test.go",
		"README.md",
		"admin/doc.go",
		"admin/stats.go",
		"admin/audit/log.go",
		"vendor/lib/lib.go",
		"testdata/fixture.go",
		".hidden/x.go",
		"_scratch/y.go",
		"routes_gen.go",
	)

	files, err := WalkSources(root, WalkOptions{
		IndexFiles:  DefaultIndexFiles,
		ExcludeFile: filepath.Join(root, "routes_gen.go"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"admin/audit/log.go",
		"admin/stats.go",
		"health.go",
		"users.go",
	}, rels(files))
	assert.Equal(t, filepath.Join(root, "admin", "stats.go"), files[1].Path)
}

func TestWalkSources_ReportsSkippedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.go", "_v1/x.go", ".git/y.go", "vendor/z.go")

	var out bytes.Buffer
	logger := NewDiagnosticSystem(DiagnosticVerbose)
	logger.SetOutput(&out, &out)

	files, err := WalkSources(root, WalkOptions{Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, rels(files))

	for _, dir := range []string{"_v1", ".git", "vendor"} {
		assert.Contains(t, out.String(), "skipping directory "+filepath.Join(root, dir))
	}
}

func TestWalkSources_IndexFilesConfigurable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "doc.go", "mod.go", "a.go")

	files, err := WalkSources(root, WalkOptions{IndexFiles: []string{"mod.go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "doc.go"}, rels(files))
}

func TestWalkSources_MissingRoot(t *testing.T) {
	_, err := WalkSources(filepath.Join(t.TempDir(), "missing"), WalkOptions{})
	assert.Error(t, err)
}

func TestDirExists(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.go")

	assert.True(t, DirExists(root))
	assert.False(t, DirExists(filepath.Join(root, "file.go")))
	assert.False(t, DirExists(filepath.Join(root, "nope")))
}

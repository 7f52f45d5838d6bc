package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoSource(t *testing.T) {
	src := "package x\nimport (\n\"os\"\n)\nfunc F( ) {  _ = os.Args }\n"

	out, err := FormatGoSource("x.go", []byte(src))
	require.NoError(t, err)
	assert.Contains(t, string(out), "import (\n\t\"os\"\n)")
	assert.Contains(t, string(out), "func F() { _ = os.Args }")

	_, err = FormatGoSource("x.go", []byte("package x\nfunc {"))
	assert.Error(t, err)
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "routes_gen.go")

	written, err := WriteIfChanged(path, []byte("a"))
	require.NoError(t, err)
	assert.True(t, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	mod := info.ModTime()

	written, err = WriteIfChanged(path, []byte("a"))
	require.NoError(t, err)
	assert.False(t, written)

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, mod, info.ModTime())

	written, err = WriteIfChanged(path, []byte("b"))
	require.NoError(t, err)
	assert.True(t, written)

	changed, err := FileChanged(path, []byte("b"))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"multi line", "// Code generated. DO NOT EDIT.\n\npackage main\n", "// Code generated. DO NOT EDIT."},
		{"crlf", "// header\r\npackage main\r\n", "// header"},
		{"no newline", "package main", "package main"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".go")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			header, err := ReadHeader(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, header)
		})
	}

	_, err := ReadHeader(filepath.Join(dir, "missing.go"))
	assert.True(t, os.IsNotExist(err))
}

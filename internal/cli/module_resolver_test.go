package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/switchyard/internal/errors"
)

func TestModuleResolver_ImportPath(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"go.mod": "module example.com/app\n"})
	r := NewModuleResolver("")

	tests := []struct {
		dir      string
		expected string
	}{
		{root, "example.com/app"},
		{filepath.Join(root, "routes"), "example.com/app/routes"},
		{filepath.Join(root, "routes", "api", "v1"), "example.com/app/routes/api/v1"},
	}

	for _, tt := range tests {
		got, err := r.ImportPath(tt.dir)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestModuleResolver_CustomModule(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"go.mod": "module example.com/app\n"})

	got, err := NewModuleResolver("github.com/acme/app").ImportPath(filepath.Join(root, "guards"))
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/app/guards", got)
}

func TestModuleResolver_OutsideModule(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"app/go.mod": "module example.com/app\n"})
	r := NewModuleResolver("")

	_, err := r.Module(filepath.Join(root, "app"))
	require.NoError(t, err)

	_, err = r.ImportPath(filepath.Join(root, "elsewhere"))
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.NotEmpty(t, errors.SuggestionsOf(err))
}

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{"empty", SourceLocation{}, "unknown location"},
		{"file only", SourceLocation{File: "routes/health.go"}, "routes/health.go"},
		{"file and line", SourceLocation{File: "routes/health.go", Line: 7}, "routes/health.go:7"},
		{"full", SourceLocation{File: "routes/health.go", Line: 7, Column: 3}, "routes/health.go:7:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestBaseError_ErrorFormatting(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := New(GenerationErrorCode, "render failed")
		assert.Equal(t, "render failed", err.Error())
	})

	t.Run("location and cause", func(t *testing.T) {
		err := Wrap(StructuralErrorCode, "failed to parse Go source", fmt.Errorf("expected 'package'")).
			WithLocation(SourceLocation{File: "routes/bad.go", Line: 1})
		assert.Equal(t, "routes/bad.go:1: failed to parse Go source: expected 'package'", err.Error())
	})
}

func TestBaseError_IsMatchesKind(t *testing.T) {
	err := NewContractError(ErrMissingGuardRole, SourceLocation{File: "guards/auth.go", Line: 3}, "guard 'Auth' has no role")
	wrapped := fmt.Errorf("building registry: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrMissingGuardRole))
	assert.False(t, stderrors.Is(wrapped, ErrDuplicateGuard))
	assert.Equal(t, ContractErrorCode, CodeOf(wrapped))
}

func TestBaseError_UnwrapCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapFileSystemError("read", "routes/health.go", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
}

func TestMissingDirectoryError(t *testing.T) {
	err := NewMissingDirectoryError("guards", "/tmp/nowhere")

	assert.ErrorIs(t, err, ErrMissingDirectory)
	assert.Contains(t, err.Error(), "/tmp/nowhere")
}

func TestResolutionError_Suggestions(t *testing.T) {
	err := NewResolutionError(SourceLocation{File: "routes/users.go", Line: 4}, "Missing", "ListUsers", []string{"Auth"})

	assert.ErrorIs(t, err, ErrUnresolvedGuard)
	assert.False(t, err.ErrorCode().Fatal())
	require.Len(t, err.Suggestions(), 1)
	assert.Contains(t, err.Suggestions()[0], "Auth")
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.NoError(t, multi.ErrorOrNil())

	first := NewContractError(ErrInvalidHandler, SourceLocation{File: "a.go", Line: 1}, "first", "hint one")
	multi.Add(first)
	assert.Same(t, first, multi.ErrorOrNil())

	multi.Add(NewContractError(ErrDuplicateVerb, SourceLocation{File: "b.go", Line: 2}, "second", "hint two"))
	err := multi.ErrorOrNil()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "multiple errors (2 total)")
	assert.ErrorIs(t, err, ErrInvalidHandler)
	assert.ErrorIs(t, err, ErrDuplicateVerb)
	assert.Equal(t, []string{"hint one", "hint two"}, SuggestionsOf(err))
}

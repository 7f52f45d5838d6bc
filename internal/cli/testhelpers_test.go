package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/switchyard/internal/utils"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func captureDiagnostics(level utils.DiagnosticLevel) (*utils.DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := utils.NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

const healthRoute = `package routes

import "github.com/toyz/switchyard/pkg/switchyard"

//switchyard::get "/"
func GetHealth(c switchyard.RequestContext) error {
	return c.String(200, "ok")
}
`

const usersRoute = `package users

import "github.com/toyz/switchyard/pkg/switchyard"

//switchyard::get "/users/{id}"
//switchyard::guards(Tracing, Auth, Missing)
func GetUser(c switchyard.RequestContext) error {
	return c.JSON(200, map[string]string{"id": c.Param("id")})
}
`

const tracingGuard = `package guards

import "github.com/toyz/switchyard/pkg/switchyard"

//switchyard::register_guard(guard_type = "fn")
func Tracing(c switchyard.RequestContext, next switchyard.HandlerFunc) error {
	return next(c)
}
`

const authGuard = `package guards

import "github.com/toyz/switchyard/pkg/switchyard"

//switchyard::register_guard(guard_type = "fn_with_state")
func Auth(state any, c switchyard.RequestContext, next switchyard.HandlerFunc) error {
	return next(c)
}
`

// newProject lays out a module with routes and guards and returns its root
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"go.mod":              "module example.com/app\n\ngo 1.25\n",
		"routes/health.go":    healthRoute,
		"routes/users/get.go": usersRoute,
		"guards/tracing.go":   tracingGuard,
		"guards/auth.go":      authGuard,
	})
	return root
}

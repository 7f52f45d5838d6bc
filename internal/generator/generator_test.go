package generator

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
	"github.com/toyz/switchyard/internal/modpath"
)

func guard(name string, role models.GuardRole, segments ...string) models.Guard {
	return models.Guard{Name: name, Role: role, ModulePath: modpath.FromSegments(segments...)}
}

func fixtureRoutes() []models.DiscoveredRoute {
	tracing := guard("Tracing", models.PlainGuard, "guards", "tracing", "Tracing")
	auth := guard("Auth", models.StatefulGuard, "guards", "auth", "Auth")
	limit := guard("RateLimit", models.PlainGuard, "guards", "limit", "RateLimit")
	cors := guard("Cors", models.Layer, "guards", "layers", "cors", "Cors")
	gzip := guard("Gzip", models.Layer, "guards", "layers", "gzip", "Gzip")

	return []models.DiscoveredRoute{
		{
			Method:     models.MethodGet,
			Path:       "/",
			Handler:    "GetHealth",
			ModulePath: modpath.FromSegments("routes", "health", "GetHealth"),
		},
		{
			Method:     models.MethodGet,
			Path:       "/users/:id",
			Handler:    "GetUser",
			ModulePath: modpath.FromSegments("routes", "users", "get", "GetUser"),
			Guards: []models.GuardRef{
				{Guard: tracing},
				{Guard: auth},
				{Guard: limit, Args: []string{"10", "60"}},
			},
		},
		{
			Method:     models.MethodPost,
			Path:       "/admin",
			Handler:    "Panel",
			ModulePath: modpath.FromSegments("routes", "admin", "Panel"),
			Guards: []models.GuardRef{
				{Guard: cors},
				{Guard: auth},
				{Guard: gzip},
			},
		},
	}
}

func fixtureOptions() Options {
	return Options{
		StateType:    "*app.State",
		StateImport:  "example.com/app/internal/app",
		RoutesImport: "example.com/app/routes",
		GuardsImport: "example.com/app/guards",
	}
}

func TestRender_Empty(t *testing.T) {
	out, err := New(Options{}).Render(nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "// Code generated by switchyard. DO NOT EDIT.\n\npackage main\n"))
	assert.Contains(t, out, `import switchyard "github.com/toyz/switchyard/pkg/switchyard"`)
	assert.NotContains(t, out, "net/http")
	assert.Contains(t, out, "func RegisterRoutes(state any) *switchyard.Router {")
	assert.Contains(t, out, "return router")
	assertParses(t, out)
}

func TestRender_Routes(t *testing.T) {
	out, err := New(fixtureOptions()).Render(fixtureRoutes())
	require.NoError(t, err)
	assertParses(t, out)

	expected := []string{
		"\t\"net/http\"\n\n",
		"\tapp \"example.com/app/internal/app\"\n",
		"\tguards \"example.com/app/guards\"\n",
		"\tguards_layers \"example.com/app/guards/layers\"\n",
		"\troutes \"example.com/app/routes\"\n",
		"\troutes_users \"example.com/app/routes/users\"\n",
		"\tswitchyard \"github.com/toyz/switchyard/pkg/switchyard\"\n",
		"func RegisterRoutes(state *app.State) *switchyard.Router {",
		"Method:  http.MethodGet,\n\t\tPath:    \"/\",\n\t\tName:    \"routes.health.GetHealth\",\n\t\tHandler: routes.GetHealth,\n",
		"Name:    \"routes.users.get.GetUser\",\n\t\tGuards:  []string{\"Tracing\", \"Auth\", \"RateLimit\"},\n",
		"Handler: switchyard.Wrap(routes_users.GetUser, switchyard.FromFn(guards.Tracing), switchyard.FromFnWithState(state, guards.Auth), switchyard.FromFn(guards.RateLimit(10, 60))),",
		"router.Mount(switchyard.NewRouter().Add(switchyard.Route{\n\t\tMethod:  http.MethodPost,",
		"Handler: switchyard.Wrap(routes.Panel, switchyard.FromFnWithState(state, guards.Auth)),\n\t}).Layer(guards_layers.Cors).Layer(guards_layers.Gzip))",
	}
	for _, want := range expected {
		assert.Contains(t, out, want)
	}

	// declaration order is preserved
	assert.Less(t, strings.Index(out, "GetHealth"), strings.Index(out, "GetUser"))
	assert.Less(t, strings.Index(out, "GetUser"), strings.Index(out, "Panel"))
}

func TestRender_Deterministic(t *testing.T) {
	first, err := New(fixtureOptions()).Render(fixtureRoutes())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := New(fixtureOptions()).Render(fixtureRoutes())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRender_SelfImport(t *testing.T) {
	opts := Options{
		Package:      "routes",
		RoutesImport: "example.com/app/routes",
		SelfImport:   "example.com/app/routes",
	}
	routes := []models.DiscoveredRoute{{
		Method:     models.MethodDelete,
		Path:       "/users/:id",
		Handler:    "DeleteUser",
		ModulePath: modpath.FromSegments("routes", "users", "DeleteUser"),
	}}

	out, err := New(opts).Render(routes)
	require.NoError(t, err)

	assert.Contains(t, out, "package routes\n")
	assert.Contains(t, out, "Handler: DeleteUser,")
	assert.NotContains(t, out, `"example.com/app/routes"`)
}

func TestRender_AliasCollision(t *testing.T) {
	opts := Options{RoutesImport: "example.com/app/routes"}
	routes := []models.DiscoveredRoute{
		{Method: models.MethodGet, Path: "/a", Handler: "A", ModulePath: modpath.FromSegments("routes", "my-api", "a", "A")},
		{Method: models.MethodGet, Path: "/b", Handler: "B", ModulePath: modpath.FromSegments("routes", "my_api", "b", "B")},
	}

	out, err := New(opts).Render(routes)
	require.NoError(t, err)
	assertParses(t, out)

	assert.Contains(t, out, `routes_my_api "example.com/app/routes/my-api"`)
	assert.Contains(t, out, `routes_my_api2 "example.com/app/routes/my_api"`)
	assert.Contains(t, out, "Handler: routes_my_api2.B,")
}

func TestRender_Options(t *testing.T) {
	opts := Options{
		Package:      "server",
		FuncName:     "Routes",
		RoutesImport: "example.com/app/routes",
	}

	out, err := New(opts).Render(fixtureRoutes()[:1])
	require.NoError(t, err)

	assert.Contains(t, out, "package server\n")
	assert.Contains(t, out, "func Routes(state any) *switchyard.Router {")
}

func TestRender_Errors(t *testing.T) {
	t.Run("qualified state without import", func(t *testing.T) {
		_, err := New(Options{StateType: "*app.State"}).Render(nil)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("state import without qualified type", func(t *testing.T) {
		_, err := New(Options{StateImport: "example.com/app"}).Render(nil)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("missing routes import", func(t *testing.T) {
		_, err := New(Options{}).Render(fixtureRoutes()[:1])
		require.Error(t, err)
		assert.Equal(t, errors.GenerationErrorCode, errors.CodeOf(err))
	})

	t.Run("missing guards import", func(t *testing.T) {
		_, err := New(Options{RoutesImport: "example.com/app/routes"}).Render(fixtureRoutes()[1:2])
		require.Error(t, err)
		assert.Equal(t, errors.GenerationErrorCode, errors.CodeOf(err))
	})

	t.Run("unsupported method", func(t *testing.T) {
		routes := fixtureRoutes()[:1]
		routes[0].Method = "TRACE"
		_, err := New(Options{RoutesImport: "example.com/app/routes"}).Render(routes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRACE")
	})
}

func assertParses(t *testing.T, src string) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "routes_gen.go", src, parser.ParseComments)
	assert.NoError(t, err, src)
}

package switchyard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContext struct {
	values map[string]any
	trace  []string
}

func newFakeContext() *fakeContext {
	return &fakeContext{values: make(map[string]any)}
}

func (f *fakeContext) Context() context.Context { return context.Background() }
func (f *fakeContext) Method() string { return http.MethodGet }
func (f *fakeContext) Path() string { return "/" }
func (f *fakeContext) RealIP() string { return "127.0.0.1" }
func (f *fakeContext) Param(string) string { return "" }
func (f *fakeContext) QueryParam(string) string { return "" }
func (f *fakeContext) Header(string) string { return "" }
func (f *fakeContext) Bind(any) error { return nil }
func (f *fakeContext) Get(key string) any { return f.values[key] }
func (f *fakeContext) Set(key string, val any) { f.values[key] = val }
func (f *fakeContext) SetHeader(string, string) {}
func (f *fakeContext) JSON(int, any) error { return nil }
func (f *fakeContext) String(int, string) error { return nil }
func (f *fakeContext) NoContent(int) error { return nil }
func (f *fakeContext) record(step string) { f.trace = append(f.trace, step) }

func tracing(name string) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			c.(*fakeContext).record(name + ":before")
			err := next(c)
			c.(*fakeContext).record(name + ":after")
			return err
		}
	}
}

func handler(c RequestContext) error {
	c.(*fakeContext).record("handler")
	return nil
}

func TestWrap_FirstGuardIsInnermost(t *testing.T) {
	ctx := newFakeContext()

	h := Wrap(handler, tracing("a"), tracing("b"))
	require.NoError(t, h(ctx))

	assert.Equal(t, []string{"b:before", "a:before", "handler", "a:after", "b:after"}, ctx.trace)
}

func TestWrap_NoMiddlewares(t *testing.T) {
	ctx := newFakeContext()

	require.NoError(t, Wrap(handler)(ctx))
	assert.Equal(t, []string{"handler"}, ctx.trace)
}

func TestFromFn_ShortCircuits(t *testing.T) {
	deny := func(c RequestContext, next HandlerFunc) error {
		return ErrUnauthorized("no token")
	}
	ctx := newFakeContext()

	err := Wrap(handler, FromFn(deny))(ctx)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Empty(t, ctx.trace)
}

type appState struct{ token string }

func TestFromFnWithState_ReceivesState(t *testing.T) {
	state := &appState{token: "secret"}
	guard := func(s *appState, c RequestContext, next HandlerFunc) error {
		c.Set("token", s.token)
		return next(c)
	}
	ctx := newFakeContext()

	require.NoError(t, Wrap(handler, FromFnWithState(state, guard))(ctx))

	assert.Equal(t, "secret", ctx.Get("token"))
	assert.Equal(t, []string{"handler"}, ctx.trace)
}

func TestRouter_AddAndRoutes(t *testing.T) {
	r := NewRouter().
		Add(Route{Method: http.MethodGet, Path: "/", Name: "routes.health.GetHealth", Handler: handler}).
		Handle(http.MethodPost, "/users", handler)

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "GET /", routes[0].String())
	assert.Equal(t, "POST /users", routes[1].String())

	routes[0].Path = "/mutated"
	got, ok := r.Lookup(http.MethodGet, "/")
	require.True(t, ok)
	assert.Equal(t, "routes.health.GetHealth", got.Name)

	_, ok = r.Lookup(http.MethodDelete, "/")
	assert.False(t, ok)
}

func TestRouter_LayerOrderAndScope(t *testing.T) {
	sub := NewRouter().
		Add(Route{Method: http.MethodGet, Path: "/admin", Handler: handler}).
		Layer(tracing("first")).
		Layer(tracing("second"))

	root := NewRouter().
		Handle(http.MethodGet, "/open", handler).
		Mount(sub)
	require.Equal(t, 2, root.Len())

	admin, ok := root.Lookup(http.MethodGet, "/admin")
	require.True(t, ok)
	ctx := newFakeContext()
	require.NoError(t, admin.Handler(ctx))
	assert.Equal(t, []string{"second:before", "first:before", "handler", "first:after", "second:after"}, ctx.trace)

	open, ok := root.Lookup(http.MethodGet, "/open")
	require.True(t, ok)
	ctx = newFakeContext()
	require.NoError(t, open.Handler(ctx))
	assert.Equal(t, []string{"handler"}, ctx.trace)
}

func TestRouter_LayerSkipsLaterRoutes(t *testing.T) {
	r := NewRouter().
		Handle(http.MethodGet, "/a", handler).
		Layer(tracing("layer")).
		Handle(http.MethodGet, "/b", handler)

	b, _ := r.Lookup(http.MethodGet, "/b")
	ctx := newFakeContext()
	require.NoError(t, b.Handler(ctx))
	assert.Equal(t, []string{"handler"}, ctx.trace)
}

func TestErrorResponse(t *testing.T) {
	code, body := ErrorResponse(ErrForbidden("admins only"))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, map[string]string{"error": "admins only"}, body)

	code, body = ErrorResponse(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", body["error"])
}

func TestHTTPError(t *testing.T) {
	cause := errors.New("db down")
	err := NewHTTPError(http.StatusServiceUnavailable).WithInternal(cause)

	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "internal=db down")
}

package adapters

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/toyz/switchyard/pkg/switchyard"
)

// EchoAdapter mounts switchyard routes on an echo instance
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	return &EchoAdapter{engine: e}
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// Engine returns the underlying echo instance
func (ea *EchoAdapter) Engine() *echo.Echo {
	return ea.engine
}

// Mount registers every route of r
func (ea *EchoAdapter) Mount(r *switchyard.Router) {
	for _, route := range r.Routes() {
		path, wildcard := colonPath(route.Path, false)
		ea.engine.Add(route.Method, path, ea.convertHandler(route.Handler, wildcard))
	}
}

// Start runs the HTTP server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop gracefully shuts the server down
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

func (ea *EchoAdapter) convertHandler(handler switchyard.HandlerFunc, wildcard string) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := handler(&EchoRequestContext{ctx: c, wildcard: wildcard})
		if err == nil || c.Response().Committed {
			return err
		}
		code, body := switchyard.ErrorResponse(err)
		return c.JSON(code, body)
	}
}

// EchoRequestContext implements switchyard.RequestContext for Echo
type EchoRequestContext struct {
	ctx      echo.Context
	wildcard string
}

// Context returns the request context
func (erc *EchoRequestContext) Context() context.Context {
	return erc.ctx.Request().Context()
}

// Method returns the HTTP method
func (erc *EchoRequestContext) Method() string {
	return erc.ctx.Request().Method
}

// Path returns the request path
func (erc *EchoRequestContext) Path() string {
	return erc.ctx.Request().URL.Path
}

// RealIP returns the client IP
func (erc *EchoRequestContext) RealIP() string {
	return erc.ctx.RealIP()
}

// Param returns a path parameter
func (erc *EchoRequestContext) Param(name string) string {
	if erc.wildcard != "" && name == erc.wildcard {
		return erc.ctx.Param("*")
	}
	return erc.ctx.Param(name)
}

// QueryParam returns a query parameter
func (erc *EchoRequestContext) QueryParam(name string) string {
	return erc.ctx.QueryParam(name)
}

// Header returns a request header
func (erc *EchoRequestContext) Header(name string) string {
	return erc.ctx.Request().Header.Get(name)
}

// Bind binds the request body
func (erc *EchoRequestContext) Bind(i any) error {
	return erc.ctx.Bind(i)
}

// Get returns a value from context
func (erc *EchoRequestContext) Get(key string) any {
	return erc.ctx.Get(key)
}

// Set sets a value in context
func (erc *EchoRequestContext) Set(key string, val any) {
	erc.ctx.Set(key, val)
}

// SetHeader sets a response header
func (erc *EchoRequestContext) SetHeader(name, value string) {
	erc.ctx.Response().Header().Set(name, value)
}

// JSON writes a JSON response
func (erc *EchoRequestContext) JSON(code int, i any) error {
	return erc.ctx.JSON(code, i)
}

// String writes a plain text response
func (erc *EchoRequestContext) String(code int, s string) error {
	return erc.ctx.String(code, s)
}

// NoContent writes only the status code
func (erc *EchoRequestContext) NoContent(code int) error {
	return erc.ctx.NoContent(code)
}

// Echo returns the wrapped echo context
func (erc *EchoRequestContext) Echo() echo.Context {
	return erc.ctx
}

// Package switchyard is the runtime the generated routing table is built
// against. Handlers and guards are written once against RequestContext and
// mounted on gin, echo or fiber through the adapters package.
package switchyard

import "context"

// RequestContext is the framework-agnostic view of one request
type RequestContext interface {
	// Context returns the request's context.Context
	Context() context.Context

	// Request data
	Method() string
	Path() string
	RealIP() string
	Param(name string) string
	QueryParam(name string) string
	Header(name string) string
	Bind(i any) error

	// Per-request values shared between guards and handlers
	Get(key string) any
	Set(key string, val any)

	// Response
	SetHeader(name, value string)
	JSON(code int, i any) error
	String(code int, s string) error
	NoContent(code int) error
}

// HandlerFunc handles a request and reports completion through its error
type HandlerFunc func(c RequestContext) error

// MiddlewareFunc wraps a handler. Layer guards have this shape.
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// GuardFunc runs before next and decides whether to call it
type GuardFunc func(c RequestContext, next HandlerFunc) error

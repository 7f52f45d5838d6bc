package adapters

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/toyz/switchyard/pkg/switchyard"
)

// FiberAdapter mounts switchyard routes on a fiber app
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a Fiber adapter around app
func NewFiberAdapter(app *fiber.App) *FiberAdapter {
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a Fiber adapter whose error handler renders
// switchyard errors as JSON
func NewDefaultFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code, body := switchyard.ErrorResponse(err)
			if fe, ok := err.(*fiber.Error); ok {
				code, body = fe.Code, map[string]string{"error": fe.Message}
			}
			return c.Status(code).JSON(body)
		},
	})
	return &FiberAdapter{app: app}
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// App returns the underlying fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}

// Mount registers every route of r
func (fa *FiberAdapter) Mount(r *switchyard.Router) {
	for _, route := range r.Routes() {
		path, wildcard := colonPath(route.Path, false)
		fa.app.Add(route.Method, path, convertHandlerToFiber(route.Handler, wildcard))
	}
}

// Start runs the HTTP server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop gracefully shuts the server down
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

func convertHandlerToFiber(handler switchyard.HandlerFunc, wildcard string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := handler(&FiberRequestContext{ctx: c, wildcard: wildcard})
		if err == nil {
			return nil
		}
		code, body := switchyard.ErrorResponse(err)
		return c.Status(code).JSON(body)
	}
}

// FiberRequestContext wraps fiber.Ctx to implement switchyard.RequestContext
type FiberRequestContext struct {
	ctx      *fiber.Ctx
	wildcard string
}

// Context returns the user context attached to the request
func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

// Method returns the HTTP method
func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

// Path returns the request path
func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

// RealIP returns the client IP
func (frc *FiberRequestContext) RealIP() string {
	return frc.ctx.IP()
}

// Param returns a path parameter
func (frc *FiberRequestContext) Param(name string) string {
	if frc.wildcard != "" && name == frc.wildcard {
		return frc.ctx.Params("*")
	}
	return frc.ctx.Params(name)
}

// QueryParam returns a query parameter
func (frc *FiberRequestContext) QueryParam(name string) string {
	return frc.ctx.Query(name)
}

// Header returns a request header
func (frc *FiberRequestContext) Header(name string) string {
	return frc.ctx.Get(name)
}

// Bind parses the request body
func (frc *FiberRequestContext) Bind(i any) error {
	return frc.ctx.BodyParser(i)
}

// Get returns a value from the request locals
func (frc *FiberRequestContext) Get(key string) any {
	return frc.ctx.Locals(key)
}

// Set stores a value in the request locals
func (frc *FiberRequestContext) Set(key string, val any) {
	frc.ctx.Locals(key, val)
}

// SetHeader sets a response header
func (frc *FiberRequestContext) SetHeader(name, value string) {
	frc.ctx.Set(name, value)
}

// JSON writes a JSON response
func (frc *FiberRequestContext) JSON(code int, i any) error {
	return frc.ctx.Status(code).JSON(i)
}

// String writes a plain text response
func (frc *FiberRequestContext) String(code int, s string) error {
	return frc.ctx.Status(code).SendString(s)
}

// NoContent writes only the status code
func (frc *FiberRequestContext) NoContent(code int) error {
	return frc.ctx.SendStatus(code)
}

// Fiber returns the wrapped fiber context
func (frc *FiberRequestContext) Fiber() *fiber.Ctx {
	return frc.ctx
}

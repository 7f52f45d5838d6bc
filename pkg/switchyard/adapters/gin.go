package adapters

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/toyz/switchyard/pkg/switchyard"
)

// GinAdapter mounts switchyard routes on a gin engine
type GinAdapter struct {
	engine *gin.Engine
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(engine *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: engine}
}

// NewDefaultGinAdapter creates a Gin adapter with gin.New() and recovery
func NewDefaultGinAdapter() *GinAdapter {
	engine := gin.New()
	engine.Use(gin.Recovery())
	return &GinAdapter{engine: engine}
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// Engine returns the underlying gin engine
func (ga *GinAdapter) Engine() *gin.Engine {
	return ga.engine
}

// Mount registers every route of r
func (ga *GinAdapter) Mount(r *switchyard.Router) {
	for _, route := range r.Routes() {
		path, wildcard := colonPath(route.Path, true)
		ga.engine.Handle(route.Method, path, ga.convertHandler(route.Handler, wildcard))
	}
}

// Start runs the HTTP server
func (ga *GinAdapter) Start(addr string) error {
	return ga.engine.Run(addr)
}

func (ga *GinAdapter) convertHandler(handler switchyard.HandlerFunc, wildcard string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&GinRequestContext{ctx: c, wildcard: wildcard}); err != nil {
			if c.Writer.Written() {
				_ = c.Error(err)
				return
			}
			code, body := switchyard.ErrorResponse(err)
			c.AbortWithStatusJSON(code, body)
		}
	}
}

// GinRequestContext implements switchyard.RequestContext for Gin
type GinRequestContext struct {
	ctx      *gin.Context
	wildcard string
}

// Context returns the request context
func (grc *GinRequestContext) Context() context.Context {
	return grc.ctx.Request.Context()
}

// Method returns the HTTP method
func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

// Path returns the request path
func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

// RealIP returns the client IP
func (grc *GinRequestContext) RealIP() string {
	return grc.ctx.ClientIP()
}

// Param returns a path parameter
func (grc *GinRequestContext) Param(name string) string {
	if grc.wildcard != "" && (name == grc.wildcard || name == "*") {
		// gin keeps the leading slash on catch-all values
		return strings.TrimPrefix(grc.ctx.Param(grc.wildcard), "/")
	}
	return grc.ctx.Param(name)
}

// QueryParam returns a query parameter
func (grc *GinRequestContext) QueryParam(name string) string {
	return grc.ctx.Query(name)
}

// Header returns a request header
func (grc *GinRequestContext) Header(name string) string {
	return grc.ctx.GetHeader(name)
}

// Bind binds the JSON request body
func (grc *GinRequestContext) Bind(i any) error {
	return grc.ctx.ShouldBindJSON(i)
}

// Get returns a value from context
func (grc *GinRequestContext) Get(key string) any {
	value, _ := grc.ctx.Get(key)
	return value
}

// Set sets a value in context
func (grc *GinRequestContext) Set(key string, val any) {
	grc.ctx.Set(key, val)
}

// SetHeader sets a response header
func (grc *GinRequestContext) SetHeader(name, value string) {
	grc.ctx.Header(name, value)
}

// JSON writes a JSON response
func (grc *GinRequestContext) JSON(code int, i any) error {
	grc.ctx.JSON(code, i)
	return nil
}

// String writes a plain text response
func (grc *GinRequestContext) String(code int, s string) error {
	grc.ctx.String(code, "%s", s)
	return nil
}

// NoContent writes only the status code
func (grc *GinRequestContext) NoContent(code int) error {
	grc.ctx.Status(code)
	grc.ctx.Writer.WriteHeaderNow()
	return nil
}

// Gin returns the wrapped gin context
func (grc *GinRequestContext) Gin() *gin.Context {
	return grc.ctx
}

package switchyard

import "fmt"

// Route is one entry of the routing table
type Route struct {
	Method  string
	Path    string
	Name    string   // dotted module path of the handler
	Guards  []string // guard names in declared order, informational
	Handler HandlerFunc
}

// String renders the route as "METHOD path"
func (r Route) String() string {
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}

// Router collects routes. It is built once at startup and mounted through an
// adapter; it does not serve requests itself.
type Router struct {
	routes []Route
}

// NewRouter creates an empty Router
func NewRouter() *Router {
	return &Router{}
}

// Add appends a route and returns the router for chaining
func (r *Router) Add(route Route) *Router {
	r.routes = append(r.routes, route)
	return r
}

// Handle is shorthand for Add with only a method, path and handler
func (r *Router) Handle(method, path string, h HandlerFunc) *Router {
	return r.Add(Route{Method: method, Path: path, Handler: h})
}

// Layer wraps the handler of every route added so far. Each call wraps the
// previous ones, so the last Layer runs first. Routes added afterwards are
// not affected.
func (r *Router) Layer(mw MiddlewareFunc) *Router {
	if mw == nil {
		return r
	}
	for i := range r.routes {
		r.routes[i].Handler = mw(r.routes[i].Handler)
	}
	return r
}

// Mount appends every route of sub, keeping their already-layered handlers
func (r *Router) Mount(sub *Router) *Router {
	if sub == nil {
		return r
	}
	r.routes = append(r.routes, sub.routes...)
	return r
}

// Routes returns a copy of the routing table in registration order
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Len returns the number of routes
func (r *Router) Len() int {
	return len(r.routes)
}

// Lookup finds the first route registered for method and path exactly as
// written in the table
func (r *Router) Lookup(method, path string) (Route, bool) {
	for _, route := range r.routes {
		if route.Method == method && route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}

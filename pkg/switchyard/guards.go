package switchyard

// FromFn adapts a plain guard into a MiddlewareFunc
func FromFn(fn func(c RequestContext, next HandlerFunc) error) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			return fn(c, next)
		}
	}
}

// FromFnWithState adapts a guard that receives application state. The state
// value is captured once when the routing table is built.
func FromFnWithState[S any](state S, fn func(state S, c RequestContext, next HandlerFunc) error) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			return fn(state, c, next)
		}
	}
}

// Wrap applies middlewares to h in order: the first one wraps h most tightly
// and the last one runs first.
func Wrap(h HandlerFunc, middlewares ...MiddlewareFunc) HandlerFunc {
	for _, mw := range middlewares {
		if mw == nil {
			continue
		}
		h = mw(h)
	}
	return h
}

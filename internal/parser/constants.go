package parser

const (
	// RequestContextType is the parameter type every handler receives
	RequestContextType = "RequestContext"

	// HandlerSignature is the shape every route handler must have
	HandlerSignature = "func(c switchyard.RequestContext) error"

	// GuardSignature is the shape of a plain guard
	GuardSignature = "func(c switchyard.RequestContext, next switchyard.HandlerFunc) error"

	// StatefulGuardSignature is the shape of a guard receiving application state
	StatefulGuardSignature = "func(state S, c switchyard.RequestContext, next switchyard.HandlerFunc) error"

	// LayerSignature is the shape of a layer guard
	LayerSignature = "func(next switchyard.HandlerFunc) switchyard.HandlerFunc"
)

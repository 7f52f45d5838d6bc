package annotations

import (
	"strconv"
	"strings"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
)

// Prefix marks a doc-comment line as a switchyard annotation
const Prefix = "switchyard::"

// Name identifies an annotation
type Name string

const (
	Get           Name = "get"
	Post          Name = "post"
	Put           Name = "put"
	Patch         Name = "patch"
	Delete        Name = "delete"
	RegisterGuard Name = "register_guard"
	Guards        Name = "guards"
)

// GuardTypeKey is the only key register_guard accepts
const GuardTypeKey = "guard_type"

var verbs = map[Name]models.Method{
	Get:    models.MethodGet,
	Post:   models.MethodPost,
	Put:    models.MethodPut,
	Patch:  models.MethodPatch,
	Delete: models.MethodDelete,
}

// Verbs returns the verb annotation names in declaration order of models.Methods
func Verbs() []Name {
	return []Name{Get, Post, Put, Patch, Delete}
}

// Known reports whether n is a recognized annotation name
func (n Name) Known() bool {
	if _, ok := verbs[n]; ok {
		return true
	}
	return n == RegisterGuard || n == Guards
}

// IsVerb reports whether n declares an HTTP route
func (n Name) IsVerb() bool {
	_, ok := verbs[n]
	return ok
}

// Method returns the HTTP verb of a verb annotation
func (n Name) Method() models.Method {
	return verbs[n]
}

// Annotation is one parsed switchyard directive
type Annotation struct {
	Name     Name
	Args     []Arg
	Raw      string
	Location errors.SourceLocation
}

// Arg is one entry of an annotation argument list
type Arg struct {
	Key   string // empty for positional arguments
	Value Value
}

// Value is a string, number, or identifier/call argument
type Value struct {
	String *string // unquoted
	Number *string
	Call   *Call
	raw    string
}

// Raw returns the value as Go source text
func (v Value) Raw() string {
	return v.raw
}

// Call is an identifier, optionally dotted, optionally followed by parameters
type Call struct {
	Name   string
	Params []Value // nil when written without parentheses
}

// IsVerb reports whether the annotation declares an HTTP route
func (a *Annotation) IsVerb() bool {
	return a.Name.IsVerb()
}

// Method returns the HTTP verb of a verb annotation
func (a *Annotation) Method() models.Method {
	return a.Name.Method()
}

// String returns the directive as written
func (a *Annotation) String() string {
	return a.Raw
}

// Path returns the route path of a verb annotation
func (a *Annotation) Path() (string, error) {
	if len(a.Args) != 1 || a.Args[0].Key != "" || a.Args[0].Value.String == nil {
		return "", errors.NewContractError(errors.ErrInvalidAnnotation, a.Location,
			"'"+string(a.Name)+"' takes exactly one path string",
			"Write the path as a string literal: //"+Prefix+string(a.Name)+` "/users/:id"`)
	}
	return *a.Args[0].Value.String, nil
}

// GuardType returns the role declared by a register_guard annotation
func (a *Annotation) GuardType() (models.GuardRole, error) {
	usage := "Declare the role as //" + Prefix + string(RegisterGuard) + ` guard_type = "fn"`
	if len(a.Args) != 1 {
		return 0, errors.NewAnnotationError(a.Location, "register_guard takes exactly one guard_type argument", nil).
			WithSuggestion(usage)
	}

	arg := a.Args[0]
	if arg.Key != GuardTypeKey {
		return 0, errors.NewAnnotationError(a.Location, "unexpected argument '"+arg.Value.Raw()+"' in register_guard", nil).
			WithSuggestion(usage)
	}
	if arg.Value.String == nil {
		return 0, errors.NewAnnotationError(a.Location, "guard_type must be a string literal", nil).
			WithSuggestion(usage)
	}

	role, err := models.ParseGuardRole(*arg.Value.String)
	if err != nil {
		return 0, errors.NewContractError(errors.ErrUnknownGuardRole, a.Location, err.Error(),
			"Supported guard types: "+strings.Join(models.GuardTypes(), ", "))
	}
	return role, nil
}

// GuardRefs returns the guard references of a guards annotation in order
func (a *Annotation) GuardRefs() ([]models.GuardReference, error) {
	refs := make([]models.GuardReference, 0, len(a.Args))
	for _, arg := range a.Args {
		call := arg.Value.Call
		if arg.Key != "" || call == nil || strings.Contains(call.Name, ".") {
			return nil, errors.NewAnnotationError(a.Location,
				"guard reference '"+arg.Value.Raw()+"' must be a guard name or a call such as RateLimit(10, 60)", nil)
		}

		ref := models.GuardReference{Name: call.Name}
		if call.Params != nil {
			ref.Args = make([]string, len(call.Params))
			for i, p := range call.Params {
				// generated code has no import or package context for identifiers
				if p.String == nil && p.Number == nil {
					return nil, errors.NewAnnotationError(a.Location,
						"parameter '"+p.Raw()+"' of guard '"+call.Name+"' must be a string or number literal", nil).
						WithSuggestion("Wrap the value in a guard constructor that takes literals, e.g. " + call.Name + "(10, \"1s\")")
				}
				ref.Args[i] = p.Raw()
			}
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func unquote(lit string) (string, error) {
	return strconv.Unquote(lit)
}

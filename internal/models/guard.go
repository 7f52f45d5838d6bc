package models

import (
	"fmt"
	"strings"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/modpath"
)

// GuardRole selects how a guard composes around a handler
type GuardRole int

const (
	// PlainGuard is a function guard taking the request and the next handler
	PlainGuard GuardRole = iota

	// StatefulGuard is a function guard that also receives the application state
	StatefulGuard

	// Layer wraps the sub-router the route is registered on
	Layer
)

// guard_type values accepted by register_guard
const (
	GuardTypeFn          = "fn"
	GuardTypeFnWithState = "fn_with_state"
	GuardTypeLayer       = "layer"
)

// String returns the annotation value of the role
func (r GuardRole) String() string {
	switch r {
	case PlainGuard:
		return GuardTypeFn
	case StatefulGuard:
		return GuardTypeFnWithState
	case Layer:
		return GuardTypeLayer
	default:
		return fmt.Sprintf("GuardRole(%d)", int(r))
	}
}

// ParseGuardRole maps a guard_type value to its role
func ParseGuardRole(value string) (GuardRole, error) {
	switch value {
	case GuardTypeFn:
		return PlainGuard, nil
	case GuardTypeFnWithState:
		return StatefulGuard, nil
	case GuardTypeLayer:
		return Layer, nil
	default:
		return 0, fmt.Errorf("%w '%s', expected one of %s", errors.ErrUnknownGuardRole, value, strings.Join(GuardTypes(), ", "))
	}
}

// GuardTypes lists every accepted guard_type value
func GuardTypes() []string {
	return []string{GuardTypeFn, GuardTypeFnWithState, GuardTypeLayer}
}

// Guard is a named guard registered from the guards directory
type Guard struct {
	Name       string
	ModulePath modpath.ModulePath
	Role       GuardRole
	Location   errors.SourceLocation
}

// GuardReference is a guard named by a route before resolution
type GuardReference struct {
	Name string   // identifier as written
	Args []string // raw Go literals of a call-form reference
}

// IsCall reports whether the reference was written in call form
func (r GuardReference) IsCall() bool {
	return r.Args != nil
}

// String renders the reference as written
func (r GuardReference) String() string {
	if !r.IsCall() {
		return r.Name
	}
	return r.Name + "(" + strings.Join(r.Args, ", ") + ")"
}

// GuardRef is one resolved entry of a route's guard chain
type GuardRef struct {
	Guard Guard
	Args  []string
}

// IsCall reports whether the guard is invoked with arguments
func (r GuardRef) IsCall() bool {
	return r.Args != nil
}

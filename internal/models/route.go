package models

import (
	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/modpath"
)

// Method is an HTTP verb a route can be annotated with
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists every supported verb in annotation order
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}
}

// Constant returns the net/http constant name of the verb, e.g. MethodGet
func (m Method) Constant() string {
	switch m {
	case MethodGet:
		return "MethodGet"
	case MethodPost:
		return "MethodPost"
	case MethodPut:
		return "MethodPut"
	case MethodPatch:
		return "MethodPatch"
	case MethodDelete:
		return "MethodDelete"
	default:
		return ""
	}
}

// DiscoveredRoute is one annotated handler found under the routes directory
type DiscoveredRoute struct {
	Method     Method
	Path       string
	Handler    string
	ModulePath modpath.ModulePath
	Guards     []GuardRef
	Location   errors.SourceLocation
}

// GuardNames returns the names of the resolved guards in chain order
func (r DiscoveredRoute) GuardNames() []string {
	names := make([]string, len(r.Guards))
	for i, g := range r.Guards {
		names[i] = g.Guard.Name
	}
	return names
}

// InlineGuards returns the function guards of the chain, in order
func (r DiscoveredRoute) InlineGuards() []GuardRef {
	var out []GuardRef
	for _, g := range r.Guards {
		if g.Guard.Role != Layer {
			out = append(out, g)
		}
	}
	return out
}

// Layers returns the layer guards of the chain, in order
func (r DiscoveredRoute) Layers() []GuardRef {
	var out []GuardRef
	for _, g := range r.Guards {
		if g.Guard.Role == Layer {
			out = append(out, g)
		}
	}
	return out
}

// UnresolvedGuard is a guard reference with no registered guard of that name
type UnresolvedGuard struct {
	Route    string // module path of the referencing handler
	Name     string
	Location errors.SourceLocation
}

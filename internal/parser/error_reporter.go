package parser

import (
	"fmt"

	"github.com/toyz/switchyard/internal/annotations"
	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
)

// ErrorReporter builds contract errors carrying remediation hints
type ErrorReporter struct{}

// NewErrorReporter creates a new error reporter
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// HandlerError reports a verb-annotated declaration that cannot serve as a handler
func (r *ErrorReporter) HandlerError(name string, ann *annotations.Annotation, loc errors.SourceLocation, issue, actual string) *errors.BaseError {
	hints := []string{
		"Expected signature: " + HandlerSignature,
		"Found: " + actual,
	}
	if ann != nil {
		hints = append(hints, "Example implementation:", handlerExample(ann, name))
	}

	return errors.NewContractError(errors.ErrInvalidHandler, loc,
		fmt.Sprintf("route handler '%s': %s", name, issue), hints...)
}

// GuardError reports a registered guard that generated code cannot reference
func (r *ErrorReporter) GuardError(name string, role models.GuardRole, loc errors.SourceLocation, issue string) *errors.BaseError {
	return errors.NewContractError(errors.ErrInvalidGuard, loc,
		fmt.Sprintf("guard '%s': %s", name, issue),
		fmt.Sprintf("Expected a %s guard of the form %s", role, guardSignature(role)),
	)
}

// MissingRoleError reports a guards-directory function without register_guard
func (r *ErrorReporter) MissingRoleError(name string, loc errors.SourceLocation) *errors.BaseError {
	return errors.NewContractError(errors.ErrMissingGuardRole, loc,
		fmt.Sprintf("function '%s' in the guards directory is missing a register_guard annotation", name),
		fmt.Sprintf(`Annotate it: //%s%s guard_type = "fn"`, annotations.Prefix, annotations.RegisterGuard),
		"Move helpers that are not guards out of the guards directory",
	)
}

// DuplicateVerbError reports a declaration carrying more than one verb annotation
func (r *ErrorReporter) DuplicateVerbError(name string, first, second *annotations.Annotation) *errors.BaseError {
	return errors.NewContractError(errors.ErrDuplicateVerb, second.Location,
		fmt.Sprintf("route handler '%s' has more than one verb annotation", name),
		fmt.Sprintf("First verb annotation at %s: %s", first.Location, first.Raw),
		"Declare one handler function per route",
	)
}

// DuplicateGuardError reports two guards registered under the same name
func (r *ErrorReporter) DuplicateGuardError(name string, first, second errors.SourceLocation) *errors.BaseError {
	return errors.NewContractError(errors.ErrDuplicateGuard, second,
		fmt.Sprintf("guard '%s' is registered more than once", name),
		fmt.Sprintf("Previously registered at %s", first),
		"Rename one of the guards, or enable allow_guard_shadowing to keep the last one",
	)
}

// AnnotatedMethodError reports a switchyard annotation placed on a method
func (r *ErrorReporter) AnnotatedMethodError(kind error, name string, ann *annotations.Annotation) *errors.BaseError {
	return errors.NewContractError(kind, ann.Location,
		fmt.Sprintf("method '%s' carries '%s'; only package-level functions can be annotated", name, ann.Raw),
		"Move the annotation to a package-level function",
	)
}

func guardSignature(role models.GuardRole) string {
	switch role {
	case models.StatefulGuard:
		return StatefulGuardSignature
	case models.Layer:
		return LayerSignature
	default:
		return GuardSignature
	}
}

func handlerExample(ann *annotations.Annotation, name string) string {
	path, err := ann.Path()
	if err != nil {
		path = "/"
	}
	return fmt.Sprintf(`
//%s%s %q
func %s(c switchyard.RequestContext) error {
	return c.JSON(http.StatusOK, nil)
}`, annotations.Prefix, ann.Name, path, exportedName(name))
}

func exportedName(name string) string {
	if name == "" {
		return name
	}
	if c := name[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + name[1:]
	}
	return name
}

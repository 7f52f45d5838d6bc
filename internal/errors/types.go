package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// SwitchyardError defines the base interface for all generator errors
type SwitchyardError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the class of failure that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// StructuralErrorCode covers unparsable Go files and malformed annotations
	StructuralErrorCode

	// ContractErrorCode covers declarations that break the annotation contract
	ContractErrorCode

	// ResolutionErrorCode covers guard references that do not resolve
	ResolutionErrorCode

	FileSystemErrorCode
	ConfigurationErrorCode
	GenerationErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case StructuralErrorCode:
		return "StructuralError"
	case ContractErrorCode:
		return "ContractError"
	case ResolutionErrorCode:
		return "ResolutionError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case GenerationErrorCode:
		return "GenerationError"
	default:
		return "UnknownError"
	}
}

// Fatal reports whether errors of this code abort a generation run
func (e ErrorCode) Fatal() bool {
	return e != ResolutionErrorCode
}

// Sentinel errors, matched with errors.Is against any BaseError carrying them.
var (
	ErrMissingDirectory  = stderrors.New("directory does not exist")
	ErrPathOutsideRoot   = stderrors.New("path is outside of the root directory")
	ErrMissingGuardRole  = stderrors.New("missing guard role")
	ErrUnknownGuardRole  = stderrors.New("unknown guard role")
	ErrDuplicateGuard    = stderrors.New("duplicate guard name")
	ErrUnresolvedGuard   = stderrors.New("unresolved guard reference")
	ErrInvalidHandler    = stderrors.New("invalid route handler")
	ErrInvalidGuard      = stderrors.New("invalid guard declaration")
	ErrInvalidAnnotation = stderrors.New("invalid annotation")
	ErrDuplicateVerb     = stderrors.New("multiple verb annotations")
	ErrStaleOutput       = stderrors.New("generated output is out of date")
	ErrNotGenerated      = stderrors.New("file was not generated by switchyard")
)

// SourceLocation represents where an error occurred in source code
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the SwitchyardError interface
type BaseError struct {
	Code    ErrorCode      // class of error
	Kind    error          // sentinel matched by errors.Is
	Message string         // error message
	Loc     SourceLocation // where the error occurred
	Cause   error          // underlying error cause
	Hints   []string       // remediation hints
}

// Error implements the error interface
func (e *BaseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Loc.IsEmpty() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), msg)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Suggestions returns the remediation hints
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel kind carried by the error
func (e *BaseError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithKind attaches a sentinel error
func (e *BaseError) WithKind(kind error) *BaseError {
	e.Kind = kind
	return e
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a remediation hint
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple remediation hints
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// CodeOf returns the code of the first SwitchyardError in err's chain
func CodeOf(err error) ErrorCode {
	var se SwitchyardError
	if stderrors.As(err, &se) {
		return se.ErrorCode()
	}
	return UnknownErrorCode
}

// SuggestionsOf returns the hints of the first SwitchyardError in err's chain
func SuggestionsOf(err error) []string {
	var multi *MultipleErrors
	if stderrors.As(err, &multi) {
		return multi.Suggestions()
	}
	var se SwitchyardError
	if stderrors.As(err, &se) {
		return se.Suggestions()
	}
	return nil
}

// MultipleErrors represents multiple errors collected together
type MultipleErrors struct {
	Errors []SwitchyardError
}

// Error implements the error interface
func (e *MultipleErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Suggestions returns combined suggestions from all errors
func (e *MultipleErrors) Suggestions() []string {
	var suggestions []string
	for _, err := range e.Errors {
		suggestions = append(suggestions, err.Suggestions()...)
	}
	return suggestions
}

// Unwrap returns every collected error for errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add adds an error to the collection
func (e *MultipleErrors) Add(err SwitchyardError) {
	e.Errors = append(e.Errors, err)
}

// IsEmpty returns true if there are no errors
func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

// ErrorOrNil returns nil for an empty collection, the single error for one,
// and the collection otherwise
func (e *MultipleErrors) ErrorOrNil() error {
	switch len(e.Errors) {
	case 0:
		return nil
	case 1:
		return e.Errors[0]
	default:
		return e
	}
}

// NewMultipleErrors creates a new MultipleErrors collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{
		Errors: make([]SwitchyardError, 0),
	}
}

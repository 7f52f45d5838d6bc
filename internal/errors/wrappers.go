package errors

import "fmt"

// Common error constructors used throughout the generator

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause)
}

// NewMissingDirectoryError reports a root directory that does not exist
func NewMissingDirectoryError(role, path string) *BaseError {
	return Newf(FileSystemErrorCode, "%s directory '%s' does not exist", role, path).
		WithKind(ErrMissingDirectory)
}

// WrapParseError reports a Go file that could not be parsed
func WrapParseError(file string, cause error) *BaseError {
	return Wrap(StructuralErrorCode, "failed to parse Go source", cause).
		WithLocation(SourceLocation{File: file})
}

// NewAnnotationError reports a malformed switchyard annotation
func NewAnnotationError(loc SourceLocation, message string, cause error) *BaseError {
	return New(StructuralErrorCode, message).
		WithKind(ErrInvalidAnnotation).
		WithCause(cause).
		WithLocation(loc)
}

// NewContractError reports a declaration that violates the annotation contract
func NewContractError(kind error, loc SourceLocation, message string, hints ...string) *BaseError {
	return New(ContractErrorCode, message).
		WithKind(kind).
		WithLocation(loc).
		WithSuggestions(hints...)
}

// NewResolutionError reports a guard reference with no matching declaration
func NewResolutionError(loc SourceLocation, guard, handler string, available []string) *BaseError {
	err := Newf(ResolutionErrorCode, "guard '%s' referenced by '%s' is not registered", guard, handler).
		WithKind(ErrUnresolvedGuard).
		WithLocation(loc)
	if len(available) > 0 {
		err.WithSuggestion(fmt.Sprintf("Registered guards: %v", available))
	} else {
		err.WithSuggestion("No guards are registered; check the guards directory")
	}
	return err
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", item), cause)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(operation string, cause error) *BaseError {
	return Wrap(ConfigurationErrorCode, fmt.Sprintf("failed to %s configuration", operation), cause)
}

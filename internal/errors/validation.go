package errors

import "fmt"

// ValidationError reports source that cannot produce a publisher.
type ValidationError struct {
	*BaseError
	Interface string
	Method    string
}

// WithLocation sets where the error occurred.
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion appends a hint for fixing the error.
func (e *ValidationError) WithSuggestion(s string) *ValidationError {
	e.BaseError.WithSuggestion(s)
	return e
}

func newValidation(code ErrorCode, iface, method, message string) *ValidationError {
	err := &ValidationError{BaseError: New(code, message), Interface: iface, Method: method}
	err.WithContext("interface", iface)
	if method != "" {
		err.WithContext("method", method)
	}
	return err
}

// NewDuplicateMethodError reports two methods that map to the same name or
// channel field.
func NewDuplicateMethodError(iface, method, other string) *ValidationError {
	msg := fmt.Sprintf("interface %s: method %s collides with %s", iface, method, other)
	return newValidation(DuplicateMethodErrorCode, iface, method, msg).
		WithSuggestion("rename one of the methods; each method needs its own channel field")
}

// NewUnsupportedResultError reports a method that declares results.
func NewUnsupportedResultError(iface, method string, results []string) *ValidationError {
	msg := fmt.Sprintf("interface %s: method %s returns %v; publisher methods must not return values", iface, method, results)
	return newValidation(UnsupportedResultErrorCode, iface, method, msg)
}

// NewUnsupportedTypeError reports an interface heysync cannot implement.
func NewUnsupportedTypeError(iface, reason string) *ValidationError {
	return newValidation(UnsupportedTypeErrorCode, iface, "", fmt.Sprintf("interface %s: %s", iface, reason))
}

// NewInterfaceNotFoundError reports a --type name missing from the package.
func NewInterfaceNotFoundError(pkg, name string) *ValidationError {
	return newValidation(InterfaceNotFoundErrorCode, name, "", fmt.Sprintf("interface %s not found in package %s", name, pkg))
}

// SyntaxError reports a malformed directive.
type SyntaxError struct {
	*BaseError
	Input string
}

// NewSyntaxError creates a SyntaxError for input.
func NewSyntaxError(input, message string) *SyntaxError {
	return &SyntaxError{BaseError: New(SyntaxErrorCode, message), Input: input}
}

// GenerationError reports a failure while producing or writing a file.
type GenerationError struct {
	*BaseError
	TargetFile string
	Stage      string
}

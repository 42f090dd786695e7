package errors

import (
	"fmt"
	"strings"
)

// HeysyncError is implemented by every error the generator reports.
type HeysyncError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a generator error.
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	ValidationErrorCode

	// Interface extraction
	DuplicateMethodErrorCode
	UnsupportedResultErrorCode
	UnsupportedTypeErrorCode
	InterfaceNotFoundErrorCode

	// Generation
	GenerationErrorCode
	TemplateErrorCode
	FileSystemErrorCode

	ConfigurationErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:            "SyntaxError",
	ValidationErrorCode:        "ValidationError",
	DuplicateMethodErrorCode:   "DuplicateMethodError",
	UnsupportedResultErrorCode: "UnsupportedResultError",
	UnsupportedTypeErrorCode:   "UnsupportedTypeError",
	InterfaceNotFoundErrorCode: "InterfaceNotFoundError",
	GenerationErrorCode:        "GenerationError",
	TemplateErrorCode:          "TemplateError",
	FileSystemErrorCode:        "FileSystemError",
	ConfigurationErrorCode:     "ConfigurationError",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation is a position in a Go source file.
type SourceLocation struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
}

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

// IsEmpty reports whether the location names no file.
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the common HeysyncError implementation.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

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

func (e *BaseError) ErrorCode() ErrorCode { return e.Code }

func (e *BaseError) Location() SourceLocation { return e.Loc }

func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

func (e *BaseError) Suggestions() []string { return e.Hints }

func (e *BaseError) Unwrap() error { return e.Cause }

// WithLocation sets where the error occurred.
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause sets the underlying error.
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext attaches a key/value pair.
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion appends a hint for fixing the error.
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a BaseError.
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Hints: make([]string, 0)}
}

// Newf creates a BaseError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a BaseError around cause.
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause, Hints: make([]string, 0)}
}

// MultipleErrors collects errors found in one pass, e.g. all rejected
// methods of a package.
type MultipleErrors struct {
	Errors []HeysyncError
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = fmt.Sprintf("  %d. %s", i+1, err.Error())
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *MultipleErrors) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		out[i] = err
	}
	return out
}

// Add appends err; nil is ignored.
func (e *MultipleErrors) Add(err HeysyncError) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *MultipleErrors) IsEmpty() bool { return len(e.Errors) == 0 }

// HasCode reports whether any collected error carries code.
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrOrNil returns nil when nothing was collected, the single error when one
// was, and the collection otherwise.
func (e *MultipleErrors) ErrOrNil() error {
	switch len(e.Errors) {
	case 0:
		return nil
	case 1:
		return e.Errors[0]
	}
	return e
}

// CodeOf returns the ErrorCode of err, or UnknownErrorCode.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if he, ok := err.(HeysyncError); ok {
			return he.ErrorCode()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return UnknownErrorCode
}

package heysync

import "fmt"

// Error codes for the runtime. Keep stable; generated code and adapters rely on them.
const (
	ErrCodeArity          = "heysync.arity_mismatch"
	ErrCodeNilChannel     = "heysync.nil_channel"
	ErrCodeAlreadyDefined = "heysync.already_defined"
	ErrCodeNotDefined     = "heysync.not_defined"
	ErrCodeVerification   = "heysync.verification_failed"
	ErrCodeUnsupported    = "heysync.unsupported_target"
)

type codedError string

func (e codedError) Error() string { return string(e) }

var (
	ErrArity          error = codedError(ErrCodeArity)
	ErrNilChannel     error = codedError(ErrCodeNilChannel)
	ErrAlreadyDefined error = codedError(ErrCodeAlreadyDefined)
	ErrNotDefined     error = codedError(ErrCodeNotDefined)
	ErrVerification   error = codedError(ErrCodeVerification)
	ErrUnsupported    error = codedError(ErrCodeUnsupported)
)

// ArityError reports a channel count that does not match the method count
// of the class being instantiated.
type ArityError struct {
	Class string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: %s expects %d channels, got %d", ErrCodeArity, e.Class, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrArity) hold for every ArityError.
func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

func verificationf(class, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrVerification, class, fmt.Sprintf(format, args...))
}

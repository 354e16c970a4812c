package spec

import "errors"

// ErrorCode categorizes parser errors for clearer handling and messaging.
type ErrorCode string

const (
	IOError            ErrorCode = "IOError"
	JSONError          ErrorCode = "JSONError"
	UnsupportedVersion ErrorCode = "UnsupportedVersion"
	InvalidSpec        ErrorCode = "InvalidSpec"
)

// Sentinels matched by SpecError.Is so callers can use errors.Is.
var (
	ErrIO                 = errors.New("spec: io error")
	ErrJSON               = errors.New("spec: malformed json")
	ErrUnsupportedVersion = errors.New("spec: unsupported version")
	ErrInvalidSpec        = errors.New("spec: invalid document")
)

// SpecError is a structured error with an optional location.
type SpecError struct {
	Code     ErrorCode
	Message  string
	Location string // file path or URL
	Cause    error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }

func (e *SpecError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Code == IOError
	case ErrJSON:
		return e.Code == JSONError
	case ErrUnsupportedVersion:
		return e.Code == UnsupportedVersion
	case ErrInvalidSpec:
		return e.Code == InvalidSpec
	}
	return false
}

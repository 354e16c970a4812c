package emitter

import "errors"

// ErrorCode categorizes generator errors.
type ErrorCode string

const (
	IOError              ErrorCode = "IOError"
	UnsupportedFramework ErrorCode = "UnsupportedFramework"
	UnsupportedOperation ErrorCode = "UnsupportedOperation"
	TemplateError        ErrorCode = "TemplateError"
)

var (
	ErrIO                   = errors.New("generator: io error")
	ErrUnsupportedFramework = errors.New("generator: unsupported framework")
	ErrUnsupportedOperation = errors.New("generator: unsupported operation")
	ErrTemplate             = errors.New("generator: template error")
)

// GeneratorError is a structured error raised by dispatch and emitters.
type GeneratorError struct {
	Code    ErrorCode
	Message string
	Path    string // file being written, when relevant
	Cause   error
}

func (e *GeneratorError) Error() string { return e.Message }
func (e *GeneratorError) Unwrap() error { return e.Cause }

func (e *GeneratorError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Code == IOError
	case ErrUnsupportedFramework:
		return e.Code == UnsupportedFramework
	case ErrUnsupportedOperation:
		return e.Code == UnsupportedOperation
	case ErrTemplate:
		return e.Code == TemplateError
	}
	return false
}

package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage matches every error caused by how a command was invoked: flags,
// config files, unreadable documents or output directories.
var ErrUsage = errors.New("cli usage error")

// usageError is a one-line message for the user, optionally followed by
// detail lines such as the offending location or a suggested fix.
type usageError struct {
	msg     string
	details []string
}

func newUsageError(msg string, details ...string) error {
	return usageError{msg: msg, details: details}
}

func usageErrorf(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func (e usageError) Error() string {
	if len(e.details) == 0 {
		return e.msg
	}
	return e.msg + "\n" + strings.Join(e.details, "\n")
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

package runtime

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/diagnostics"
)

// Error represents a runtime error during Mython execution.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a runtime error from a format string.
func NewError(format string, args ...any) *Error {
	return &Error{
		Code:    diagnostics.ERuntime,
		Message: fmt.Sprintf(format, args...),
	}
}

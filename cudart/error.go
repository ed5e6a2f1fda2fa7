package cudart

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Op identifies the runtime operation that failed.
type Op int

const (
	OpDeviceCount Op = iota
	OpGetDevice
	OpSetDevice
	OpDeviceGetAttribute
	OpMalloc
	OpMallocManaged
	OpFree
)

// String returns the name of the CUDA runtime function implementing the operation.
func (op Op) String() string {
	switch op {
	case OpDeviceCount:
		return "cudaGetDeviceCount"
	case OpGetDevice:
		return "cudaGetDevice"
	case OpSetDevice:
		return "cudaSetDevice"
	case OpDeviceGetAttribute:
		return "cudaDeviceGetAttribute"
	case OpMalloc:
		return "cudaMalloc"
	case OpMallocManaged:
		return "cudaMallocManaged"
	case OpFree:
		return "cudaFree"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Error is returned for any failure reported by the device runtime.
//
// It is always returned wrapped with a stack trace (see github.com/pkg/errors), use errors.As to retrieve it.
type Error struct {
	// Op is the failing operation, and Args its arguments, used to identify the call in the message.
	Op   Op
	Args []any

	// Code is the status returned by the runtime.
	Code Status

	// Message is the runtime's description of the failure.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		parts = append(parts, fmt.Sprint(arg))
	}
	return fmt.Sprintf("%s(%s) failed: %s (code=%d)", e.Op, strings.Join(parts, ", "), e.Message, e.Code)
}

// newError creates a runtime *Error, with a stack trace.
func newError(op Op, code Status, message string, args ...any) error {
	if message == "" {
		message = code.Description()
	}
	return errors.WithStack(&Error{Op: op, Args: args, Code: code, Message: message})
}

// AsError returns the runtime *Error wrapped in err, if there is one.
func AsError(err error) (*Error, bool) {
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr, true
	}
	return nil, false
}

// IsStatus returns whether err wraps a runtime *Error with the given status code.
func IsStatus(err error, code Status) bool {
	rtErr, ok := AsError(err)
	return ok && rtErr.Code == code
}

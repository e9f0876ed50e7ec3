package dispatch

import (
	"fmt"

	"github.com/Dicklesworthstone/clitool/pkg/binding"
)

// ParseError is returned when the argument vector could not be parsed. The
// message and usage have already been shown to the user.
type ParseError = binding.ParseError

// InitError wraps a failing Init hook. No command ran; Destroy did.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init failed: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// InvocationError wraps a command that failed or panicked.
type InvocationError struct {
	Command string
	// Panic holds the recovered value when the command panicked.
	Panic any
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("can't run command %s: %v", e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

package binding

import (
	"errors"
	"fmt"
)

// ErrHelp is returned by Parser.Parse when the arguments only asked for help.
// Help text has already been written by the time it is returned.
var ErrHelp = errors.New("help requested")

var errNoCommand = errors.New("a command is required")

// ArgError reports a positional token that its parameter type rejected.
type ArgError struct {
	Command string
	Param   string
	Type    string
	Value   string
	Err     error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("invalid value %q for argument %s (%s) of %s: %v", e.Value, e.Param, e.Type, e.Command, e.Err)
}

func (e *ArgError) Unwrap() error { return e.Err }

// BindingError reports a parameter with no parsed value.
type BindingError struct {
	Command string
	Param   string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("no value for argument %s of %s", e.Param, e.Command)
}

// ParseError wraps any failure to parse the argument vector. Usage holds the
// usage text of the command that failed, ready to show to the user.
type ParseError struct {
	Command string
	Usage   string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

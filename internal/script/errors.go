package script

import (
	"errors"
	"fmt"
)

// Errors returned while parsing.
var (
	// ErrUnknownCommand indicates a line starts with an unknown command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrArgCount indicates a command has the wrong number of arguments.
	ErrArgCount = errors.New("wrong number of arguments")

	// ErrBadPosition indicates a malformed LINE:CH position.
	ErrBadPosition = errors.New("bad position")

	// ErrBadString indicates a malformed quoted string.
	ErrBadString = errors.New("bad string")
)

// SyntaxError reports a script line that could not be parsed.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// RunError reports a script step the editor rejected. Err already names
// the command.
type RunError struct {
	Line    int
	Command string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

package parser

import (
	"errors"
	"fmt"
)

// MalformedCommandError is returned when the arguments do not fit the
// command's syntax. Usage is the command's usage text.
type MalformedCommandError struct {
	Usage string
	Err   error
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("Invalid command format! \n%s", e.Usage)
}

func (e *MalformedCommandError) Unwrap() error { return e.Err }

// UnknownCommandError is returned for an unrecognized command word.
type UnknownCommandError struct {
	Word string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command"
}

// InvalidValueError is returned when a well-formed argument holds a value that
// breaks a field constraint. The wrapped error carries the constraint text.
type InvalidValueError struct {
	Err error
}

func (e *InvalidValueError) Error() string { return e.Err.Error() }

func (e *InvalidValueError) Unwrap() error { return e.Err }

// IsParseError reports whether err came from parsing user input.
func IsParseError(err error) bool {
	var (
		malformed *MalformedCommandError
		unknown   *UnknownCommandError
		invalid   *InvalidValueError
	)
	return errors.As(err, &malformed) || errors.As(err, &unknown) || errors.As(err, &invalid)
}

var (
	errInvalidIndex      = errors.New("Index is not a non-zero unsigned integer.")
	errInvalidDateTime   = errors.New("Task date time should be of the format d-M-yy HHmm, e.g. 22-4-22 1345")
	errInvalidRecurrence = errors.New("Task interval should be of the format INTERVAL TIME_PERIOD, e.g. 3 weeks")
)

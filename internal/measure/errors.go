package measure

import (
	"errors"
	"fmt"
)

// Failure kinds. Callers match them with errors.Is.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidFeet     = errors.New("invalid feet")
	ErrInvalidFraction = errors.New("invalid fraction")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidInput    = errors.New("invalid input")
	ErrOverflow        = errors.New("overflow")
)

// ParseError reports which input failed and why.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(input string, err error) error {
	return &ParseError{Input: input, Err: err}
}

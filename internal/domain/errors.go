package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent fault conditions in a session.
// These errors can be checked with errors.Is.
var (
	// ErrIO is matched by every IOError.
	ErrIO = errors.New("defendcode: i/o failure")

	// ErrOverflow is matched by every OverflowError.
	ErrOverflow = errors.New("defendcode: integer overflow")

	// ErrInputClosed is returned when the operator's input stream ends
	// before a value was accepted.
	ErrInputClosed = errors.New("defendcode: input closed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("defendcode: invalid configuration")

	// ErrNoCredential is returned when the credential store holds no record.
	ErrNoCredential = errors.New("defendcode: no credential stored")

	// ErrUnexpected is matched by every UnexpectedError.
	ErrUnexpected = errors.New("defendcode: unexpected failure")
)

// IOError describes a file-system fault: a file that cannot be opened,
// read, written or persisted.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError wraps err as an IOError for op on path.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrIO as a match so callers can use errors.Is(err, ErrIO).
func (e *IOError) Is(target error) bool { return target == ErrIO }

// OverflowError reports a computed result outside the signed 32-bit range.
type OverflowError struct {
	// Op is "addition" or "multiplication".
	Op    string
	Value int64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("integer overflow occurred during %s: %d is outside [%d, %d]", e.Op, e.Value, MinInt32, MaxInt32)
}

// Is reports ErrOverflow as a match.
func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// UnexpectedError wraps a failure that fits no other category, including a
// recovered panic.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string { return fmt.Sprintf("unexpected error: %v", e.Err) }

func (e *UnexpectedError) Unwrap() error { return e.Err }

// Is reports ErrUnexpected as a match.
func (e *UnexpectedError) Is(target error) bool { return target == ErrUnexpected }

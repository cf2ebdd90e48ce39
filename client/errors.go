package client

import (
	"errors"
	"fmt"
)

// Sentinel and typed errors: a handful of sentinels for the common
// cases, plus one typed error that carries the extra context a bare
// sentinel can't.
var (
	ErrInvalidValue = errors.New("client: invalid value")
	ErrNotConnected = errors.New("client: not connected")
	ErrAlreadyInUse = errors.New("client: already in use")
	ErrClosureInUse = errors.New("client: closure still referenced")
	ErrHandleClosed = errors.New("client: handle closed")
	ErrTableFull    = errors.New("client: table operation failed")
)

// OSError carries an errno together with the source line that observed
// it, matching the source's NOTE_ERR/NOTE_ERRNO macros ("last-error
// code with source line").
type OSError struct {
	Errno error
	Line  int
}

func (e *OSError) Error() string {
	return fmt.Sprintf("client: os error %v at line %d", e.Errno, e.Line)
}

func (e *OSError) Unwrap() error { return e.Errno }

func osError(err error, line int) error {
	if err == nil {
		return nil
	}
	return &OSError{Errno: err, Line: line}
}

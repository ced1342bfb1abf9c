package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrPersonNotFound is reported, not returned: moving an unknown person is a no-op.
	ErrPersonNotFound   = errors.New("person not found")
	ErrLogStoreDisabled = errors.New("analysis log store is disabled")
)

// InvalidInputf wraps ErrInvalidInput with a formatted detail.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// InvalidRequestf wraps ErrInvalidRequest with a formatted detail.
func InvalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// SimulationError reports an unexpected failure while running a what-if simulation.
type SimulationError struct {
	Op  string
	Err error
}

func (e *SimulationError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("simulation failed: %v", e.Err)
	}
	return fmt.Sprintf("simulation failed: %s: %v", e.Op, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }

package types

import (
	"errors"
	"fmt"
)

// ErrNotFound is the base of every non-fatal lookup miss. Operations that
// fail with an error wrapping ErrNotFound leave the list unchanged.
var ErrNotFound = errors.New("not found")

// Non-fatal list errors. Each wraps ErrNotFound.
var (
	ErrIndexOutOfRange = fmt.Errorf("index out of range: %w", ErrNotFound)
	ErrValueNotFound   = fmt.Errorf("value not found: %w", ErrNotFound)
	ErrEmptyList       = fmt.Errorf("list is empty: %w", ErrNotFound)
)

// Fatal list errors. The operation that returns one of these did not change
// the list.
var (
	ErrAllocation = errors.New("allocation failed")
	ErrNilSlot    = errors.New("source slot is empty")
)

// IsNotFound reports whether err is one of the non-fatal lookup misses.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

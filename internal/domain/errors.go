package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the referenced item does not exist (optionally
// scoped by owner). Most mutators report a missing row as a plain false;
// Delete returns this error instead, preserving the original contract.
var ErrNotFound = errors.New("todo item not found")

// ValidationError reports an input that violates field constraints. The
// operation that returned it had no side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the backing store, distinct from a
// missing row. It is never retried here; the caller decides.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

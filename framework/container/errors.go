package container

import (
	"errors"
	"fmt"
)

var (
	// ErrWriteLockPoisoned is returned by writes once a previous writer
	// panicked while holding the exclusive lock.
	ErrWriteLockPoisoned = errors.New("container write lock poisoned")

	// ErrReadLockPoisoned is returned by reads on a poisoned container.
	ErrReadLockPoisoned = errors.New("container read lock poisoned")

	// ErrAlreadyRegistered is returned by Register when a value of the same
	// type is already stored.
	ErrAlreadyRegistered = errors.New("type already registered")

	// ErrNotRegistered is returned when no value is stored for the
	// requested type.
	ErrNotRegistered = errors.New("type not registered")

	// ErrDowncastFailed is returned when the stored value is not of the
	// requested type.
	ErrDowncastFailed = errors.New("failed to downcast resolved value")
)

// Error describes a failed container operation on a single type.
type Error struct {
	Op     string // register | replace | resolve | extend
	Type   string
	Module string // requesting module, set by ResolveInModule
	Err    error
}

func (e *Error) Error() string {
	if e.Type == "" {
		return e.Err.Error()
	}
	if e.Module != "" {
		return fmt.Sprintf("%s: %s (required by module `%s`)", e.Err, e.Type, e.Module)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Type)
}

func (e *Error) Unwrap() error { return e.Err }

// ProviderError wraps a factory failure with the name of the type the
// factory was meant to produce.
type ProviderError struct {
	Type string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("failed to build provider `%s`: %v", e.Type, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

package credstore

import "errors"

// Sentinel errors returned by credential store implementations. Callers
// match with [errors.Is]. ErrNotFound is the only non-failure condition: it
// means the slot is empty, which is a normal state before login.
var (
	ErrNotFound = errors.New("credential not found")

	// ErrLoad wraps any underlying failure while reading a credential slot.
	ErrLoad = errors.New("credential load failed")

	// ErrSave wraps any underlying failure while writing a credential slot.
	ErrSave = errors.New("credential save failed")

	// ErrDelete wraps any underlying failure while clearing a credential slot.
	ErrDelete = errors.New("credential delete failed")
)

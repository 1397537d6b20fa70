package localdoc

import "errors"

var (
	// ErrEntityNotFound is returned when the requested entity is absent
	// from the document or has been tombstoned.
	ErrEntityNotFound = errors.New("entity not found in local document")
	// ErrNoEncryptionKey is returned when no data-encryption key is
	// available in memory or the credential store; the document refuses to
	// read or write register values without one.
	ErrNoEncryptionKey = errors.New("no encryption key for local document")
)

package store

import "errors"

var (
	// ErrExecutingQuery wraps any database error raised while executing a
	// built query.
	ErrExecutingQuery = errors.New("error executing query")
	// ErrMetaNotFound is returned by LoadMeta when the key has never been
	// written.
	ErrMetaNotFound = errors.New("document meta key not found")
)

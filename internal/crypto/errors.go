package crypto

import "errors"

var (
	// ErrDecrypt is returned whenever decryption or authentication of a
	// ciphertext fails: wrong key, flipped bytes, truncated blob. Matched
	// with errors.Is; callers must treat it as terminal rather than retry
	// with the same key.
	ErrDecrypt = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when a key of the wrong length is
	// supplied to a symmetric operation.
	ErrInvalidKeySize = errors.New("invalid key size")
)

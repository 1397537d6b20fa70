package service

import "errors"

var (
	// ErrNoEncryptionKey is returned when an encrypted operation is
	// attempted but no data-encryption key can be found in memory or in the
	// credential store. Callers must never fall back to sending plaintext.
	ErrNoEncryptionKey = errors.New("no encryption key available")

	// ErrLoginFailed wraps any failure of the login flow, including
	// persistence failures after a successful server exchange (partial
	// credential state is treated as no login at all).
	ErrLoginFailed = errors.New("login failed")

	// ErrRegisterFailed wraps any failure of the registration flow.
	ErrRegisterFailed = errors.New("registration failed")
)

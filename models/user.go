package models

import "time"

// User represents an account as returned by the server. It carries identity
// attributes plus the wrapped data-encryption key for account bootstrap.
// The plaintext password never appears on this type: clients exchange a
// derived server password instead (see AccountKeys).
type User struct {
	// ID is the server-assigned user identifier (UUID).
	ID string `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is the account contact address. Non-sensitive.
	Email string `json:"email"`

	// IsVerified reports whether the account email has been confirmed.
	IsVerified bool `json:"isVerified"`

	// EncryptionSecret is the user's data-encryption key wrapped under the
	// password-derived master key. Opaque to the server; the client unwraps
	// it at login. Empty when the server omits it from a response.
	EncryptionSecret string `json:"encryptionSecret,omitempty"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the account record last changed.
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest is the registration payload sent to the server.
// Password must already be the derived server password, never the plaintext
// the user typed.
type CreateUserRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	EncryptionSecret string `json:"encryptionSecret"`
}

package session

import "errors"

var (
	// ErrNoRefreshToken is returned when an authenticated call is attempted
	// but no refresh token exists in memory or in the credential store. The
	// session cannot be recovered; the user must log in again.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNoAccessToken is returned when a retried call still has no access
	// token. It indicates a refresh that reported success without yielding a
	// usable token and is terminal for the originating call.
	ErrNoAccessToken = errors.New("no access token available")
)

package adapter

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed classification of request failures. The transport
// decodes each failed response into exactly one kind; everything above the
// transport switches on kinds instead of re-inspecting bodies or statuses.
type ErrorKind int

const (
	// KindNetwork: the request never produced an HTTP response (DNS, refused
	// connection, timeout).
	KindNetwork ErrorKind = iota

	// KindUnauthorized: the access token was missing, expired or revoked.
	// Recognized from either a bare 401 status or the application-level
	// "access-unauthorized" error identifier, whichever the server sends.
	KindUnauthorized

	// KindCredentialsInvalid: login was rejected (wrong username/password).
	KindCredentialsInvalid

	// KindNotFound: the addressed resource does not exist.
	KindNotFound

	// KindConflict: the request collides with existing state (e.g. username
	// already taken).
	KindConflict

	// KindValidation: the server rejected the request payload.
	KindValidation

	// KindServer: any other non-2xx response.
	KindServer
)

// String returns a short stable label, used in logs and error text.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindCredentialsInvalid:
		return "credentials-invalid"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "server"
	}
}

// Application-level error identifiers the server embeds in error bodies.
const (
	identifierAccessUnauthorized = "access-unauthorized"
	identifierCredentialsInvalid = "auth-credentials-invalid"
	identifierNotFound           = "resource-not-found"
	identifierConflict           = "resource-conflict"
	identifierValidation         = "request-invalid"
)

// RequestError is the single failure type for transport and server errors.
// It carries everything the caller needs to classify, log or surface the
// failure: the failed URL and method, the decoded kind, the raw server body
// and the underlying cause (if any).
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Kind       ErrorKind
	Identifier string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("request '%s %s' failed (%s)", e.Method, e.URL, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": http %d", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying transport error for errors.Is chains.
func (e *RequestError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a *RequestError of kind
// KindUnauthorized. This is the trigger for the refresh-and-retry path.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == KindUnauthorized
}

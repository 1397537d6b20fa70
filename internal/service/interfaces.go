package service

//go:generate mockgen -source=interfaces.go -destination=../mock/caller_mock.go -package=mock

import (
	"context"

	"github.com/ben-ryder/headbase/internal/adapter"
	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

// Caller is the slice of the session client the pipeline depends on.
// *session.Client satisfies it; tests substitute a mock.
type Caller interface {
	// Call sends one request with auth handling (refresh-and-retry).
	Call(ctx context.Context, req session.Request) (*adapter.Response, error)

	// CallJSON is Call plus JSON decoding of the response body into target.
	CallJSON(ctx context.Context, req session.Request, target any) error

	// Session returns the in-memory token pair.
	Session() models.Session

	// SetSession replaces the in-memory token pair after login/register.
	SetSession(s models.Session)

	// ClearSession drops the in-memory token pair only.
	ClearSession()

	// ClearCredentials wipes all four stored secrets and the in-memory pair.
	ClearCredentials(ctx context.Context) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

// Package session owns the access/refresh token lifecycle. Every
// authenticated request goes through [Client.Call], which attaches the
// current access token, transparently refreshes it once on an unauthorized
// response, and escalates a failed refresh to a full credential wipe (a dead
// refresh token cannot be recovered, so half-resolved sessions are never
// left behind).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ben-ryder/headbase/internal/adapter"
	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/models"
)

// Request describes one call made through the session client. NoAuth marks
// endpoints that must not carry a bearer token (login, register, refresh).
type Request struct {
	Method      string
	Path        string
	Body        any
	Query       map[string]string
	ContentType string
	NoAuth      bool
}

// Client guards the in-memory token pair: single writer (the refresh and
// login paths), many readers, with the credential store as the durable
// fallback on a memory miss.
type Client struct {
	transport adapter.Transport
	creds     credstore.Store
	log       *logger.Logger

	mu      sync.RWMutex
	session models.Session

	// refreshMu serializes refreshes; concurrent callers that all saw the
	// same expired token collapse into a single refresh request.
	refreshMu sync.Mutex
}

// NewClient builds a session client over the given transport and credential
// store.
func NewClient(transport adapter.Transport, creds credstore.Store, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{transport: transport, creds: creds, log: log}
}

// Session returns a copy of the in-memory token pair.
func (c *Client) Session() models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession replaces the in-memory token pair. Called by the login and
// register flows after the credential store has been updated.
func (c *Client) SetSession(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// ClearSession drops the in-memory token pair. It does not touch the
// credential store; see ClearCredentials for the full wipe.
func (c *Client) ClearSession() {
	c.SetSession(models.Session{})
}

// CurrentUserID extracts the subject claim from the held access token
// without verifying its signature (the client has no signing key; the server
// remains the authority). Returns an empty string when no token is held or
// the token is not a parseable JWT.
func (c *Client) CurrentUserID() string {
	token := c.Session().AccessToken
	if token == "" {
		return ""
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Call sends req, attaching and maintaining auth state as needed. On an
// unauthorized response it refreshes the token pair and replays the request
// exactly once; a second unauthorized outcome is returned to the caller
// untouched. All transport and server failures surface as
// *adapter.RequestError.
func (c *Client) Call(ctx context.Context, req Request) (*adapter.Response, error) {
	return c.call(ctx, req, false)
}

// CallJSON is Call plus JSON decoding of the response body into target.
// A nil target skips decoding.
func (c *Client) CallJSON(ctx context.Context, req Request, target any) error {
	resp, err := c.call(ctx, req, false)
	if err != nil {
		return err
	}
	if target == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, target); err != nil {
		return fmt.Errorf("decode response of '%s %s': %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, req Request, retry bool) (*adapter.Response, error) {
	var accessToken string

	if !req.NoAuth {
		token, err := c.resolveAccessToken(ctx)
		if err != nil {
			return nil, err
		}
		if token == "" {
			// A refresh token exists but no usable access token; recover via
			// the refresh path unless this call already is the retry.
			if retry {
				return nil, ErrNoAccessToken
			}
			return c.refreshAndRetry(ctx, req, "")
		}
		accessToken = token
	}

	resp, err := c.transport.Do(ctx, adapter.Request{
		Method:      req.Method,
		Path:        req.Path,
		Body:        req.Body,
		Query:       req.Query,
		ContentType: req.ContentType,
		AccessToken: accessToken,
	})
	if err != nil {
		if adapter.IsUnauthorized(err) && !req.NoAuth && !retry {
			return c.refreshAndRetry(ctx, req, accessToken)
		}
		return nil, err
	}

	return resp, nil
}

// resolveAccessToken returns the access token to attach, falling back to the
// credential store on a memory miss. An empty return with nil error means
// "no access token but a refresh token is available". When neither token can
// be found anywhere the session is unrecoverable and ErrNoRefreshToken is
// returned.
func (c *Client) resolveAccessToken(ctx context.Context) (string, error) {
	s := c.Session()
	if s.HasAccessToken() && !c.tokenExpired(s.AccessToken) {
		return s.AccessToken, nil
	}
	if s.HasRefreshToken() {
		return "", nil
	}

	accessToken, err := c.loadCredential(ctx, c.creds.LoadAccessToken)
	if err != nil {
		return "", err
	}
	refreshToken, err := c.loadCredential(ctx, c.creds.LoadRefreshToken)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	c.SetSession(models.Session{AccessToken: accessToken, RefreshToken: refreshToken})

	if accessToken == "" || c.tokenExpired(accessToken) {
		return "", nil
	}
	return accessToken, nil
}

// loadCredential maps the store's not-found state onto an empty value;
// genuine storage failures propagate.
func (c *Client) loadCredential(ctx context.Context, load func(context.Context) (string, error)) (string, error) {
	v, err := load(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque (non-JWT) tokens never report expired here; the server stays the
// authority for those.
func (c *Client) tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (c *Client) refreshAndRetry(ctx context.Context, req Request, staleToken string) (*adapter.Response, error) {
	if err := c.Refresh(ctx, staleToken); err != nil {
		return nil, err
	}
	return c.call(ctx, req, true)
}

// Refresh exchanges the refresh token for a new token pair and persists it.
// staleToken is the access token the caller saw fail; if another goroutine
// already replaced it with a live token by the time the refresh lock is
// acquired, the refresh is skipped. An expired current token never counts as
// a replacement, so a proactively rejected token (resolveAccessToken found
// it expired) still triggers a real refresh. A failed refresh wipes all
// stored credentials before returning, because a rejected refresh token is
// irrecoverable.
func (c *Client) Refresh(ctx context.Context, staleToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current := c.Session()
	if current.HasAccessToken() && !c.tokenExpired(current.AccessToken) && current.AccessToken != staleToken {
		// Someone else refreshed while we waited for the lock.
		return nil
	}

	refreshToken := current.RefreshToken
	if refreshToken == "" {
		var err error
		refreshToken, err = c.loadCredential(ctx, c.creds.LoadRefreshToken)
		if err != nil {
			return err
		}
		if refreshToken == "" {
			return ErrNoRefreshToken
		}
	}

	resp, err := c.transport.Do(ctx, adapter.Request{
		Method: "POST",
		Path:   "/v1/auth/refresh",
		Body:   map[string]string{"refreshToken": refreshToken},
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("token refresh rejected, clearing credentials")
		if clearErr := c.ClearCredentials(ctx); clearErr != nil {
			c.log.Error().Err(clearErr).Msg("credential wipe after failed refresh incomplete")
		}
		return fmt.Errorf("token refresh failed: %w", err)
	}

	var refreshed models.RefreshResponse
	if err := json.Unmarshal(resp.Body, &refreshed); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}

	if err := c.creds.SaveRefreshToken(ctx, refreshed.RefreshToken); err != nil {
		return err
	}
	if err := c.creds.SaveAccessToken(ctx, refreshed.AccessToken); err != nil {
		return err
	}
	c.SetSession(models.Session{AccessToken: refreshed.AccessToken, RefreshToken: refreshed.RefreshToken})

	c.log.Debug().Msg("access token refreshed")
	return nil
}

// ClearCredentials removes all four secrets from the credential store and
// drops the in-memory pair. Deletion order mirrors logout: user record
// first, then the encryption key, then the refresh and access tokens. The
// first failure aborts the wipe so a retry still sees the remaining slots.
func (c *Client) ClearCredentials(ctx context.Context) error {
	if err := c.creds.DeleteCurrentUser(ctx); err != nil {
		return err
	}
	if err := c.creds.DeleteDEK(ctx); err != nil {
		return err
	}
	if err := c.creds.DeleteRefreshToken(ctx); err != nil {
		return err
	}
	if err := c.creds.DeleteAccessToken(ctx); err != nil {
		return err
	}
	c.ClearSession()
	return nil
}

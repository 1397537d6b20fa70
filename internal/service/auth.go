// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

// Info fetches the unauthenticated server info endpoint. The client uses it
// as a reachability probe before syncing.
func (c *Client) Info(ctx context.Context) (models.ServerInfo, error) {
	var info models.ServerInfo
	err := c.session.CallJSON(ctx, session.Request{Method: "GET", Path: "/v1/info", NoAuth: true}, &info)
	if err != nil {
		return models.ServerInfo{}, err
	}
	return info, nil
}

// Login authenticates against the server. The plaintext password never
// leaves the process: account keys are derived locally and only the server
// password is transmitted. When the returned user record carries a wrapped
// encryption secret it is unwrapped with the master key and the resulting
// DEK persisted alongside the user record and token pair.
//
// Persistence is atomic from the caller's perspective: if any save fails the
// stored credentials are wiped and the login reports failure, because
// partial credential state is a security hazard.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, error) {
	keys, err := c.envelope.DeriveAccountKeys(username, password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	var resp models.LoginResponse
	err = c.session.CallJSON(ctx, session.Request{
		Method: "POST",
		Path:   "/v1/auth/login",
		Body:   map[string]string{"username": username, "password": keys.ServerPassword},
		NoAuth: true,
	}, &resp)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	var dek []byte
	if resp.User.EncryptionSecret != "" {
		dek, err = c.envelope.UnwrapKey(keys.MasterKey, resp.User.EncryptionSecret)
		if err != nil {
			return models.User{}, fmt.Errorf("%w: unwrap encryption key: %v", ErrLoginFailed, err)
		}
	}

	if err := c.persistLogin(ctx, resp, dek); err != nil {
		// Roll back whatever subset was saved; a half-written credential set
		// must not survive a failed login.
		if wipeErr := c.session.ClearCredentials(ctx); wipeErr != nil {
			c.log.Error().Err(wipeErr).Msg("credential rollback after failed login incomplete")
		}
		c.clearDEK()
		return models.User{}, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	if dek != nil {
		c.setDEK(dek)
	}
	c.session.SetSession(models.Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})

	c.log.Info().Str("username", resp.User.Username).Msg("logged in")
	return resp.User, nil
}

// persistLogin stores the login result: user record, then access token,
// then refresh token, then the DEK when one was unwrapped.
func (c *Client) persistLogin(ctx context.Context, resp models.LoginResponse, dek []byte) error {
	if err := c.creds.SaveCurrentUser(ctx, resp.User); err != nil {
		return err
	}
	if err := c.creds.SaveAccessToken(ctx, resp.AccessToken); err != nil {
		return err
	}
	if err := c.creds.SaveRefreshToken(ctx, resp.RefreshToken); err != nil {
		return err
	}
	if dek != nil {
		if err := c.creds.SaveDEK(ctx, dek); err != nil {
			return err
		}
	}
	return nil
}

// Register creates a new account. A fresh DEK is generated locally, wrapped
// under the password-derived master key, and shipped to the server as the
// account's encryption secret; the server never sees the DEK or the
// plaintext password.
func (c *Client) Register(ctx context.Context, username, email, password string) (models.User, error) {
	keys, err := c.envelope.DeriveAccountKeys(username, password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	dek, err := c.envelope.GenerateKey()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	wrapped, err := c.envelope.WrapKey(keys.MasterKey, dek)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	var resp models.LoginResponse
	err = c.session.CallJSON(ctx, session.Request{
		Method: "POST",
		Path:   "/v1/users",
		Body: models.CreateUserRequest{
			Username:         username,
			Email:            email,
			Password:         keys.ServerPassword,
			EncryptionSecret: wrapped,
		},
		NoAuth: true,
	}, &resp)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	if err := c.persistLogin(ctx, resp, dek); err != nil {
		if wipeErr := c.session.ClearCredentials(ctx); wipeErr != nil {
			c.log.Error().Err(wipeErr).Msg("credential rollback after failed registration incomplete")
		}
		c.clearDEK()
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	c.setDEK(dek)
	c.session.SetSession(models.Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})

	c.log.Info().Str("username", resp.User.Username).Msg("account registered")
	return resp.User, nil
}

// Logout revokes the token pair server-side, then deletes all stored
// secrets. The revoke call is attempted before anything is deleted so a
// failed revoke can be retried with the still-present tokens, but its
// failure does not block local cleanup. When the in-memory pair is empty
// (a fresh process) the tokens are read from the credential store first;
// revoke is skipped only when no tokens exist anywhere. Deletion order:
// user record, encryption key, refresh token, access token.
func (c *Client) Logout(ctx context.Context) error {
	s := c.session.Session()
	accessToken := s.AccessToken
	refreshToken := s.RefreshToken
	if accessToken == "" && refreshToken == "" {
		accessToken = c.storedToken(ctx, c.creds.LoadAccessToken)
		refreshToken = c.storedToken(ctx, c.creds.LoadRefreshToken)
	}

	tokens := map[string]string{}
	if accessToken != "" {
		tokens["accessToken"] = accessToken
	}
	if refreshToken != "" {
		tokens["refreshToken"] = refreshToken
	}

	if len(tokens) > 0 {
		_, err := c.session.Call(ctx, session.Request{
			Method: "POST",
			Path:   "/v1/auth/revoke",
			Body:   tokens,
			NoAuth: true,
		})
		if err != nil {
			c.log.Warn().Err(err).Msg("token revoke failed, proceeding with local cleanup")
		}
	}

	if err := c.session.ClearCredentials(ctx); err != nil {
		return fmt.Errorf("logout cleanup: %w", err)
	}
	c.clearDEK()

	c.log.Info().Msg("logged out")
	return nil
}

// storedToken reads a token slot from the credential store, mapping the
// empty-slot state onto "". Revoke is best effort, so genuine load failures
// are logged rather than aborting the logout.
func (c *Client) storedToken(ctx context.Context, load func(context.Context) (string, error)) string {
	v, err := load(ctx)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			c.log.Warn().Err(err).Msg("stored token load failed")
		}
		return ""
	}
	return v
}

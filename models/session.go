// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package models

// Session is the in-memory token pair held by the session client and
// mirrored to the credential store. A present access token implies a present
// refresh token: the server always issues them together, and only the access
// token is ever evicted on its own (at expiry).
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// HasAccessToken reports whether an access token is currently held.
func (s Session) HasAccessToken() bool { return s.AccessToken != "" }

// HasRefreshToken reports whether a refresh token is currently held.
func (s Session) HasRefreshToken() bool { return s.RefreshToken != "" }

// AccountKeys is the result of deriving the user's plaintext password.
// ServerPassword is sent to the server in place of the plaintext password;
// MasterKey never leaves the client and is used only to wrap and unwrap the
// data-encryption key. Neither value is ever persisted.
type AccountKeys struct {
	ServerPassword string
	MasterKey      []byte
}

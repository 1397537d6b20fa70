// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package credstore

//go:generate mockgen -source=interfaces.go -destination=../mock/credstore_mock.go -package=mock

import (
	"context"

	"github.com/ben-ryder/headbase/models"
)

// Store persists the four client secrets: the data-encryption key, the
// access/refresh token pair and the current-user record. Implementations are
// supplied by the host environment (OS keychain, plain file, memory for
// tests); the rest of the client treats them as a durable single-writer,
// multi-reader backing store for its in-memory caches.
//
// Absence is reported as ErrNotFound, never as a zero value with nil error.
// Every other failure wraps one of ErrLoad, ErrSave or ErrDelete together
// with the underlying cause.
type Store interface {
	LoadDEK(ctx context.Context) ([]byte, error)
	SaveDEK(ctx context.Context, dek []byte) error
	DeleteDEK(ctx context.Context) error

	LoadAccessToken(ctx context.Context) (string, error)
	SaveAccessToken(ctx context.Context, token string) error
	DeleteAccessToken(ctx context.Context) error

	LoadRefreshToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context) error

	LoadCurrentUser(ctx context.Context) (models.User, error)
	SaveCurrentUser(ctx context.Context, user models.User) error
	DeleteCurrentUser(ctx context.Context) error
}

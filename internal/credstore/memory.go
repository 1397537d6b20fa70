package credstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/ben-ryder/headbase/models"
)

// memoryStore is an in-memory [Store]. Nothing survives process exit; it
// exists for tests and for ephemeral sessions that must not touch disk.
type memoryStore struct {
	mu    sync.RWMutex
	state fileState
}

// NewMemoryStore returns an empty in-memory [Store].
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) LoadDEK(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.state.DEK) == 0 {
		return nil, fmt.Errorf("%w: dek", ErrNotFound)
	}
	return append([]byte(nil), s.state.DEK...), nil
}

func (s *memoryStore) SaveDEK(_ context.Context, dek []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DEK = append([]byte(nil), dek...)
	return nil
}

func (s *memoryStore) DeleteDEK(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DEK = nil
	return nil
}

func (s *memoryStore) LoadAccessToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.AccessToken == "" {
		return "", fmt.Errorf("%w: access token", ErrNotFound)
	}
	return s.state.AccessToken, nil
}

func (s *memoryStore) SaveAccessToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = token
	return nil
}

func (s *memoryStore) DeleteAccessToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = ""
	return nil
}

func (s *memoryStore) LoadRefreshToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.RefreshToken == "" {
		return "", fmt.Errorf("%w: refresh token", ErrNotFound)
	}
	return s.state.RefreshToken, nil
}

func (s *memoryStore) SaveRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RefreshToken = token
	return nil
}

func (s *memoryStore) DeleteRefreshToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RefreshToken = ""
	return nil
}

func (s *memoryStore) LoadCurrentUser(_ context.Context) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentUser == nil {
		return models.User{}, fmt.Errorf("%w: current user", ErrNotFound)
	}
	return *s.state.CurrentUser, nil
}

func (s *memoryStore) SaveCurrentUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.state.CurrentUser = &u
	return nil
}

func (s *memoryStore) DeleteCurrentUser(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = nil
	return nil
}

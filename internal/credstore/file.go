package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ben-ryder/headbase/models"
)

// fileStore persists credentials as a single JSON file, for hosts without a
// usable OS keychain (headless boxes, CI). The file is written with 0600
// permissions; the DEK inside it is still only as safe as the filesystem.
type fileStore struct {
	path string

	mu    sync.RWMutex
	state fileState
}

type fileState struct {
	DEK          []byte       `json:"dek,omitempty"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	CurrentUser  *models.User `json:"currentUser,omitempty"`
}

// NewFileStore returns a [Store] backed by the JSON file at path. An
// existing file is loaded eagerly so a corrupt file fails construction
// rather than the first credential access.
func NewFileStore(path string) (Store, error) {
	s := &fileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: read credential file: %v", ErrLoad, err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("%w: decode credential file: %v", ErrLoad, err)
	}
	return s, nil
}

// persist writes the current state back to disk. Callers hold s.mu.
func (s *fileStore) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credential dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

func (s *fileStore) update(mutate func(*fileState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.state)
	return s.persist()
}

func (s *fileStore) LoadDEK(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.state.DEK) == 0 {
		return nil, fmt.Errorf("%w: dek", ErrNotFound)
	}
	return append([]byte(nil), s.state.DEK...), nil
}

func (s *fileStore) SaveDEK(_ context.Context, dek []byte) error {
	err := s.update(func(st *fileState) { st.DEK = append([]byte(nil), dek...) })
	if err != nil {
		return fmt.Errorf("%w: dek: %v", ErrSave, err)
	}
	return nil
}

func (s *fileStore) DeleteDEK(_ context.Context) error {
	err := s.update(func(st *fileState) { st.DEK = nil })
	if err != nil {
		return fmt.Errorf("%w: dek: %v", ErrDelete, err)
	}
	return nil
}

func (s *fileStore) LoadAccessToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.AccessToken == "" {
		return "", fmt.Errorf("%w: access token", ErrNotFound)
	}
	return s.state.AccessToken, nil
}

func (s *fileStore) SaveAccessToken(_ context.Context, token string) error {
	err := s.update(func(st *fileState) { st.AccessToken = token })
	if err != nil {
		return fmt.Errorf("%w: access token: %v", ErrSave, err)
	}
	return nil
}

func (s *fileStore) DeleteAccessToken(_ context.Context) error {
	err := s.update(func(st *fileState) { st.AccessToken = "" })
	if err != nil {
		return fmt.Errorf("%w: access token: %v", ErrDelete, err)
	}
	return nil
}

func (s *fileStore) LoadRefreshToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.RefreshToken == "" {
		return "", fmt.Errorf("%w: refresh token", ErrNotFound)
	}
	return s.state.RefreshToken, nil
}

func (s *fileStore) SaveRefreshToken(_ context.Context, token string) error {
	err := s.update(func(st *fileState) { st.RefreshToken = token })
	if err != nil {
		return fmt.Errorf("%w: refresh token: %v", ErrSave, err)
	}
	return nil
}

func (s *fileStore) DeleteRefreshToken(_ context.Context) error {
	err := s.update(func(st *fileState) { st.RefreshToken = "" })
	if err != nil {
		return fmt.Errorf("%w: refresh token: %v", ErrDelete, err)
	}
	return nil
}

func (s *fileStore) LoadCurrentUser(_ context.Context) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentUser == nil {
		return models.User{}, fmt.Errorf("%w: current user", ErrNotFound)
	}
	return *s.state.CurrentUser, nil
}

func (s *fileStore) SaveCurrentUser(_ context.Context, user models.User) error {
	err := s.update(func(st *fileState) { st.CurrentUser = &user })
	if err != nil {
		return fmt.Errorf("%w: current user: %v", ErrSave, err)
	}
	return nil
}

func (s *fileStore) DeleteCurrentUser(_ context.Context) error {
	err := s.update(func(st *fileState) { st.CurrentUser = nil })
	if err != nil {
		return fmt.Errorf("%w: current user: %v", ErrDelete, err)
	}
	return nil
}

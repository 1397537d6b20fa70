package credstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ben-ryder/headbase/models"
)

// Slot names under which secrets are filed in the OS keyring.
const (
	slotDEK          = "dek"
	slotAccessToken  = "access-token"
	slotRefreshToken = "refresh-token"
	slotCurrentUser  = "current-user"
)

// keyringStore keeps credentials in the operating system keychain via
// zalando/go-keyring (Keychain on macOS, wincred on Windows, Secret Service
// on Linux). Values that are not strings are encoded before storage: the DEK
// as base64, the user record as JSON.
type keyringStore struct {
	service string
}

// NewKeyringStore returns a [Store] backed by the OS keychain. service
// namespaces the entries so multiple headbase profiles can coexist.
func NewKeyringStore(service string) Store {
	if service == "" {
		service = "headbase"
	}
	return &keyringStore{service: service}
}

func (s *keyringStore) get(slot string) (string, error) {
	v, err := keyring.Get(s.service, slot)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, slot)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrLoad, slot, err)
	}
	return v, nil
}

func (s *keyringStore) set(slot, value string) error {
	if err := keyring.Set(s.service, slot, value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, slot, err)
	}
	return nil
}

func (s *keyringStore) delete(slot string) error {
	err := keyring.Delete(s.service, slot)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrDelete, slot, err)
	}
	return nil
}

func (s *keyringStore) LoadDEK(_ context.Context) ([]byte, error) {
	v, err := s.get(slotDEK)
	if err != nil {
		return nil, err
	}
	dek, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%w: decode dek: %v", ErrLoad, err)
	}
	return dek, nil
}

func (s *keyringStore) SaveDEK(_ context.Context, dek []byte) error {
	return s.set(slotDEK, base64.StdEncoding.EncodeToString(dek))
}

func (s *keyringStore) DeleteDEK(_ context.Context) error {
	return s.delete(slotDEK)
}

func (s *keyringStore) LoadAccessToken(_ context.Context) (string, error) {
	return s.get(slotAccessToken)
}

func (s *keyringStore) SaveAccessToken(_ context.Context, token string) error {
	return s.set(slotAccessToken, token)
}

func (s *keyringStore) DeleteAccessToken(_ context.Context) error {
	return s.delete(slotAccessToken)
}

func (s *keyringStore) LoadRefreshToken(_ context.Context) (string, error) {
	return s.get(slotRefreshToken)
}

func (s *keyringStore) SaveRefreshToken(_ context.Context, token string) error {
	return s.set(slotRefreshToken, token)
}

func (s *keyringStore) DeleteRefreshToken(_ context.Context) error {
	return s.delete(slotRefreshToken)
}

func (s *keyringStore) LoadCurrentUser(_ context.Context) (models.User, error) {
	v, err := s.get(slotCurrentUser)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(v), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: decode current user: %v", ErrLoad, err)
	}
	return user, nil
}

func (s *keyringStore) SaveCurrentUser(_ context.Context, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode current user: %v", ErrSave, err)
	}
	return s.set(slotCurrentUser, string(payload))
}

func (s *keyringStore) DeleteCurrentUser(_ context.Context) error {
	return s.delete(slotCurrentUser)
}

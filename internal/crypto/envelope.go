// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/ben-ryder/headbase/models"
)

const (
	dekSize   = 32
	deriveLen = 64 // 32 bytes master key + 32 bytes server password
)

// accountSaltPrefix domain-separates account-key derivation from any other
// use of the username as KDF input.
const accountSaltPrefix = "headbase-account-keys:"

// envelope is the private implementation of [Envelope].
type envelope struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewEnvelope constructs an [Envelope] with the Argon2id parameters
// recommended by OWASP (2024): 1 iteration, 64 MiB memory, 4 threads.
func NewEnvelope() Envelope {
	return &envelope{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
}

// DeriveAccountKeys implements [Envelope]. The salt is a SHA-256 digest of
// the prefixed username, so the same (username, password) pair always yields
// the same keys on every device. The first 32 bytes of the Argon2id output
// become the master key; the remaining 32 become the server password,
// base64-encoded for transport. The two halves never overlap, so knowledge
// of the server password reveals nothing about the master key.
func (e *envelope) DeriveAccountKeys(username, password string) (models.AccountKeys, error) {
	if username == "" || password == "" {
		return models.AccountKeys{}, fmt.Errorf("account key derivation requires a username and password")
	}

	salt := sha256.Sum256([]byte(accountSaltPrefix + username))
	derived := argon2.IDKey([]byte(password), salt[:], e.argonTime, e.argonMemory, e.argonThreads, deriveLen)

	return models.AccountKeys{
		MasterKey:      derived[:dekSize],
		ServerPassword: base64.StdEncoding.EncodeToString(derived[dekSize:]),
	}, nil
}

// GenerateKey implements [Envelope]. It reads 32 random bytes from the OS
// CSPRNG and returns them as the data-encryption key.
func (e *envelope) GenerateKey() ([]byte, error) {
	dek := make([]byte, dekSize)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return dek, nil
}

// WrapKey implements [Envelope]. The DEK is sealed with AES-256-GCM under
// the master key; a random 12-byte nonce is prepended to the ciphertext so
// the unwrap side can locate it: blob = nonce ‖ ciphertext.
func (e *envelope) WrapKey(masterKey, dek []byte) (string, error) {
	blob, err := seal(masterKey, dek)
	if err != nil {
		return "", fmt.Errorf("wrap key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// UnwrapKey implements [Envelope]. An authentication failure here almost
// always means the user entered the wrong password, producing a wrong
// master key.
func (e *envelope) UnwrapKey(masterKey []byte, wrapped string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: decode wrapped key: %v", ErrDecrypt, err)
	}
	dek, err := open(masterKey, blob)
	if err != nil {
		return nil, fmt.Errorf("unwrap key: %w", err)
	}
	return dek, nil
}

// EncryptRecord implements [Envelope]. The payload is marshalled to JSON and
// sealed under the DEK; the output is base64(nonce ‖ ciphertext).
func (e *envelope) EncryptRecord(dek []byte, payload any) (models.CipherText, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	blob, err := seal(dek, plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt record: %w", err)
	}

	return models.CipherText(base64.StdEncoding.EncodeToString(blob)), nil
}

// DecryptRecord implements [Envelope].
func (e *envelope) DecryptRecord(dek []byte, record models.CipherText, target any) error {
	blob, err := base64.StdEncoding.DecodeString(string(record))
	if err != nil {
		return fmt.Errorf("%w: decode record: %v", ErrDecrypt, err)
	}

	plaintext, err := open(dek, blob)
	if err != nil {
		return fmt.Errorf("decrypt record: %w", err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}

// seal encrypts plaintext with AES-256-GCM under key and returns
// nonce ‖ ciphertext.
func seal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return append(nonce, gcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// open reverses seal. Every failure mode maps onto ErrDecrypt so callers
// can match a single sentinel.
func open(key, blob []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != dekSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), dekSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

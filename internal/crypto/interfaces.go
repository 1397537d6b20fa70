package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_mock.go -package=mock

import "github.com/ben-ryder/headbase/models"

// Envelope isolates every cryptographic primitive the client uses. It knows
// nothing about the network, storage or users; its only job is deriving,
// protecting and applying keys.
//
// Key scheme:
//
//	serverPassword, masterKey = DeriveAccountKeys(username, password)
//	DEK                       = GenerateKey()            (at registration)
//	encryptionSecret          = WrapKey(masterKey, DEK)  (stored server-side)
//	DEK                       = UnwrapKey(masterKey, encryptionSecret)  (at login)
type Envelope interface {
	// DeriveAccountKeys derives the server password and the master key from
	// the user's plaintext password. The derivation is deterministic (the
	// same inputs always produce the same outputs) and uses a slow, salted
	// KDF so the server-side password store resists brute force. The
	// plaintext password must not be used for anything else.
	DeriveAccountKeys(username, password string) (models.AccountKeys, error)

	// GenerateKey produces a fresh random 256-bit data-encryption key.
	GenerateKey() ([]byte, error)

	// WrapKey encrypts the DEK under the master key with AES-256-GCM and
	// returns a base64 blob (nonce ‖ ciphertext) safe to store server-side.
	WrapKey(masterKey, dek []byte) (string, error)

	// UnwrapKey reverses WrapKey. Returns ErrDecrypt if the master key is
	// wrong or the blob has been tampered with.
	UnwrapKey(masterKey []byte, wrapped string) ([]byte, error)

	// EncryptRecord serializes payload to JSON and encrypts it under the DEK.
	// The result is authenticated: any modification is detected on decrypt.
	EncryptRecord(dek []byte, payload any) (models.CipherText, error)

	// DecryptRecord decrypts a blob produced by EncryptRecord and unmarshals
	// the plaintext into target (a non-nil pointer, as for json.Unmarshal).
	// Returns ErrDecrypt on a wrong key, corrupted ciphertext or malformed
	// blob; it never returns garbage plaintext.
	DecryptRecord(dek []byte, record models.CipherText, target any) error
}

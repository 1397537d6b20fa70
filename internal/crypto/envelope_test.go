package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/ben-ryder/headbase/models"
)

// fastEnvelope lowers the Argon2id memory cost so key-derivation tests do
// not dominate the suite. Symmetric operations are unaffected.
func fastEnvelope() *envelope {
	return &envelope{argonTime: 1, argonMemory: 8, argonThreads: 1}
}

func TestDeriveAccountKeys_Deterministic(t *testing.T) {
	e := fastEnvelope()

	k1, err := e.DeriveAccountKeys("alice", "pw123")
	if err != nil {
		t.Fatalf("DeriveAccountKeys error: %v", err)
	}
	k2, err := e.DeriveAccountKeys("alice", "pw123")
	if err != nil {
		t.Fatalf("DeriveAccountKeys error: %v", err)
	}

	if k1.ServerPassword != k2.ServerPassword {
		t.Fatalf("expected identical server passwords for same inputs")
	}
	if !bytes.Equal(k1.MasterKey, k2.MasterKey) {
		t.Fatalf("expected identical master keys for same inputs")
	}
	if len(k1.MasterKey) != 32 {
		t.Fatalf("master key length = %d, want 32", len(k1.MasterKey))
	}
}

func TestDeriveAccountKeys_DistinctPerUserAndHalves(t *testing.T) {
	e := fastEnvelope()

	alice, _ := e.DeriveAccountKeys("alice", "pw123")
	bob, _ := e.DeriveAccountKeys("bob", "pw123")

	if alice.ServerPassword == bob.ServerPassword {
		t.Fatalf("expected different server passwords for different usernames")
	}
	if bytes.Equal(alice.MasterKey, bob.MasterKey) {
		t.Fatalf("expected different master keys for different usernames")
	}

	// The transmitted half must not leak the client-only half.
	sp, err := base64.StdEncoding.DecodeString(alice.ServerPassword)
	if err != nil {
		t.Fatalf("server password is not base64: %v", err)
	}
	if bytes.Equal(sp, alice.MasterKey) {
		t.Fatalf("server password must differ from master key")
	}
}

func TestDeriveAccountKeys_RejectsEmptyInputs(t *testing.T) {
	e := fastEnvelope()

	if _, err := e.DeriveAccountKeys("", "pw"); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if _, err := e.DeriveAccountKeys("alice", ""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestWrapUnwrapKey_RoundTrip(t *testing.T) {
	e := NewEnvelope()

	master, err := e.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	dek, err := e.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}

	wrapped, err := e.WrapKey(master, dek)
	if err != nil {
		t.Fatalf("WrapKey error: %v", err)
	}

	got, err := e.UnwrapKey(master, wrapped)
	if err != nil {
		t.Fatalf("UnwrapKey error: %v", err)
	}
	if !bytes.Equal(got, dek) {
		t.Fatalf("unwrap(wrap(dek)) != dek")
	}
}

func TestUnwrapKey_WrongMasterKeyFails(t *testing.T) {
	e := NewEnvelope()

	master, _ := e.GenerateKey()
	other, _ := e.GenerateKey()
	dek, _ := e.GenerateKey()

	wrapped, err := e.WrapKey(master, dek)
	if err != nil {
		t.Fatalf("WrapKey error: %v", err)
	}

	if _, err := e.UnwrapKey(other, wrapped); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for wrong master key, got %v", err)
	}
}

func TestEncryptDecryptRecord_RoundTrip(t *testing.T) {
	e := NewEnvelope()
	dek, _ := e.GenerateKey()

	in := models.NoteContent{Title: "groceries", Body: "milk, eggs", TagIDs: []string{"t1", "t2"}}

	ct, err := e.EncryptRecord(dek, in)
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	var out models.NoteContent
	if err := e.DecryptRecord(dek, ct, &out); err != nil {
		t.Fatalf("DecryptRecord error: %v", err)
	}
	if out.Title != in.Title || out.Body != in.Body || len(out.TagIDs) != 2 {
		t.Fatalf("round trip mismatch: got %+v", out)
	}
}

func TestDecryptRecord_TamperDetection(t *testing.T) {
	e := NewEnvelope()
	dek, _ := e.GenerateKey()

	ct, err := e.EncryptRecord(dek, models.NoteContent{Title: "secret"})
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	blob, err := base64.StdEncoding.DecodeString(string(ct))
	if err != nil {
		t.Fatalf("decode ciphertext: %v", err)
	}

	// Flipping any single byte of the blob (nonce, ciphertext or tag) must
	// surface ErrDecrypt, never a different-looking plaintext.
	for i := range blob {
		mutated := append([]byte(nil), blob...)
		mutated[i] ^= 0x01
		tampered := models.CipherText(base64.StdEncoding.EncodeToString(mutated))

		var out models.NoteContent
		if err := e.DecryptRecord(dek, tampered, &out); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("byte %d: expected ErrDecrypt, got %v", i, err)
		}
	}
}

func TestDecryptRecord_WrongKeyAndMalformedBlob(t *testing.T) {
	e := NewEnvelope()
	dek, _ := e.GenerateKey()
	other, _ := e.GenerateKey()

	ct, _ := e.EncryptRecord(dek, models.TagContent{Name: "work"})

	var out models.TagContent
	if err := e.DecryptRecord(other, ct, &out); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for wrong key, got %v", err)
	}
	if err := e.DecryptRecord(dek, "not-base64!!", &out); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for malformed base64, got %v", err)
	}
	if err := e.DecryptRecord(dek, models.CipherText(base64.StdEncoding.EncodeToString([]byte("tiny"))), &out); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for truncated blob, got %v", err)
	}
}

func TestGenerateKey_LengthAndRandomness(t *testing.T) {
	e := NewEnvelope()

	k1, err := e.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	k2, err := e.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}

	if len(k1) != 32 || len(k2) != 32 {
		t.Fatalf("key lengths = %d/%d, want 32", len(k1), len(k2))
	}
	if bytes.Equal(k1, k2) {
		t.Fatalf("expected random keys to differ")
	}
}

func TestEncryptRecord_RejectsShortKey(t *testing.T) {
	e := NewEnvelope()

	if _, err := e.EncryptRecord([]byte("short"), models.TagContent{Name: "x"}); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
}

package cryptox

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestDeriveUserKey_Deterministic(t *testing.T) {
	salt := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	key1, salt1 := DeriveUserKey("secret-password", salt)
	key2, salt2 := DeriveUserKey("secret-password", salt)

	if key1 != key2 {
		t.Errorf("expected same key for same inputs, got different")
	}
	if !bytes.Equal(salt1, salt) || !bytes.Equal(salt2, salt) {
		t.Errorf("expected supplied salt to be returned unchanged")
	}

	// known result for fixed inputs (snapshot test)
	expected := "S1AEZfHoKPc7eUDSkU2OCTbKtLBW9K3dhUuqpdUXRPs="
	if key1 != expected {
		t.Errorf("expected %s, got %s", expected, key1)
	}
}

func TestDeriveUserKey_GeneratesSalt(t *testing.T) {
	key1, salt1 := DeriveUserKey("pw", nil)
	key2, salt2 := DeriveUserKey("pw", nil)

	if len(salt1) != SaltSize || len(salt2) != SaltSize {
		t.Fatalf("expected %d-byte salts, got %d and %d", SaltSize, len(salt1), len(salt2))
	}
	if bytes.Equal(salt1, salt2) {
		t.Errorf("expected fresh salt per call, got identical salts")
	}
	if key1 == key2 {
		t.Errorf("expected different keys under different salts")
	}
}

func TestDeriveUserKey_DifferentPasswords(t *testing.T) {
	salt := []byte("0123456789abcdef")

	key1, _ := DeriveUserKey("password-one", salt)
	key2, _ := DeriveUserKey("password-two", salt)

	if key1 == key2 {
		t.Errorf("expected different keys for different passwords")
	}
}

func TestDeriveUserKey_KeyFormat(t *testing.T) {
	key, _ := DeriveUserKey("", nil) // empty password is allowed

	raw, err := base64.URLEncoding.DecodeString(key)
	if err != nil {
		t.Fatalf("key is not valid URL-safe base64: %v", err)
	}
	if len(raw) != KeySize {
		t.Errorf("expected %d raw key bytes, got %d", KeySize, len(raw))
	}
}

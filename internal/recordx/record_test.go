package recordx

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/vkazmin/budgetvault/internal/common"
	"github.com/vkazmin/budgetvault/internal/cryptox"
)

func newTestTransform(t *testing.T, opts ...Option) *Transform {
	t.Helper()
	tr, err := NewTransform(cryptox.GenerateMasterKey(), opts...)
	if err != nil {
		t.Fatalf("NewTransform error: %v", err)
	}
	return tr
}

func TestEncryptRecord_ReplacesSensitiveField(t *testing.T) {
	tr := newTestTransform(t)

	record := map[string]any{"description": "coffee", "amount": 5}

	got, err := tr.EncryptRecord(record, "pw")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	if _, ok := got["description"]; ok {
		t.Errorf("expected plaintext description to be removed")
	}
	if got["description_encrypted"] == "" || got["description_salt"] == "" {
		t.Errorf("expected encrypted pair to be present, got %v", got)
	}
	if got["amount"] != 5 {
		t.Errorf("expected amount to pass through unchanged, got %v", got["amount"])
	}

	// input record is not mutated
	if record["description"] != "coffee" {
		t.Errorf("expected input record to stay unchanged, got %v", record)
	}
	if _, ok := record["description_encrypted"]; ok {
		t.Errorf("expected input record to stay unchanged, got %v", record)
	}
}

func TestEncryptRecord_DecryptRecord_RoundTrip(t *testing.T) {
	tr := newTestTransform(t)

	enc, err := tr.EncryptRecord(map[string]any{"description": "coffee", "amount": 5}, "pw")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	dec, err := tr.DecryptRecord(enc, "pw")
	if err != nil {
		t.Fatalf("DecryptRecord error: %v", err)
	}

	if dec["description"] != "coffee" {
		t.Errorf("expected description restored, got %v", dec["description"])
	}
	if dec["amount"] != 5 {
		t.Errorf("expected amount unchanged, got %v", dec["amount"])
	}
	if _, ok := dec["description_encrypted"]; ok {
		t.Errorf("expected pair keys removed, got %v", dec)
	}
	if _, ok := dec["description_salt"]; ok {
		t.Errorf("expected pair keys removed, got %v", dec)
	}
}

func TestEncryptRecord_EmptyAndAbsentFields(t *testing.T) {
	tr := newTestTransform(t)

	got, err := tr.EncryptRecord(map[string]any{"description": "", "amount": 1}, "pw")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}
	if got["description"] != "" {
		t.Errorf("expected empty field to pass through, got %v", got)
	}
	if _, ok := got["description_encrypted"]; ok {
		t.Errorf("expected no pair for empty field, got %v", got)
	}

	got, err = tr.EncryptRecord(map[string]any{"amount": 1}, "pw")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}
	if _, ok := got["description_encrypted"]; ok {
		t.Errorf("expected no pair for absent field, got %v", got)
	}
}

func TestDecryptRecord_TamperedField_FailEmpty(t *testing.T) {
	tr := newTestTransform(t)

	enc, err := tr.EncryptRecord(map[string]any{"description": "coffee"}, "pw")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	token, err := base64.URLEncoding.DecodeString(enc["description_encrypted"].(string))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	token[len(token)-1] ^= 0x01
	enc["description_encrypted"] = base64.URLEncoding.EncodeToString(token)

	// the field-level API fails closed on the same input
	_, err = cryptox.DecryptField(enc["description_encrypted"].(string), enc["description_salt"].(string), "pw")
	if !errors.Is(err, common.ErrDecryptionFailed) {
		t.Fatalf("expected DecryptField to fail closed, got %v", err)
	}

	// the record-level API swallows the failure into an empty field
	dec, err := tr.DecryptRecord(enc, "pw")
	if err != nil {
		t.Fatalf("DecryptRecord error: %v", err)
	}
	if dec["description"] != "" {
		t.Errorf("expected empty description under PolicyFailEmpty, got %v", dec["description"])
	}
	if _, ok := dec["description_encrypted"]; ok {
		t.Errorf("expected pair keys removed even on failure, got %v", dec)
	}
}

func TestDecryptRecord_WrongPassword_FailClosed(t *testing.T) {
	tr := newTestTransform(t, WithPolicy(PolicyFailClosed))

	enc, err := tr.EncryptRecord(map[string]any{"description": "coffee"}, "pw1")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	_, err = tr.DecryptRecord(enc, "pw2")
	if !errors.Is(err, common.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptRecord_IncompletePairPassesThrough(t *testing.T) {
	tr := newTestTransform(t)

	record := map[string]any{"description_encrypted": "something", "amount": 2}
	dec, err := tr.DecryptRecord(record, "pw")
	if err != nil {
		t.Fatalf("DecryptRecord error: %v", err)
	}
	if dec["description_encrypted"] != "something" {
		t.Errorf("expected incomplete pair to pass through, got %v", dec)
	}
	if _, ok := dec["description"]; ok {
		t.Errorf("expected no plaintext field for incomplete pair, got %v", dec)
	}
}

func TestNewTransform_CustomFields(t *testing.T) {
	tr := newTestTransform(t, WithSensitiveFields("description", "note"))

	enc, err := tr.EncryptRecord(map[string]any{"description": "a", "note": "b", "amount": 3}, "pw")
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}
	for _, key := range []string{"description_encrypted", "description_salt", "note_encrypted", "note_salt"} {
		if _, ok := enc[key]; !ok {
			t.Errorf("expected %s in encrypted record, got %v", key, enc)
		}
	}

	dec, err := tr.DecryptRecord(enc, "pw")
	if err != nil {
		t.Fatalf("DecryptRecord error: %v", err)
	}
	if dec["description"] != "a" || dec["note"] != "b" {
		t.Errorf("expected both fields restored, got %v", dec)
	}
}

func TestNewTransform_InvalidConfiguration(t *testing.T) {
	if _, err := NewTransform("", WithSensitiveFields("")); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("empty field name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := NewTransform("", WithSensitiveFields("a", "a")); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("duplicate field: expected ErrInvalidInput, got %v", err)
	}
	if _, err := NewTransform("not-a-key"); !errors.Is(err, common.ErrInvalidKey) {
		t.Errorf("bad instance key: expected ErrInvalidKey, got %v", err)
	}
}

func TestEncryptValue_RoundTrip(t *testing.T) {
	tr := newTestTransform(t)

	encoded, err := tr.EncryptValue("process-wide secret")
	if err != nil {
		t.Fatalf("EncryptValue error: %v", err)
	}

	got, err := tr.DecryptValue(encoded)
	if err != nil {
		t.Fatalf("DecryptValue error: %v", err)
	}
	if got != "process-wide secret" {
		t.Errorf("expected round trip, got %q", got)
	}
}

func TestEncryptValue_NoInstanceKey(t *testing.T) {
	tr, err := NewTransform("")
	if err != nil {
		t.Fatalf("NewTransform error: %v", err)
	}

	if _, err := tr.EncryptValue("x"); !errors.Is(err, common.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := tr.DecryptValue("x"); !errors.Is(err, common.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

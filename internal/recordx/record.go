// Package recordx rewrites generic field-keyed records into their
// encrypted-at-rest form and back, replacing each sensitive plaintext
// field with a {field}_encrypted / {field}_salt pair, and provisions the
// process-wide default transform.
package recordx

import (
	"encoding/base64"
	"fmt"
	"maps"

	"github.com/vkazmin/budgetvault/internal/common"
	"github.com/vkazmin/budgetvault/internal/cryptox"
)

// Suffixes appended to a sensitive field name to form its stored pair.
const (
	EncryptedSuffix = "_encrypted"
	SaltSuffix      = "_salt"
)

// Policy controls how DecryptRecord reacts to a field that fails to decrypt.
type Policy int

const (
	// PolicyFailEmpty substitutes an empty string for a field that fails to
	// decrypt, so a single corrupted field does not abort rendering of the
	// whole record. This trades data-loss visibility for availability: a
	// wrong password or corrupted ciphertext surfaces as an empty field,
	// not as an error. Callers who need to distinguish the two must use
	// PolicyFailClosed or cryptox.DecryptField directly.
	PolicyFailEmpty Policy = iota

	// PolicyFailClosed propagates the decryption error instead.
	PolicyFailClosed
)

// Transform encrypts and decrypts the sensitive fields of a record. The
// field set is declared and validated at construction; the zero set
// defaults to {"description"}. An optional instance key serves call sites
// that have no per-user password context. Safe for concurrent use.
type Transform struct {
	instanceKey string
	fields      []string
	policy      Policy
}

// Option configures a Transform.
type Option func(*Transform)

// WithSensitiveFields replaces the default sensitive-field set.
func WithSensitiveFields(fields ...string) Option {
	return func(t *Transform) {
		t.fields = fields
	}
}

// WithPolicy sets the per-field decrypt failure policy.
func WithPolicy(p Policy) Option {
	return func(t *Transform) {
		t.policy = p
	}
}

// NewTransform builds a Transform bound to instanceKey. An empty
// instanceKey is allowed for purely per-user use; a non-empty key must be
// valid cipher key material. Field names must be non-empty and unique.
func NewTransform(instanceKey string, opts ...Option) (*Transform, error) {
	t := &Transform{
		instanceKey: instanceKey,
		fields:      []string{"description"},
		policy:      PolicyFailEmpty,
	}
	for _, opt := range opts {
		opt(t)
	}

	if instanceKey != "" {
		if err := cryptox.ValidateKey(instanceKey); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(t.fields))
	for _, field := range t.fields {
		if field == "" {
			return nil, fmt.Errorf("%w: empty sensitive field name", common.ErrInvalidInput)
		}
		if _, ok := seen[field]; ok {
			return nil, fmt.Errorf("%w: duplicate sensitive field %q", common.ErrInvalidInput, field)
		}
		seen[field] = struct{}{}
	}

	return t, nil
}

// SensitiveFields returns a copy of the declared sensitive-field set.
func (t *Transform) SensitiveFields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// Policy returns the configured decrypt failure policy.
func (t *Transform) Policy() Policy {
	return t.policy
}

// EncryptRecord returns a copy of record in which every declared sensitive
// field with a non-empty value is replaced by its encrypted pair. Fields
// that are absent, empty, or not declared sensitive pass through
// unchanged. The input record is not mutated.
func (t *Transform) EncryptRecord(record map[string]any, password string) (map[string]any, error) {
	out := make(map[string]any, len(record)+2*len(t.fields))
	maps.Copy(out, record)

	for _, field := range t.fields {
		v, ok := out[field]
		if !ok {
			continue
		}
		value := valueString(v)
		if value == "" {
			continue
		}

		ef, err := cryptox.EncryptField(value, password, nil)
		if err != nil {
			return nil, err
		}

		out[field+EncryptedSuffix] = ef.EncryptedData
		out[field+SaltSuffix] = ef.Salt
		delete(out, field)
	}

	return out, nil
}

// DecryptRecord reverses EncryptRecord on a copy of record. For each
// declared field whose encrypted pair is present, the pair keys are
// removed and the plaintext field is restored. A field that fails to
// decrypt is handled per the configured Policy. The input record is not
// mutated.
func (t *Transform) DecryptRecord(record map[string]any, password string) (map[string]any, error) {
	out := make(map[string]any, len(record))
	maps.Copy(out, record)

	for _, field := range t.fields {
		encKey := field + EncryptedSuffix
		saltKey := field + SaltSuffix

		encVal, okEnc := out[encKey]
		saltVal, okSalt := out[saltKey]
		if !okEnc || !okSalt {
			continue
		}
		delete(out, encKey)
		delete(out, saltKey)

		plaintext, err := decryptPair(encVal, saltVal, password)
		if err != nil {
			if t.policy == PolicyFailClosed {
				return nil, err
			}
			out[field] = ""
			continue
		}
		out[field] = plaintext
	}

	return out, nil
}

// EncryptValue encrypts a single value under the transform's instance key,
// for call sites without a per-user password context. No salt is involved:
// the instance key is used directly, so the result is a bare encoded token.
func (t *Transform) EncryptValue(value string) (string, error) {
	if t.instanceKey == "" {
		return "", fmt.Errorf("%w: transform has no instance key", common.ErrInvalidKey)
	}
	if value == "" {
		return "", nil
	}

	token, err := cryptox.EncryptToken([]byte(value), t.instanceKey)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(token), nil
}

// DecryptValue reverses EncryptValue. Always fails closed.
func (t *Transform) DecryptValue(encoded string) (string, error) {
	if t.instanceKey == "" {
		return "", fmt.Errorf("%w: transform has no instance key", common.ErrInvalidKey)
	}
	if encoded == "" {
		return "", nil
	}

	token, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: malformed encrypted value", common.ErrInvalidInput)
	}

	plaintext, err := cryptox.DecryptToken(token, t.instanceKey)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func decryptPair(encVal, saltVal any, password string) (string, error) {
	enc, okEnc := encVal.(string)
	salt, okSalt := saltVal.(string)
	if !okEnc || !okSalt {
		return "", fmt.Errorf("%w: encrypted field pair is not a string pair", common.ErrInvalidInput)
	}
	return cryptox.DecryptField(enc, salt, password)
}

// valueString renders a sensitive value for encryption. Non-string values
// are formatted the way fmt prints them.
func valueString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

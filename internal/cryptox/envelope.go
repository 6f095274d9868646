package cryptox

import (
	"encoding/base64"
	"fmt"

	"github.com/vkazmin/budgetvault/internal/common"
)

// EncryptedField is the encrypted-at-rest form of a single text value:
// a URL-safe base64 token plus the URL-safe base64 salt its key was
// derived with. Both strings are suitable for a text column.
type EncryptedField struct {
	EncryptedData string
	Salt          string
}

// EncryptField encrypts a single text value under the user's password.
// Empty values are never encrypted: the result is an empty pair, which
// DecryptField maps back to "". If salt is nil a fresh one is generated,
// so two encryptions of the same value produce different outputs.
func EncryptField(value string, password string, salt []byte) (EncryptedField, error) {
	if value == "" {
		return EncryptedField{}, nil
	}

	key, usedSalt := DeriveUserKey(password, salt)

	token, err := EncryptToken([]byte(value), key)
	if err != nil {
		return EncryptedField{}, err
	}

	return EncryptedField{
		EncryptedData: base64.URLEncoding.EncodeToString(token),
		Salt:          base64.URLEncoding.EncodeToString(usedSalt),
	}, nil
}

// DecryptField reverses EncryptField. Empty inputs short-circuit to "".
// Malformed base64 yields common.ErrInvalidInput; a wrong password or a
// tampered token yields common.ErrDecryptionFailed.
func DecryptField(encryptedData string, salt string, password string) (string, error) {
	if encryptedData == "" || salt == "" {
		return "", nil
	}

	saltBytes, err := base64.URLEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("%w: malformed salt", common.ErrInvalidInput)
	}

	token, err := base64.URLEncoding.DecodeString(encryptedData)
	if err != nil {
		return "", fmt.Errorf("%w: malformed encrypted data", common.ErrInvalidInput)
	}

	key, _ := DeriveUserKey(password, saltBytes)

	plaintext, err := DecryptToken(token, key)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

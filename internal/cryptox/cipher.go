package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/vkazmin/budgetvault/internal/common"
)

const (
	tokenVersion = 0x01
	nonceSize    = 12
)

// decodeKey decodes an encoded cipher key and checks its length.
func decodeKey(key string) ([]byte, error) {
	raw, err := base64.URLEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not valid base64", common.ErrInvalidKey)
	}
	if len(raw) != KeySize {
		common.WipeByteArray(raw)
		return nil, fmt.Errorf("%w: expected %d key bytes, got %d", common.ErrInvalidKey, KeySize, len(raw))
	}
	return raw, nil
}

func newAEAD(key string) (cipher.AEAD, error) {
	raw, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(raw)

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptToken encrypts plaintext under the encoded cipher key and returns
// a self-contained token: version || nonce || ciphertext+tag. A fresh
// random nonce is generated per call, so repeated encryptions of the same
// plaintext under the same key never produce the same token.
func EncryptToken(plaintext []byte, key string) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(nonceSize)

	token := make([]byte, 0, 1+nonceSize+len(plaintext)+aead.Overhead())
	token = append(token, tokenVersion)
	token = append(token, nonce...)
	token = aead.Seal(token, nonce, plaintext, nil)

	return token, nil
}

// DecryptToken verifies and decrypts a token produced by EncryptToken.
// An unrecognized version marker, a truncated token, or a failed
// authentication tag (wrong key, tampered or corrupted data) yields
// common.ErrDecryptionFailed; no plaintext is ever released in that case.
// The tag check is GCM's constant-time comparison.
func DecryptToken(token []byte, key string) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	if len(token) < 1+nonceSize+aead.Overhead() {
		return nil, fmt.Errorf("%w: token too short", common.ErrDecryptionFailed)
	}
	if token[0] != tokenVersion {
		return nil, fmt.Errorf("%w: unknown token version 0x%02x", common.ErrDecryptionFailed, token[0])
	}

	nonce := token[1 : 1+nonceSize]
	plaintext, err := aead.Open(nil, nonce, token[1+nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

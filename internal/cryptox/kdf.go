package cryptox

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	"github.com/vkazmin/budgetvault/internal/common"
)

const (
	// kdfIterations is the PBKDF2 cost for key derivation, a deliberate
	// latency/security trade-off. Callers on a request-serving path must
	// account for this cost.
	kdfIterations = 100_000

	// KeySize is the raw length of a cipher key in bytes (AES-256).
	KeySize = 32

	// SaltSize is the length of a key-derivation salt in bytes.
	SaltSize = 16
)

// DeriveUserKey derives the per-user cipher key from a password and salt
// using PBKDF2-SHA256. If salt is nil a fresh random salt is generated and
// returned alongside the key. The key is returned URL-safe base64 encoded,
// the form the token cipher consumes.
//
// Deterministic given (password, salt). An empty password is permitted and
// derives a valid key, but carries no meaningful protection.
//
// The key must not outlive the encrypt/decrypt call it was derived for.
func DeriveUserKey(password string, salt []byte) (key string, usedSalt []byte) {
	if salt == nil {
		salt = common.GenerateRandByteArray(SaltSize)
	}

	raw := pbkdf2.Key([]byte(password), salt, kdfIterations, KeySize, sha256.New)
	defer common.WipeByteArray(raw)

	return base64.URLEncoding.EncodeToString(raw), salt
}

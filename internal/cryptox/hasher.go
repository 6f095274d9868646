package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"github.com/vkazmin/budgetvault/internal/common"
)

const (
	// hashIterations is the PBKDF2 cost for credential hashing. Raising it
	// slows both legitimate logins and offline guessing; 100k keeps login
	// latency in the tens of milliseconds on current hardware.
	hashIterations = 100_000

	hashSaltSize = 16
)

// PasswordHash carries a hex-encoded PBKDF2-HMAC-SHA256 digest together
// with the hex salt it was computed with. Both are stored alongside the
// credential; the salt is unique per credential and never reused.
type PasswordHash struct {
	Hash string
	Salt string
}

// HashPassword hashes the password with PBKDF2-HMAC-SHA256. If salt is
// empty a fresh random hex salt is generated. The salt string's bytes are
// fed to PBKDF2 as-is, so the stored hex string is the canonical salt form.
// Deterministic for a fixed (password, salt) pair.
func HashPassword(password string, salt string) (PasswordHash, error) {
	if salt == "" {
		s, err := common.MakeRandHexString(hashSaltSize)
		if err != nil {
			return PasswordHash{}, err
		}
		salt = s
	}

	digest := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, sha256.Size, sha256.New)

	return PasswordHash{
		Hash: hex.EncodeToString(digest),
		Salt: salt,
	}, nil
}

// VerifyPassword recomputes the hash for password with the stored salt and
// compares it to the stored hash in constant time. It returns false for a
// wrong password or a malformed stored hash; it never returns an error.
func VerifyPassword(password string, hash string, salt string) bool {
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}

	digest := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, sha256.Size, sha256.New)
	defer common.WipeByteArray(digest)

	return subtle.ConstantTimeCompare(digest, expected) == 1
}

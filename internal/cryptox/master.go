package cryptox

import (
	"encoding/base64"

	"github.com/vkazmin/budgetvault/internal/common"
)

// GenerateMasterKey returns a fresh random cipher key in encoded form.
// The format is identical to the keys the KDF derives, so a master key
// feeds the token cipher directly.
func GenerateMasterKey() string {
	raw := common.GenerateRandByteArray(KeySize)
	defer common.WipeByteArray(raw)
	return base64.URLEncoding.EncodeToString(raw)
}

// ValidateKey reports whether key decodes to usable cipher key material.
// Returns common.ErrInvalidKey otherwise.
func ValidateKey(key string) error {
	raw, err := decodeKey(key)
	if err != nil {
		return err
	}
	common.WipeByteArray(raw)
	return nil
}

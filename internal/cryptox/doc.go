// Package cryptox implements the cryptographic core of BudgetVault:
// one-way password hashing for credentials, PBKDF2 derivation of a
// per-user cipher key, and authenticated encryption of single field
// values.
//
// Keys travel in encoded form. A cipher key is the URL-safe base64
// encoding of 32 random or derived bytes; both the key derivation
// function and key provisioning emit this format, and the token cipher
// consumes it. An encrypted value is a self-contained token:
//
//	version(1) || nonce(12) || AES-256-GCM ciphertext+tag
//
// Decryption verifies the version marker and the authentication tag
// before releasing any plaintext and fails with
// common.ErrDecryptionFailed otherwise. Tokens produced under a wrong
// key, truncated, or modified in any byte never decrypt.
//
// All functions are pure apart from randomness consumption and are safe
// for concurrent use.
package cryptox

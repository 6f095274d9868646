// Package common defines shared constants and sentinel errors used across
// BudgetVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Crypto errors. ErrDecryptionFailed covers authentication-tag
	// mismatches, unrecognized token versions, and truncated tokens:
	// anything that means the plaintext must not be released.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidKey       = errors.New("invalid key")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorLoginAlreadyExists = errors.New("login already exists")
)

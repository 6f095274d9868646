package models

import "time"

// User is a registered account. PasswordHash and PasswordSalt are the
// hex-encoded credential produced by cryptox.HashPassword; the plaintext
// password is never stored.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	PasswordSalt string
	CreatedAt    time.Time
}

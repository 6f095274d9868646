// Package services contains server-side business logic around the
// encryption core: credential handling and transaction CRUD. Services
// are the boundary the (external) web layer calls with plain values;
// everything beyond this point is opaque hashes and ciphertext.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vkazmin/budgetvault/internal/common"
	"github.com/vkazmin/budgetvault/internal/cryptox"
	"github.com/vkazmin/budgetvault/internal/server/models"
	"github.com/vkazmin/budgetvault/internal/server/repositories/repomanager"
)

// UserService handles registration and credential verification.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService backed by the given repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register creates a new user with a salted credential hash. The plaintext
// password is hashed before anything touches storage. A taken username
// yields common.ErrorLoginAlreadyExists.
func (s *UserService) Register(ctx context.Context, username string, password string) (*models.User, error) {
	hashed, err := cryptox.HashPassword(password, "")
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     username,
		PasswordHash: hashed.Hash,
		PasswordSalt: hashed.Salt,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorLoginAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password against the stored credential and returns
// the user on success. An unknown username and a wrong password both
// yield common.ErrorUnauthorized; a hash is computed in either case so
// the two are not distinguishable by timing. Session or token issuance
// is the caller's concern.
func (s *UserService) Login(ctx context.Context, username string, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, "", "")
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vkazmin/budgetvault/internal/recordx"
	"github.com/vkazmin/budgetvault/internal/server/models"
	"github.com/vkazmin/budgetvault/internal/server/repositories/repomanager"
)

// TransactionService persists and retrieves transactions, running the
// record transform around every repository call so the description is
// encrypted under the user's password before it reaches a row and
// restored after it is read back.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	transform   *recordx.Transform
}

// NewTransactionService constructs a TransactionService using the given
// transform.
func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager, transform *recordx.Transform) *TransactionService {
	return &TransactionService{db: db, repomanager: m, transform: transform}
}

// Add encrypts the sensitive fields of tx under password and inserts the
// result. The stored row carries no plaintext description.
func (s *TransactionService) Add(ctx context.Context, tx *models.Transaction, password string) (*models.Transaction, error) {
	record, err := s.transform.EncryptRecord(tx.Record(), password)
	if err != nil {
		return nil, fmt.Errorf("error encrypting transaction: %w", err)
	}

	stored := *tx
	stored.ApplyRecord(record)

	repo := s.repomanager.Transactions(s.db)
	out, err := repo.Create(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}
	return out, nil
}

// List returns the user's transactions with descriptions decrypted under
// password. With the default fail-empty policy a row whose ciphertext
// cannot be decrypted (corruption, password change) comes back with an
// empty description instead of failing the whole listing.
func (s *TransactionService) List(ctx context.Context, userID string, password string) ([]*models.Transaction, error) {
	repo := s.repomanager.Transactions(s.db)

	items, err := repo.SelectByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error selecting transactions: %w", err)
	}

	for _, item := range items {
		record, err := s.transform.DecryptRecord(item.Record(), password)
		if err != nil {
			return nil, fmt.Errorf("error decrypting transaction %s: %w", item.ID, err)
		}
		item.ApplyRecord(record)
	}

	return items, nil
}

// Delete removes a transaction owned by userID.
func (s *TransactionService) Delete(ctx context.Context, userID string, id string) error {
	repo := s.repomanager.Transactions(s.db)
	return repo.Delete(ctx, userID, id)
}

package transactions

import (
	"context"

	"github.com/vkazmin/budgetvault/internal/server/models"
)

// Repository persists transactions in their encrypted-at-rest form. The
// plaintext Description field of models.Transaction is ignored by every
// method; only the encrypted pair is read and written.
type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	SelectByUser(ctx context.Context, userID string) ([]*models.Transaction, error)
	Delete(ctx context.Context, userID string, id string) error
}

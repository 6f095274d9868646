// Package transactions provides the PostgreSQL-backed repository for
// budget transactions. Rows carry the description only as the
// description_encrypted/description_salt pair.
package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vkazmin/budgetvault/internal/common"
	"github.com/vkazmin/budgetvault/internal/dbx"
	"github.com/vkazmin/budgetvault/internal/server/models"
)

// PostgresRepository implements transaction storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a transaction row.
func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	query := `
		INSERT INTO transactions (id, user_id, date, amount, category, type, description_encrypted, description_salt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.UserID, tx.Date, tx.Amount, tx.Category, tx.Type,
		tx.DescriptionEncrypted, tx.DescriptionSalt).Scan(&tx.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tx, nil
}

// SelectByUser returns all transactions for userID, newest first, in
// encrypted-at-rest form.
func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, date, amount, category, type, description_encrypted, description_salt, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Date, &item.Amount, &item.Category, &item.Type,
			&item.DescriptionEncrypted, &item.DescriptionSalt, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a transaction owned by userID. Deleting a row that does
// not exist, or that belongs to another user, yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, id string) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

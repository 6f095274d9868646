package users

import (
	"context"

	"github.com/vkazmin/budgetvault/internal/server/models"
)

// Repository persists user credentials.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
}

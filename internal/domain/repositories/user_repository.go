package repositories

import (
	"context"

	"github.com/veritasai/veritas-backend/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByEmail finds a user by exact email, or returns nil
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// ListMonitored lists users with monitoring enabled
	ListMonitored(ctx context.Context) ([]*entities.User, error)

	// List lists users; a non-positive limit returns all of them
	List(ctx context.Context, limit int) ([]*entities.User, error)
}

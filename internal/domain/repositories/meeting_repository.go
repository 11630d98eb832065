package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access.
// Finders return (nil, nil) when no row matches.
type MeetingRepository interface {
	// Create inserts a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindLatestByOrganizer retrieves the most recently created meeting
	// organized by the given email
	FindLatestByOrganizer(ctx context.Context, email string) (*entities.Meeting, error)

	// List retrieves the newest meetings first
	List(ctx context.Context, limit int) ([]*entities.Meeting, error)
}

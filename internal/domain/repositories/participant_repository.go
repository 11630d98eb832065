package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create creates a new participant record
	Create(ctx context.Context, participant *entities.Participant) error

	// FindByMeetingID retrieves all participants of a meeting in insertion order
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error)

	// List retrieves the newest participant rows first
	List(ctx context.Context, limit int) ([]*entities.Participant, error)
}

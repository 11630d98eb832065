package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entities.Transcript) error

	// FindByMeetingID returns the first transcript of a meeting, or nil
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)

	List(ctx context.Context, limit int) ([]*entities.Transcript, error)
}

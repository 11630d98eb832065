package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
)

// EmailRepository defines the interface for email notification data access
type EmailRepository interface {
	// Create inserts a pending email
	Create(ctx context.Context, email *entities.EmailNotification) error

	// ListPending returns pending emails, oldest first
	ListPending(ctx context.Context) ([]*entities.EmailNotification, error)

	// ListByMeetingID returns every email of a meeting, newest first
	ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.EmailNotification, error)

	// MarkSent moves a pending email to sent. It returns
	// entities.ErrEmailNotPending if the email already left pending.
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error

	// MarkFailed moves a pending email to failed with a reason. It returns
	// entities.ErrEmailNotPending if the email already left pending.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

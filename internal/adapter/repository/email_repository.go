package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/domain/repositories"
)

// emailRepository implements the EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new email notification repository
func NewEmailRepository(db *gorm.DB) repositories.EmailRepository {
	return &emailRepository{db: db}
}

// Create inserts a pending email
func (r *emailRepository) Create(ctx context.Context, email *entities.EmailNotification) error {
	if email == nil {
		return errors.New("email cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(email).Error; err != nil {
		return fmt.Errorf("failed to create email notification: %w", err)
	}
	return nil
}

// ListPending returns pending emails, oldest first
func (r *emailRepository) ListPending(ctx context.Context) ([]*entities.EmailNotification, error) {
	var emails []*entities.EmailNotification
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.EmailStatusPending).
		Order("created_at ASC").
		Find(&emails).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending emails: %w", err)
	}
	return emails, nil
}

// ListByMeetingID returns every email of a meeting, newest first
func (r *emailRepository) ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.EmailNotification, error) {
	var emails []*entities.EmailNotification
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&emails).Error; err != nil {
		return nil, fmt.Errorf("failed to list meeting emails: %w", err)
	}
	return emails, nil
}

// MarkSent moves a pending email to sent
func (r *emailRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.transition(ctx, id, map[string]interface{}{
		"status":  entities.EmailStatusSent,
		"sent_at": at,
	})
}

// MarkFailed moves a pending email to failed
func (r *emailRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.transition(ctx, id, map[string]interface{}{
		"status":        entities.EmailStatusFailed,
		"error_message": reason,
	})
}

// transition updates the row only while it is still pending.
func (r *emailRepository) transition(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&entities.EmailNotification{}).
		Where("id = ? AND status = ?", id, entities.EmailStatusPending).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update email status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrEmailNotPending
	}
	return nil
}

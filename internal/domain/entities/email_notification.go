package entities

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the delivery state of an email
type EmailStatus string

const (
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
)

// EmailNotification is a generated summary email awaiting or past delivery.
// It starts pending and moves exactly once to sent or failed.
type EmailNotification struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID      uuid.UUID   `json:"meeting_id" gorm:"type:uuid;not null;index"`
	RecipientEmail string      `json:"user_email" gorm:"column:user_email;type:varchar(255);not null"`
	FromEmail      string      `json:"from_email" gorm:"type:varchar(255)"`
	Subject        string      `json:"subject" gorm:"type:text"`
	HTMLContent    string      `json:"html_content" gorm:"type:text"`
	Status         EmailStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ErrorMessage   *string     `json:"error_message,omitempty" gorm:"type:text"`
	SentAt         *time.Time  `json:"sent_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (EmailNotification) TableName() string {
	return "email_notifications"
}

// NewPendingEmail creates an email ready to be dispatched
func NewPendingEmail(meetingID uuid.UUID, to, from, subject, html string) *EmailNotification {
	return &EmailNotification{
		ID:             uuid.New(),
		MeetingID:      meetingID,
		RecipientEmail: to,
		FromEmail:      from,
		Subject:        subject,
		HTMLContent:    html,
		Status:         EmailStatusPending,
	}
}

// IsPending reports whether the email still awaits dispatch
func (e *EmailNotification) IsPending() bool {
	return e.Status == EmailStatusPending
}

// MarkSent records a successful relay
func (e *EmailNotification) MarkSent(at time.Time) error {
	if !e.IsPending() {
		return ErrEmailNotPending
	}
	e.Status = EmailStatusSent
	e.SentAt = &at
	e.ErrorMessage = nil
	return nil
}

// MarkFailed records a rejected or failed relay
func (e *EmailNotification) MarkFailed(reason string) error {
	if !e.IsPending() {
		return ErrEmailNotPending
	}
	e.Status = EmailStatusFailed
	e.ErrorMessage = &reason
	return nil
}

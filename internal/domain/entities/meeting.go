package entities

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
)

// Meeting is a recorded meeting owned by an organizer
type Meeting struct {
	ID              uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	NativeMeetingID string            `json:"native_meeting_id" gorm:"type:varchar(255);index"`
	Title           string            `json:"meeting_title" gorm:"column:meeting_title;type:varchar(255)"`
	OrganizerEmail  string            `json:"user_email" gorm:"column:user_email;type:varchar(255);index"`
	Status          MeetingStatus     `json:"status" gorm:"type:varchar(20);default:'scheduled'"`
	IsInstant       bool              `json:"is_instant"`
	ScheduledAt     *time.Time        `json:"scheduled_at,omitempty"`
	StartedAt       *time.Time        `json:"started_at,omitempty"`
	EndedAt         *time.Time        `json:"ended_at,omitempty"`
	DurationMinutes *int              `json:"duration_minutes,omitempty"`
	Metadata        datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt       time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewInstantMeeting creates a meeting that was scheduled, started and
// finished at the same instant. Used for synthetic test reports.
func NewInstantMeeting(title, organizerEmail string, at time.Time) *Meeting {
	m := &Meeting{
		ID:              uuid.New(),
		NativeMeetingID: "test-meeting-" + strconv.FormatInt(at.Unix(), 10),
		Title:           title,
		OrganizerEmail:  organizerEmail,
		Status:          MeetingStatusScheduled,
		IsInstant:       true,
		ScheduledAt:     &at,
		Metadata:        datatypes.JSONMap{"source": "mock"},
	}
	m.Start(at)
	m.Complete(at)
	return m
}

// Start marks the meeting as in progress
func (m *Meeting) Start(at time.Time) {
	m.Status = MeetingStatusInProgress
	m.StartedAt = &at
}

// Complete marks the meeting as completed. The duration is derived from
// the start time unless it is already known or rounds to zero.
func (m *Meeting) Complete(at time.Time) {
	m.Status = MeetingStatusCompleted
	m.EndedAt = &at
	if m.StartedAt == nil || m.DurationMinutes != nil {
		return
	}
	if minutes := int(at.Sub(*m.StartedAt).Minutes()); minutes > 0 {
		m.DurationMinutes = &minutes
	}
}

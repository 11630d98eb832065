package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Participant is an attendee row of a meeting. It is linked to a User only
// by email address.
type Participant struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID           uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Name                string    `json:"participant_name" gorm:"column:participant_name;type:varchar(255)"`
	Email               string    `json:"participant_email,omitempty" gorm:"column:participant_email;type:varchar(255);index"`
	SpeakingTimeMinutes *int      `json:"speaking_time_minutes,omitempty"`
	WordsSpoken         *int      `json:"words_spoken,omitempty"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Participant) TableName() string {
	return "meeting_participants"
}

// NewParticipant creates a participant row with speaking statistics
func NewParticipant(meetingID uuid.UUID, name, email string, speakingMinutes, wordsSpoken int) *Participant {
	return &Participant{
		ID:                  uuid.New(),
		MeetingID:           meetingID,
		Name:                name,
		Email:               strings.TrimSpace(email),
		SpeakingTimeMinutes: &speakingMinutes,
		WordsSpoken:         &wordsSpoken,
	}
}

// HasEmail reports whether the participant can receive email
func (p *Participant) HasEmail() bool {
	return strings.TrimSpace(p.Email) != ""
}

// ParticipantWithUser pairs a participant with the user that shares its
// email address, if any.
type ParticipantWithUser struct {
	*Participant
	User *User `json:"user,omitempty"`
}

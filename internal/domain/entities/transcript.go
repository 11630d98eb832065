package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transcript is the stored text of a meeting
type Transcript struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Text            string    `json:"transcript_text" gorm:"column:transcript_text;type:text"`
	WordCount       int       `json:"word_count"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript trims the text and counts its whitespace separated words
func NewTranscript(meetingID uuid.UUID, text string, durationMinutes int) *Transcript {
	return &Transcript{
		ID:              uuid.New(),
		MeetingID:       meetingID,
		Text:            strings.TrimSpace(text),
		WordCount:       CountWords(text),
		DurationMinutes: &durationMinutes,
	}
}

// CountWords counts whitespace separated words
func CountWords(text string) int {
	return len(strings.Fields(text))
}

package report

import "time"

// StatusResponse is returned by GET /
type StatusResponse struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// UserResponse is a user row in the test data listing
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FullName          string    `json:"full_name"`
	MonitoringEnabled bool      `json:"monitoring_enabled"`
	CreatedAt         time.Time `json:"created_at"`
}

// MeetingResponse is a meeting row in the test data listing
type MeetingResponse struct {
	ID              string     `json:"id"`
	NativeMeetingID string     `json:"native_meeting_id,omitempty"`
	MeetingTitle    string     `json:"meeting_title"`
	UserEmail       string     `json:"user_email"`
	Status          string     `json:"status"`
	IsInstant       bool       `json:"is_instant"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TranscriptResponse is a transcript row in the test data listing
type TranscriptResponse struct {
	ID              string    `json:"id"`
	MeetingID       string    `json:"meeting_id"`
	TranscriptText  string    `json:"transcript_text"`
	WordCount       int       `json:"word_count"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ParticipantResponse is a participant row in the test data listing
type ParticipantResponse struct {
	ID                  string `json:"id"`
	MeetingID           string `json:"meeting_id"`
	ParticipantName     string `json:"participant_name"`
	ParticipantEmail    string `json:"participant_email,omitempty"`
	SpeakingTimeMinutes *int   `json:"speaking_time_minutes,omitempty"`
	WordsSpoken         *int   `json:"words_spoken,omitempty"`
}

// TestDataResponse lists recent rows of every table
type TestDataResponse struct {
	Users        []UserResponse        `json:"users"`
	Meetings     []MeetingResponse     `json:"meetings"`
	Transcripts  []TranscriptResponse  `json:"transcripts"`
	Participants []ParticipantResponse `json:"participants"`
}

package report

import (
	"github.com/google/uuid"

	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/usecase/delivery"
)

// Per-recipient outcome statuses
const (
	StatusQueued = "queued_for_sending"
	StatusSaved  = "saved"
	StatusFailed = "failed"
)

// ParticipantInput is one attendee of a synthetic meeting
type ParticipantInput struct {
	Name  string
	Email string
}

// MockReportInput overrides the built-in sample data. Empty fields fall back
// to the defaults.
type MockReportInput struct {
	MeetingTitle   string
	UserEmail      string
	TranscriptText string
	Participants   []ParticipantInput
}

// CraftEmailInput selects a meeting by id, or by the latest meeting of a user
type CraftEmailInput struct {
	MeetingID uuid.UUID
	UserEmail string
}

// LiveReportInput requests a report for a user's meeting
type LiveReportInput struct {
	UserEmail string
	MeetingID uuid.UUID
}

// GeneratedEmail is the outcome for one mock report recipient
type GeneratedEmail struct {
	UserEmail    string `json:"user_email"`
	UserName     string `json:"user_name"`
	Status       string `json:"status"`
	EmailID      string `json:"email_id,omitempty"`
	Subject      string `json:"subject,omitempty"`
	ArchiveKey   string `json:"archive_key,omitempty"`
	Error        string `json:"error,omitempty"`
	IsTargetUser bool   `json:"is_target_user"`
}

// MockReportResult summarizes a mock report run
type MockReportResult struct {
	Message             string            `json:"message"`
	MeetingID           string            `json:"meeting_id"`
	MeetingTitle        string            `json:"meeting_title"`
	TranscriptLength    int               `json:"transcript_length"`
	ParticipantsCreated int               `json:"participants_created"`
	TotalUsersEmailed   int               `json:"total_users_emailed"`
	EmailsGenerated     int               `json:"emails_generated"`
	TargetUserEmailed   string            `json:"target_user_emailed"`
	GeneratedEmails     []GeneratedEmail  `json:"generated_emails"`
	EmailSendingResult  delivery.Result   `json:"email_sending_result"`
	MeetingData         *entities.Meeting `json:"meeting_data"`
}

// CraftedEmail is the outcome for one participant
type CraftedEmail struct {
	ParticipantEmail string `json:"participant_email"`
	ParticipantName  string `json:"participant_name"`
	Status           string `json:"status"`
	EmailID          string `json:"email_id,omitempty"`
	Subject          string `json:"subject,omitempty"`
	ArchiveKey       string `json:"archive_key,omitempty"`
	Error            string `json:"error,omitempty"`
}

// CraftEmailResult summarizes a craft-email run. Only Message is set when
// there was nothing to do.
type CraftEmailResult struct {
	Message           string         `json:"message"`
	MeetingID         string         `json:"meeting_id,omitempty"`
	TranscriptLength  int            `json:"transcript_length,omitempty"`
	ParticipantsCount int            `json:"participants_count,omitempty"`
	GeneratedEmails   []CraftedEmail `json:"generated_emails,omitempty"`
}

// SentReport is the outcome for one live report recipient
type SentReport struct {
	UserEmail  string `json:"user_email"`
	UserName   string `json:"user_name"`
	Status     string `json:"status"`
	EmailID    string `json:"email_id,omitempty"`
	Subject    string `json:"subject,omitempty"`
	ArchiveKey string `json:"archive_key,omitempty"`
	Error      string `json:"error,omitempty"`
}

// LiveDataSummary describes where each piece of report input came from
type LiveDataSummary struct {
	MeetingData      string `json:"meeting_data"`
	TranscriptData   string `json:"transcript_data"`
	ParticipantsData string `json:"participants_data"`
	UsersData        string `json:"users_data"`
	EmailGeneration  string `json:"email_generation"`
}

// LiveReportResult summarizes a live report run
type LiveReportResult struct {
	Message             string          `json:"message"`
	RequestedUser       string          `json:"requested_user"`
	MeetingID           string          `json:"meeting_id"`
	MeetingTitle        string          `json:"meeting_title"`
	MeetingOrganizer    string          `json:"meeting_organizer"`
	MeetingStatus       string          `json:"meeting_status"`
	TranscriptLength    int             `json:"transcript_length"`
	ParticipantsFound   int             `json:"participants_found"`
	ExistingEmailsFound int             `json:"existing_emails_found"`
	TotalUsersEmailed   int             `json:"total_users_emailed"`
	SuccessfulEmails    int             `json:"successful_emails"`
	FailedEmails        int             `json:"failed_emails"`
	SentReports         []SentReport    `json:"sent_reports"`
	EmailSendingResult  delivery.Result `json:"email_sending_result"`
	LiveDataSummary     LiveDataSummary `json:"live_data_summary"`
}

// TestData is a snapshot of recent rows for manual inspection
type TestData struct {
	Users        []*entities.User        `json:"users"`
	Meetings     []*entities.Meeting     `json:"meetings"`
	Transcripts  []*entities.Transcript  `json:"transcripts"`
	Participants []*entities.Participant `json:"participants"`
}

// recipient is one addressee of a report
type recipient struct {
	Email    string
	Name     string
	IsTarget bool
}

package report

// ParticipantRequest is one attendee of a mock meeting
type ParticipantRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
}

// MockReportRequest represents the optional overrides of a mock report
type MockReportRequest struct {
	MeetingTitle   string               `json:"meeting_title,omitempty" validate:"omitempty,max=255"`
	UserEmail      string               `json:"user_email,omitempty" validate:"omitempty,email"`
	TranscriptText string               `json:"transcript_text,omitempty"`
	Participants   []ParticipantRequest `json:"participants,omitempty" validate:"omitempty,dive"`
}

// CraftEmailRequest selects a meeting by id or by the user's latest meeting
type CraftEmailRequest struct {
	MeetingID string `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
	UserEmail string `json:"user_email,omitempty" validate:"required_without=MeetingID,omitempty,email"`
}

// LiveReportRequest represents the request for a live report
type LiveReportRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	MeetingID string `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
}

// Package compose builds the subject and HTML body of personalized meeting
// summary emails, either with a language model or from a fixed template.
package compose

import (
	"fmt"
	"time"
)

// MeetingContext is the optional meeting metadata shown in an email
type MeetingContext struct {
	ID              string
	Title           string
	OrganizerEmail  string
	Status          string
	DurationMinutes *int
	CreatedAt       *time.Time
}

// ParticipantInfo is one attendee listed in an email
type ParticipantInfo struct {
	Name  string
	Email string
}

// Request carries everything needed to compose one recipient's email
type Request struct {
	RecipientName string
	Transcript    string
	MeetingTitle  string
	Meeting       *MeetingContext
	Participants  []ParticipantInfo
}

// Content is a composed email
type Content struct {
	Subject  string
	HTMLBody string
}

// Subject returns the summary subject line shared by every composer
func Subject(meetingTitle, recipientName string) string {
	return fmt.Sprintf("📋 %s - Comprehensive Summary & Action Items for %s", meetingTitle, recipientName)
}

// Signature identifies who signs the summary emails
type Signature struct {
	Name  string
	Role  string
	Email string
}

// DefaultSignature is used when no signature is configured
var DefaultSignature = Signature{
	Name:  "Ricardo Barroca",
	Role:  "Veritas AI Assistant",
	Email: "ricardo.barroca@dengun.com",
}

package compose

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/summary.html
var templateFS embed.FS

var summaryTemplate = template.Must(template.ParseFS(templateFS, "templates/summary.html"))

const (
	defaultDurationMinutes  = 15
	defaultParticipantCount = 4
	notAvailable            = "N/A"
)

type actionItem struct {
	Task string
	Due  string
}

var fixedActionItems = []actionItem{
	{Task: "Review and collaborate on API integration", Due: "End of this week"},
	{Task: "Coordinate with team members on project deliverables", Due: "Next Tuesday"},
	{Task: "Prepare status update for next meeting", Due: "Next Monday"},
}

var fixedNextSteps = []string{
	"Follow up on assigned action items by the specified deadlines",
	"Coordinate with relevant team members for collaboration tasks",
	"Prepare updates and reports for the next team meeting",
	"Reach out if you need clarification on any action items",
}

type summaryView struct {
	Title            string
	RecipientName    string
	MeetingRef       string
	Organizer        string
	DurationMinutes  int
	ParticipantCount int
	WordCount        int
	GeneratedAt      string
	Mentioned        bool
	ActionItems      []actionItem
	NextSteps        []string
	Signature        Signature
}

// Renderer produces the deterministic fallback summary email
type Renderer struct {
	signature Signature
	now       func() time.Time
}

// NewRenderer creates a renderer. A nil clock uses time.Now.
func NewRenderer(signature Signature, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	if signature == (Signature{}) {
		signature = DefaultSignature
	}
	return &Renderer{signature: signature, now: now}
}

// Render builds the email. It never fails.
func (r *Renderer) Render(req Request) Content {
	view := summaryView{
		Title:            req.MeetingTitle,
		RecipientName:    req.RecipientName,
		MeetingRef:       notAvailable,
		Organizer:        notAvailable,
		DurationMinutes:  defaultDurationMinutes,
		ParticipantCount: defaultParticipantCount,
		WordCount:        len(strings.Fields(req.Transcript)),
		GeneratedAt:      r.now().Format("03:04:05 PM"),
		Mentioned:        mentions(req.Transcript, req.RecipientName),
		ActionItems:      fixedActionItems,
		NextSteps:        fixedNextSteps,
		Signature:        r.signature,
	}
	if m := req.Meeting; m != nil {
		if m.ID != "" {
			view.MeetingRef = shortID(m.ID) + "..."
		}
		if m.OrganizerEmail != "" {
			view.Organizer = m.OrganizerEmail
		}
		if m.DurationMinutes != nil {
			view.DurationMinutes = *m.DurationMinutes
		}
	}
	if len(req.Participants) > 0 {
		view.ParticipantCount = len(req.Participants)
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		// Only reachable on a broken template; keep the email deliverable.
		buf.Reset()
		buf.WriteString("<p>Dear " + template.HTMLEscapeString(req.RecipientName) + ",</p>")
		buf.WriteString("<p>Your summary for " + template.HTMLEscapeString(req.MeetingTitle) + " is ready.</p>")
	}

	return Content{
		Subject:  Subject(req.MeetingTitle, req.RecipientName),
		HTMLBody: buf.String(),
	}
}

// mentions reports whether the recipient's first name occurs in the transcript
func mentions(transcript, name string) bool {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(transcript), strings.ToLower(fields[0]))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

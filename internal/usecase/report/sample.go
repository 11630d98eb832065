package report

// Defaults for mock reports
const (
	defaultMeetingTitle   = "Team Sync Meeting"
	defaultOrganizerEmail = "organizer@example.com"
	defaultTargetName     = "Target User"
	untitledMeeting       = "Team Meeting"
	missingTranscript     = "No transcript available for this meeting."
	mockTranscriptMinutes = 15
	mockSpeakingMinutes   = 3
	mockWordsPerSpeaker   = 150
)

const sampleTranscript = `
    John Smith: Good morning everyone, thanks for joining today's team sync. Let's start with project updates.

    Sarah Johnson: Hi everyone, I've completed the user authentication module. It's ready for testing. I'll need someone from QA to review it by Friday.

    Mike Davis: Great work Sarah! I can help with the QA review. On my end, I've been working on the database optimization. Found some bottlenecks in our query performance. I'll have a fix ready by next week.

    Lisa Chen: Thanks Mike. For the frontend, I've implemented the new dashboard design. However, I'm waiting for the API endpoints to be completed before I can fully integrate everything.

    John Smith: Excellent progress everyone. Lisa, can you work with Sarah to get those API endpoints prioritized? Let's plan to have everything integrated by end of next week.

    Sarah Johnson: Absolutely, Lisa and I can sync up after this meeting.

    Mike Davis: I'll also prepare a performance report for the database changes. Should be ready for review on Wednesday.

    John Smith: Perfect. Let's reconvene next Tuesday same time. Any other questions or concerns?

    Lisa Chen: Just one thing - can we get access to the staging environment for testing?

    John Smith: I'll reach out to DevOps to get that sorted. Thanks everyone!
    `

var sampleParticipants = []ParticipantInput{
	{Name: "John Smith", Email: "john.smith@example.com"},
	{Name: "Sarah Johnson", Email: "sarah.johnson@example.com"},
	{Name: "Mike Davis", Email: "mike.davis@example.com"},
	{Name: "Lisa Chen", Email: "lisa.chen@example.com"},
}

// withDefaults fills every empty field of in from the sample data
func (in MockReportInput) withDefaults() MockReportInput {
	if in.MeetingTitle == "" {
		in.MeetingTitle = defaultMeetingTitle
	}
	if in.UserEmail == "" {
		in.UserEmail = defaultOrganizerEmail
	}
	if in.TranscriptText == "" {
		in.TranscriptText = sampleTranscript
	}
	if in.Participants == nil {
		in.Participants = append([]ParticipantInput(nil), sampleParticipants...)
	}
	return in
}

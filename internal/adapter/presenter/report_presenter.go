package presenter

import (
	reportDTO "github.com/veritasai/veritas-backend/internal/adapter/dto/report"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/usecase/report"
)

// transcriptPreviewLen caps transcript text in listings
const transcriptPreviewLen = 200

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) reportDTO.UserResponse {
	return reportDTO.UserResponse{
		ID:                u.ID.String(),
		Email:             u.Email,
		FullName:          u.FullName,
		MonitoringEnabled: u.MonitoringEnabled,
		CreatedAt:         u.CreatedAt,
	}
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) reportDTO.MeetingResponse {
	return reportDTO.MeetingResponse{
		ID:              m.ID.String(),
		NativeMeetingID: m.NativeMeetingID,
		MeetingTitle:    m.Title,
		UserEmail:       m.OrganizerEmail,
		Status:          string(m.Status),
		IsInstant:       m.IsInstant,
		DurationMinutes: m.DurationMinutes,
		EndedAt:         m.EndedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// ToTranscriptResponse converts a Transcript entity, truncating long text
func ToTranscriptResponse(t *entities.Transcript) reportDTO.TranscriptResponse {
	text := t.Text
	if runes := []rune(text); len(runes) > transcriptPreviewLen {
		text = string(runes[:transcriptPreviewLen]) + "..."
	}
	return reportDTO.TranscriptResponse{
		ID:              t.ID.String(),
		MeetingID:       t.MeetingID.String(),
		TranscriptText:  text,
		WordCount:       t.WordCount,
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt,
	}
}

// ToParticipantResponse converts a Participant entity to ParticipantResponse DTO
func ToParticipantResponse(p *entities.Participant) reportDTO.ParticipantResponse {
	return reportDTO.ParticipantResponse{
		ID:                  p.ID.String(),
		MeetingID:           p.MeetingID.String(),
		ParticipantName:     p.Name,
		ParticipantEmail:    p.Email,
		SpeakingTimeMinutes: p.SpeakingTimeMinutes,
		WordsSpoken:         p.WordsSpoken,
	}
}

// ToTestDataResponse converts a test data snapshot. Lists are never nil.
func ToTestDataResponse(data *report.TestData) *reportDTO.TestDataResponse {
	resp := &reportDTO.TestDataResponse{
		Users:        make([]reportDTO.UserResponse, 0, len(data.Users)),
		Meetings:     make([]reportDTO.MeetingResponse, 0, len(data.Meetings)),
		Transcripts:  make([]reportDTO.TranscriptResponse, 0, len(data.Transcripts)),
		Participants: make([]reportDTO.ParticipantResponse, 0, len(data.Participants)),
	}
	for _, u := range data.Users {
		resp.Users = append(resp.Users, ToUserResponse(u))
	}
	for _, m := range data.Meetings {
		resp.Meetings = append(resp.Meetings, ToMeetingResponse(m))
	}
	for _, t := range data.Transcripts {
		resp.Transcripts = append(resp.Transcripts, ToTranscriptResponse(t))
	}
	for _, p := range data.Participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(p))
	}
	return resp
}

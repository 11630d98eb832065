package report

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/veritasai/veritas-backend/errors"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/domain/repositories"
)

// Repositories groups the stores used by reports
type Repositories struct {
	Meetings     repositories.MeetingRepository
	Transcripts  repositories.TranscriptRepository
	Participants repositories.ParticipantRepository
	Users        repositories.UserRepository
	Emails       repositories.EmailRepository
}

// Lookup reads report inputs. Absent rows are reported as nil or empty,
// query failures as errors, except where noted.
type Lookup struct {
	repos  Repositories
	logger *zap.Logger
}

// NewLookup creates a Lookup
func NewLookup(repos Repositories, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lookup{repos: repos, logger: logger}
}

// LatestMeetingFor returns the user's most recently created meeting, or nil
func (l *Lookup) LatestMeetingFor(ctx context.Context, userEmail string) (*entities.Meeting, error) {
	meeting, err := l.repos.Meetings.FindLatestByOrganizer(ctx, userEmail)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("latest meeting", err)
	}
	return meeting, nil
}

// MeetingByID returns the meeting, or nil
func (l *Lookup) MeetingByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := l.repos.Meetings.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("meeting by id", err)
	}
	return meeting, nil
}

// TranscriptFor returns the meeting's transcript text, or "" when absent
func (l *Lookup) TranscriptFor(ctx context.Context, meetingID uuid.UUID) (string, error) {
	transcript, err := l.repos.Transcripts.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return "", apperrors.ErrDBQueryFailed("transcript", err)
	}
	if transcript == nil {
		return "", nil
	}
	return transcript.Text, nil
}

// ParticipantsFor returns the meeting's participants, each paired with the
// first user registered under the same email.
func (l *Lookup) ParticipantsFor(ctx context.Context, meetingID uuid.UUID) ([]entities.ParticipantWithUser, error) {
	participants, err := l.repos.Participants.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("participants", err)
	}

	result := make([]entities.ParticipantWithUser, 0, len(participants))
	for _, p := range participants {
		entry := entities.ParticipantWithUser{Participant: p}
		if p.HasEmail() {
			user, err := l.repos.Users.FindByEmail(ctx, p.Email)
			if err != nil {
				return nil, apperrors.ErrDBQueryFailed("participant user", err)
			}
			entry.User = user
		}
		result = append(result, entry)
	}
	return result, nil
}

// MonitoredUsers returns users with monitoring enabled. If that query fails
// it falls back to every user, and to an empty list if that fails too.
func (l *Lookup) MonitoredUsers(ctx context.Context) []*entities.User {
	users, err := l.repos.Users.ListMonitored(ctx)
	if err == nil {
		return users
	}
	l.logger.Error("Failed to list monitored users, falling back to all users", zap.Error(err))

	users, err = l.repos.Users.List(ctx, 0)
	if err != nil {
		l.logger.Error("Failed to list users", zap.Error(err))
		return nil
	}
	return users
}

// EmailHistory returns the meeting's emails newest first. Failures yield an
// empty history.
func (l *Lookup) EmailHistory(ctx context.Context, meetingID uuid.UUID) []*entities.EmailNotification {
	emails, err := l.repos.Emails.ListByMeetingID(ctx, meetingID)
	if err != nil {
		l.logger.Error("Failed to load email history",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
		return nil
	}
	return emails
}

// RecentRows returns up to limit recent rows of every table
func (l *Lookup) RecentRows(ctx context.Context, limit int) (*TestData, error) {
	users, err := l.repos.Users.List(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("users", err)
	}
	meetings, err := l.repos.Meetings.List(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("meetings", err)
	}
	transcripts, err := l.repos.Transcripts.List(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("transcripts", err)
	}
	participants, err := l.repos.Participants.List(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("participants", err)
	}
	return &TestData{
		Users:        users,
		Meetings:     meetings,
		Transcripts:  transcripts,
		Participants: participants,
	}, nil
}

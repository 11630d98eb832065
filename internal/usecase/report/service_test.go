package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/veritasai/veritas-backend/errors"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/infrastructure/external/webhook"
	"github.com/veritasai/veritas-backend/internal/testutil"
	"github.com/veritasai/veritas-backend/internal/usecase/compose"
	"github.com/veritasai/veritas-backend/internal/usecase/delivery"
	usecaseErrors "github.com/veritasai/veritas-backend/internal/usecase/errors"
	"github.com/veritasai/veritas-backend/pkg/config"
)

const guaranteed = "btcto154k@gmail.com"

type countingDispatcher struct {
	calls int
}

func (d *countingDispatcher) DispatchPending(context.Context) delivery.Result {
	d.calls++
	return delivery.Result{Message: "No pending emails to send"}
}

type fakeArchiver struct {
	keys []string
	err  error
}

func (a *fakeArchiver) Archive(_ context.Context, email *entities.EmailNotification) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	key := "emails/" + email.MeetingID.String() + "/" + email.ID.String() + ".html"
	a.keys = append(a.keys, key)
	return key, nil
}

func repos(store *testutil.Store) Repositories {
	return Repositories{
		Meetings:     store.MeetingRepo(),
		Transcripts:  store.TranscriptRepo(),
		Participants: store.ParticipantRepo(),
		Users:        store.UserRepo(),
		Emails:       store.EmailRepo(),
	}
}

func newTestService(store *testutil.Store, dispatcher Dispatcher, archiver Archiver) *Service {
	renderer := compose.NewRenderer(compose.DefaultSignature, nil)
	summarizer := compose.NewSummarizer(nil, renderer, zap.NewNop())
	return NewService(repos(store), summarizer, dispatcher, archiver, Settings{
		FromEmail:           "ricardo.barroca@dengun.com",
		GuaranteedRecipient: guaranteed,
		JobTimeout:          time.Minute,
	}, zap.NewNop())
}

// seedMeeting stores a meeting with optional transcript and participants
func seedMeeting(t *testing.T, store *testutil.Store, organizer, title, transcript string, participants ...[2]string) *entities.Meeting {
	t.Helper()
	ctx := context.Background()
	m := entities.NewInstantMeeting(title, organizer, time.Now())
	require.NoError(t, store.MeetingRepo().Create(ctx, m))
	if transcript != "" {
		require.NoError(t, store.TranscriptRepo().Create(ctx, entities.NewTranscript(m.ID, transcript, 20)))
	}
	for _, p := range participants {
		require.NoError(t, store.ParticipantRepo().Create(ctx, entities.NewParticipant(m.ID, p[0], p[1], 5, 100)))
	}
	return m
}

type webhookRecorder struct {
	mu       sync.Mutex
	payloads []webhook.Payload
}

func (w *webhookRecorder) server(t *testing.T) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		var p webhook.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			rw.WriteHeader(http.StatusBadRequest)
			return
		}
		w.mu.Lock()
		w.payloads = append(w.payloads, p)
		w.mu.Unlock()
		rw.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGenerateMockReport_EndToEndOnEmptyStore(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("alice@example.com", "Alice Adams", true)
	store.AddUser("bob@example.com", "", true)
	store.AddUser("carol@example.com", "Carol", false)

	rec := &webhookRecorder{}
	ts := rec.server(t)
	client := webhook.NewClient(&config.WebhookConfig{URL: ts.URL, Timeout: 5 * time.Second})
	dispatcher := delivery.NewDispatcher(store.EmailRepo(), client, nil, time.Minute, zap.NewNop())

	svc := newTestService(store, dispatcher, nil)
	result, err := svc.GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)

	assert.Len(t, store.Meetings, 1)
	assert.Len(t, store.Transcripts, 1)
	assert.Len(t, store.Participants, 4)
	assert.Len(t, store.Emails, 3)

	assert.Equal(t, "Mock report generated and emails sent to all real users", result.Message)
	assert.Equal(t, "Team Sync Meeting", result.MeetingTitle)
	assert.Equal(t, 4, result.ParticipantsCreated)
	assert.Equal(t, 3, result.TotalUsersEmailed)
	assert.Equal(t, 3, result.EmailsGenerated)
	assert.Equal(t, guaranteed, result.TargetUserEmailed)
	assert.Equal(t, len(sampleTranscript), result.TranscriptLength)

	require.Len(t, result.GeneratedEmails, 3)
	assert.Equal(t, "Alice Adams", result.GeneratedEmails[0].UserName)
	assert.Equal(t, "Bob", result.GeneratedEmails[1].UserName)
	target := result.GeneratedEmails[2]
	assert.Equal(t, guaranteed, target.UserEmail)
	assert.Equal(t, "Target User", target.UserName)
	assert.True(t, target.IsTargetUser)
	for _, e := range result.GeneratedEmails {
		assert.Equal(t, StatusQueued, e.Status)
		assert.NotEmpty(t, e.EmailID)
		assert.Contains(t, e.Subject, "Team Sync Meeting")
	}

	assert.Equal(t, 3, result.EmailSendingResult.SentCount)
	assert.Equal(t, 0, result.EmailSendingResult.FailedCount)
	assert.Len(t, store.EmailsWithStatus(entities.EmailStatusSent), 3)
	assert.Len(t, rec.payloads, 3)
	for _, p := range rec.payloads {
		assert.Equal(t, "ricardo.barroca@dengun.com", p.From)
		assert.Equal(t, "veritas-ai-backend", p.Source)
	}

	meeting := store.Meetings[0]
	assert.Equal(t, entities.MeetingStatusCompleted, meeting.Status)
	assert.True(t, meeting.IsInstant)
	assert.True(t, strings.HasPrefix(meeting.NativeMeetingID, "test-meeting-"))
	assert.Equal(t, "organizer@example.com", meeting.OrganizerEmail)
	assert.Same(t, meeting, result.MeetingData)

	transcript := store.Transcripts[0]
	assert.Equal(t, strings.TrimSpace(sampleTranscript), transcript.Text)
	require.NotNil(t, transcript.DurationMinutes)
	assert.Equal(t, 15, *transcript.DurationMinutes)

	for _, p := range store.Participants {
		assert.Equal(t, 3, *p.SpeakingTimeMinutes)
		assert.Equal(t, 150, *p.WordsSpoken)
	}
}

func TestGenerateMockReport_GuaranteedRecipientAlreadyMonitored(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser(guaranteed, "Real Name", true)
	dispatcher := &countingDispatcher{}

	result, err := newTestService(store, dispatcher, nil).GenerateMockReport(context.Background(), MockReportInput{
		MeetingTitle:   "Design Review",
		UserEmail:      "lead@example.com",
		TranscriptText: "Lead: ship it",
		Participants:   []ParticipantInput{{Name: "Lead", Email: "lead@example.com"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalUsersEmailed)
	require.Len(t, result.GeneratedEmails, 1)
	assert.Equal(t, "Real Name", result.GeneratedEmails[0].UserName)
	assert.True(t, result.GeneratedEmails[0].IsTargetUser)
	assert.Equal(t, 1, result.ParticipantsCreated)
	assert.Equal(t, "Design Review", store.Meetings[0].Title)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestGenerateMockReport_UserListFallback(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("alice@example.com", "Alice", false)
	store.Fail["Users.ListMonitored"] = errors.New("column does not exist")

	result, err := newTestService(store, &countingDispatcher{}, nil).GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)
	// Unfiltered listing plus the guaranteed recipient.
	assert.Equal(t, 2, result.TotalUsersEmailed)

	store.Fail["Users.List"] = errors.New("connection reset")
	result, err = newTestService(store, &countingDispatcher{}, nil).GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalUsersEmailed)
}

func TestGenerateMockReport_InsertFailureIsPerRecipient(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("alice@example.com", "Alice", true)
	store.Fail["Emails.Create"] = errors.New("insert failed")
	dispatcher := &countingDispatcher{}

	result, err := newTestService(store, dispatcher, nil).GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.EmailsGenerated)
	require.Len(t, result.GeneratedEmails, 2)
	for _, e := range result.GeneratedEmails {
		assert.Equal(t, StatusFailed, e.Status)
		assert.Contains(t, e.Error, "insert failed")
		assert.Empty(t, e.EmailID)
	}
	assert.Equal(t, 1, dispatcher.calls)
}

func TestGenerateMockReport_MeetingCreateFails(t *testing.T) {
	store := testutil.NewStore()
	store.Fail["Meetings.Create"] = errors.New("db down")
	dispatcher := &countingDispatcher{}

	_, err := newTestService(store, dispatcher, nil).GenerateMockReport(context.Background(), MockReportInput{})

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Equal(t, "Failed to create meeting", appErr.Message)
	assert.Zero(t, dispatcher.calls)
	assert.Empty(t, store.Emails)
}

func TestGenerateMockReport_Archives(t *testing.T) {
	store := testutil.NewStore()
	archiver := &fakeArchiver{}

	result, err := newTestService(store, &countingDispatcher{}, archiver).GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)

	require.Len(t, archiver.keys, 1)
	assert.Equal(t, archiver.keys[0], result.GeneratedEmails[0].ArchiveKey)
}

func TestGenerateMockReport_ArchiveFailureKeepsEmail(t *testing.T) {
	store := testutil.NewStore()
	archiver := &fakeArchiver{err: errors.New("bucket missing")}

	result, err := newTestService(store, &countingDispatcher{}, archiver).GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)

	assert.Equal(t, StatusQueued, result.GeneratedEmails[0].Status)
	assert.Empty(t, result.GeneratedEmails[0].ArchiveKey)
	assert.Len(t, store.Emails, 1)
}

func TestCraftEmails_RequiresMeetingRef(t *testing.T) {
	store := testutil.NewStore()

	_, err := newTestService(store, &countingDispatcher{}, nil).CraftEmails(context.Background(), CraftEmailInput{UserEmail: "  "})

	assert.ErrorIs(t, err, usecaseErrors.ErrMissingMeetingRef)
	assert.Empty(t, store.Emails)
}

func TestCraftEmails_OnePerParticipantWithEmail(t *testing.T) {
	store := testutil.NewStore()
	m := seedMeeting(t, store, "lead@example.com", "Planning", "Sarah: done. Mike: next week.",
		[2]string{"Sarah Johnson", "sarah@example.com"},
		[2]string{"Walk-in", ""},
		[2]string{"Mike Davis", "mike@example.com"},
	)
	dispatcher := &countingDispatcher{}

	result, err := newTestService(store, dispatcher, nil).CraftEmails(context.Background(), CraftEmailInput{UserEmail: "lead@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "Email crafting process completed for meeting "+m.ID.String()+".", result.Message)
	assert.Equal(t, m.ID.String(), result.MeetingID)
	assert.Equal(t, 3, result.ParticipantsCount)
	require.Len(t, result.GeneratedEmails, 2)
	assert.Equal(t, "sarah@example.com", result.GeneratedEmails[0].ParticipantEmail)
	assert.Equal(t, StatusSaved, result.GeneratedEmails[0].Status)
	assert.Contains(t, result.GeneratedEmails[0].Subject, "Planning")

	assert.Len(t, store.EmailsWithStatus(entities.EmailStatusPending), 2)
	assert.Zero(t, dispatcher.calls)
}

func TestCraftEmails_ByMeetingID(t *testing.T) {
	store := testutil.NewStore()
	m := seedMeeting(t, store, "lead@example.com", "", "hello", [2]string{"Ann", "ann@example.com"})

	result, err := newTestService(store, &countingDispatcher{}, nil).CraftEmails(context.Background(), CraftEmailInput{MeetingID: m.ID})
	require.NoError(t, err)

	require.Len(t, result.GeneratedEmails, 1)
	assert.Contains(t, result.GeneratedEmails[0].Subject, "Team Meeting")
}

func TestCraftEmails_NothingToDo(t *testing.T) {
	store := testutil.NewStore()
	noTranscript := seedMeeting(t, store, "a@example.com", "A", "", [2]string{"Ann", "ann@example.com"})
	noParticipants := seedMeeting(t, store, "b@example.com", "B", "some words")
	svc := newTestService(store, &countingDispatcher{}, nil)

	tests := []struct {
		name string
		in   CraftEmailInput
		want string
	}{
		{"no meetings", CraftEmailInput{UserEmail: "nobody@example.com"}, "No meetings found for user nobody@example.com. Nothing to do."},
		{"no transcript", CraftEmailInput{MeetingID: noTranscript.ID}, "No transcript found for meeting " + noTranscript.ID.String() + ". Nothing to do."},
		{"no participants", CraftEmailInput{MeetingID: noParticipants.ID}, "No participants found for meeting " + noParticipants.ID.String() + ". Nothing to do."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CraftEmails(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Message)
			assert.Empty(t, result.GeneratedEmails)
		})
	}
	assert.Empty(t, store.Emails)
}

func TestCraftEmails_UnknownMeetingID(t *testing.T) {
	store := testutil.NewStore()
	id := uuid.New()

	_, err := newTestService(store, &countingDispatcher{}, nil).CraftEmails(context.Background(), CraftEmailInput{MeetingID: id})

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Equal(t, "Meeting "+id.String()+" not found", appErr.Message)
}

func TestGenerateLiveReport_RequiresUserEmail(t *testing.T) {
	_, err := newTestService(testutil.NewStore(), &countingDispatcher{}, nil).GenerateLiveReport(context.Background(), LiveReportInput{})
	assert.ErrorIs(t, err, usecaseErrors.ErrMissingUserEmail)
}

func TestGenerateLiveReport_NoMeetings(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("alice@example.com", "Alice", true)
	dispatcher := &countingDispatcher{}

	_, err := newTestService(store, dispatcher, nil).GenerateLiveReport(context.Background(), LiveReportInput{UserEmail: "ghost@example.com"})

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Equal(t, "No meetings found for user ghost@example.com", appErr.Message)
	assert.Empty(t, store.Emails)
	assert.Zero(t, dispatcher.calls)
}

func TestGenerateLiveReport_UnknownMeetingID(t *testing.T) {
	store := testutil.NewStore()
	id := uuid.New()

	_, err := newTestService(store, &countingDispatcher{}, nil).GenerateLiveReport(context.Background(), LiveReportInput{
		UserEmail: "lead@example.com",
		MeetingID: id,
	})

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Meeting "+id.String()+" not found", appErr.Message)
	assert.Empty(t, store.Emails)
}

func TestGenerateLiveReport_LatestMeeting(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("alice@example.com", "Alice Adams", true)
	seedMeeting(t, store, "lead@example.com", "Old", "old words")
	latest := seedMeeting(t, store, "lead@example.com", "Retro", "Alice: good sprint",
		[2]string{"Alice Adams", "alice@example.com"},
		[2]string{"Guest", ""},
	)
	prior := entities.NewPendingEmail(latest.ID, "x@example.com", "f@example.com", "s", "h")
	require.NoError(t, store.EmailRepo().Create(context.Background(), prior))
	dispatcher := &countingDispatcher{}

	result, err := newTestService(store, dispatcher, nil).GenerateLiveReport(context.Background(), LiveReportInput{UserEmail: "lead@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "Enhanced comprehensive reports generated and sent to all users", result.Message)
	assert.Equal(t, latest.ID.String(), result.MeetingID)
	assert.Equal(t, "Retro", result.MeetingTitle)
	assert.Equal(t, "lead@example.com", result.MeetingOrganizer)
	assert.Equal(t, "completed", result.MeetingStatus)
	assert.Equal(t, "lead@example.com", result.RequestedUser)
	assert.Equal(t, 2, result.ParticipantsFound)
	assert.Equal(t, 1, result.ExistingEmailsFound)
	assert.Equal(t, len("Alice: good sprint"), result.TranscriptLength)

	require.Len(t, result.SentReports, 2)
	assert.Equal(t, "Alice Adams", result.SentReports[0].UserName)
	assert.Equal(t, "lead@example.com", result.SentReports[1].UserEmail)
	assert.Equal(t, "Lead", result.SentReports[1].UserName)
	assert.Equal(t, 2, result.TotalUsersEmailed)
	assert.Equal(t, 2, result.SuccessfulEmails)
	assert.Zero(t, result.FailedEmails)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestGenerateLiveReport_MissingTranscriptUsesPlaceholder(t *testing.T) {
	store := testutil.NewStore()
	m := seedMeeting(t, store, "lead@example.com", "Sync", "")
	store.Fail["Emails.ListByMeetingID"] = errors.New("timeout")

	result, err := newTestService(store, &countingDispatcher{}, nil).GenerateLiveReport(context.Background(), LiveReportInput{
		UserEmail: "lead@example.com",
		MeetingID: m.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, len("No transcript available for this meeting."), result.TranscriptLength)
	assert.Zero(t, result.ExistingEmailsFound)
	assert.Equal(t, 1, result.SuccessfulEmails)
}

func TestGenerateLiveReport_InsertFailureIsPerRecipient(t *testing.T) {
	store := testutil.NewStore()
	seedMeeting(t, store, "lead@example.com", "Sync", "words")
	store.Fail["Emails.Create"] = errors.New("insert failed")

	result, err := newTestService(store, &countingDispatcher{}, nil).GenerateLiveReport(context.Background(), LiveReportInput{UserEmail: "lead@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FailedEmails)
	assert.Equal(t, StatusFailed, result.SentReports[0].Status)
	assert.Contains(t, result.SentReports[0].Error, "insert failed")
}

func TestTestData(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("alice@example.com", "Alice", true)
	seedMeeting(t, store, "lead@example.com", "Sync", "words", [2]string{"Ann", "ann@example.com"})

	data, err := newTestService(store, &countingDispatcher{}, nil).TestData(context.Background(), 10)
	require.NoError(t, err)

	assert.Len(t, data.Users, 1)
	assert.Len(t, data.Meetings, 1)
	assert.Len(t, data.Transcripts, 1)
	assert.Len(t, data.Participants, 1)
}

type busyDispatcher struct{}

func (busyDispatcher) DispatchPending(context.Context) delivery.Result {
	return delivery.Result{Message: "dispatch already in progress", InProgress: true}
}

func TestGenerateMockReport_DispatchBusyReportsQueuedEmails(t *testing.T) {
	store := testutil.NewStore()
	store.AddUser("watcher@example.com", "Watcher", true)

	result, err := newTestService(store, busyDispatcher{}, nil).GenerateMockReport(context.Background(), MockReportInput{})
	require.NoError(t, err)

	require.Equal(t, 2, result.EmailsGenerated)
	sending := result.EmailSendingResult
	assert.True(t, sending.InProgress)
	assert.Equal(t, 2, sending.LeftQueued)
	assert.Equal(t, "Dispatch already in progress; 2 new email(s) left queued for the next run", sending.Message)
	assert.Len(t, store.EmailsWithStatus(entities.EmailStatusPending), 2)
}

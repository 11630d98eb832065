// Package testutil provides in-memory repository fakes for use case tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/domain/repositories"
)

// Store keeps every table in memory. Fail maps a method name such as
// "ListPending" or "Users.Create" to an error that method should return.
type Store struct {
	mu    sync.Mutex
	clock time.Time

	Meetings     []*entities.Meeting
	Transcripts  []*entities.Transcript
	Participants []*entities.Participant
	Users        []*entities.User
	Emails       []*entities.EmailNotification

	Fail map[string]error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		Fail:  make(map[string]error),
	}
}

func (s *Store) fail(method string) error {
	return s.Fail[method]
}

// tick returns strictly increasing creation times so ordering is stable
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// AddUser seeds a user
func (s *Store) AddUser(email, fullName string, monitored bool) *entities.User {
	u := &entities.User{Email: email, FullName: fullName, MonitoringEnabled: monitored}
	_ = s.UserRepo().Create(context.Background(), u)
	return u
}

// EmailsWithStatus returns stored emails in the given status
func (s *Store) EmailsWithStatus(status entities.EmailStatus) []*entities.EmailNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.EmailNotification
	for _, e := range s.Emails {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

func limitSlice[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// MeetingRepo returns the meeting repository view
func (s *Store) MeetingRepo() repositories.MeetingRepository { return meetingRepo{s} }

// TranscriptRepo returns the transcript repository view
func (s *Store) TranscriptRepo() repositories.TranscriptRepository { return transcriptRepo{s} }

// ParticipantRepo returns the participant repository view
func (s *Store) ParticipantRepo() repositories.ParticipantRepository { return participantRepo{s} }

// UserRepo returns the user repository view
func (s *Store) UserRepo() repositories.UserRepository { return userRepo{s} }

// EmailRepo returns the email repository view
func (s *Store) EmailRepo() repositories.EmailRepository { return emailRepo{s} }

type meetingRepo struct{ s *Store }

func (r meetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Meetings.Create"); err != nil {
		return err
	}
	ensureID(&m.ID)
	m.CreatedAt = r.s.tick()
	m.UpdatedAt = m.CreatedAt
	r.s.Meetings = append(r.s.Meetings, m)
	return nil
}

func (r meetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Meetings.FindByID"); err != nil {
		return nil, err
	}
	for _, m := range r.s.Meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r meetingRepo) FindLatestByOrganizer(_ context.Context, email string) (*entities.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Meetings.FindLatestByOrganizer"); err != nil {
		return nil, err
	}
	var latest *entities.Meeting
	for _, m := range r.s.Meetings {
		if m.OrganizerEmail == email && (latest == nil || m.CreatedAt.After(latest.CreatedAt)) {
			latest = m
		}
	}
	return latest, nil
}

func (r meetingRepo) List(_ context.Context, limit int) ([]*entities.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Meetings.List"); err != nil {
		return nil, err
	}
	out := append([]*entities.Meeting(nil), r.s.Meetings...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limitSlice(out, limit), nil
}

type transcriptRepo struct{ s *Store }

func (r transcriptRepo) Create(_ context.Context, t *entities.Transcript) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Transcripts.Create"); err != nil {
		return err
	}
	ensureID(&t.ID)
	t.CreatedAt = r.s.tick()
	r.s.Transcripts = append(r.s.Transcripts, t)
	return nil
}

func (r transcriptRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Transcripts.FindByMeetingID"); err != nil {
		return nil, err
	}
	for _, t := range r.s.Transcripts {
		if t.MeetingID == meetingID {
			return t, nil
		}
	}
	return nil, nil
}

func (r transcriptRepo) List(_ context.Context, limit int) ([]*entities.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Transcripts.List"); err != nil {
		return nil, err
	}
	out := append([]*entities.Transcript(nil), r.s.Transcripts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limitSlice(out, limit), nil
}

type participantRepo struct{ s *Store }

func (r participantRepo) Create(_ context.Context, p *entities.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Participants.Create"); err != nil {
		return err
	}
	ensureID(&p.ID)
	p.CreatedAt = r.s.tick()
	r.s.Participants = append(r.s.Participants, p)
	return nil
}

func (r participantRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Participants.FindByMeetingID"); err != nil {
		return nil, err
	}
	var out []*entities.Participant
	for _, p := range r.s.Participants {
		if p.MeetingID == meetingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r participantRepo) List(_ context.Context, limit int) ([]*entities.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Participants.List"); err != nil {
		return nil, err
	}
	out := append([]*entities.Participant(nil), r.s.Participants...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limitSlice(out, limit), nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.Create"); err != nil {
		return err
	}
	ensureID(&u.ID)
	u.CreatedAt = r.s.tick()
	r.s.Users = append(r.s.Users, u)
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListMonitored(_ context.Context) ([]*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.ListMonitored"); err != nil {
		return nil, err
	}
	var out []*entities.User
	for _, u := range r.s.Users {
		if u.MonitoringEnabled {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r userRepo) List(_ context.Context, limit int) ([]*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Users.List"); err != nil {
		return nil, err
	}
	return limitSlice(append([]*entities.User(nil), r.s.Users...), limit), nil
}

type emailRepo struct{ s *Store }

func (r emailRepo) Create(_ context.Context, e *entities.EmailNotification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Emails.Create"); err != nil {
		return err
	}
	// Mirrors the NOT NULL constraint on user_email.
	if strings.TrimSpace(e.RecipientEmail) == "" {
		return errNullRecipient
	}
	ensureID(&e.ID)
	e.CreatedAt = r.s.tick()
	r.s.Emails = append(r.s.Emails, e)
	return nil
}

func (r emailRepo) ListPending(_ context.Context) ([]*entities.EmailNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Emails.ListPending"); err != nil {
		return nil, err
	}
	var out []*entities.EmailNotification
	for _, e := range r.s.Emails {
		if e.IsPending() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r emailRepo) ListByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.EmailNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Emails.ListByMeetingID"); err != nil {
		return nil, err
	}
	var out []*entities.EmailNotification
	for _, e := range r.s.Emails {
		if e.MeetingID == meetingID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r emailRepo) find(id uuid.UUID) *entities.EmailNotification {
	for _, e := range r.s.Emails {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (r emailRepo) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Emails.MarkSent"); err != nil {
		return err
	}
	e := r.find(id)
	if e == nil {
		return entities.ErrEmailNotPending
	}
	return e.MarkSent(at)
}

func (r emailRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Emails.MarkFailed"); err != nil {
		return err
	}
	e := r.find(id)
	if e == nil {
		return entities.ErrEmailNotPending
	}
	return e.MarkFailed(reason)
}

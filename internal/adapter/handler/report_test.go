package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veritasai/veritas-backend/errors"
	"github.com/veritasai/veritas-backend/internal/usecase/delivery"
	usecaseErrors "github.com/veritasai/veritas-backend/internal/usecase/errors"
	"github.com/veritasai/veritas-backend/internal/usecase/report"
	"github.com/veritasai/veritas-backend/pkg/config"
	"github.com/veritasai/veritas-backend/pkg/validator"
)

type fakeReportService struct {
	mockIn  *report.MockReportInput
	craftIn *report.CraftEmailInput
	liveIn  *report.LiveReportInput

	craftErr error
	liveErr  error
	calls    int
}

func (f *fakeReportService) GenerateMockReport(_ context.Context, in report.MockReportInput) (*report.MockReportResult, error) {
	f.calls++
	f.mockIn = &in
	return &report.MockReportResult{Message: "ok", EmailsGenerated: 2}, nil
}

func (f *fakeReportService) CraftEmails(_ context.Context, in report.CraftEmailInput) (*report.CraftEmailResult, error) {
	f.calls++
	f.craftIn = &in
	if f.craftErr != nil {
		return nil, f.craftErr
	}
	return &report.CraftEmailResult{Message: "crafted"}, nil
}

func (f *fakeReportService) DispatchPending(context.Context) delivery.Result {
	f.calls++
	return delivery.Result{SentCount: 3, FailedCount: 1, Message: "Email sending completed. Sent: 3, Failed: 1"}
}

func (f *fakeReportService) GenerateLiveReport(_ context.Context, in report.LiveReportInput) (*report.LiveReportResult, error) {
	f.calls++
	f.liveIn = &in
	if f.liveErr != nil {
		return nil, f.liveErr
	}
	return &report.LiveReportResult{Message: "live", RequestedUser: in.UserEmail}, nil
}

func (f *fakeReportService) TestData(context.Context, int) (*report.TestData, error) {
	f.calls++
	return &report.TestData{}, nil
}

func newTestServer(svc ReportService) *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	cfg := &config.Config{Server: config.ServerConfig{Version: "1.0.0", Environment: "test"}}
	NewRouter(cfg, NewReportHandler(svc, zap.NewNop()), nil).Setup(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStatus(t *testing.T) {
	e := newTestServer(&fakeReportService{})

	rec := doRequest(e, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Veritas AI Backend is running.", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "test", body["environment"])
}

func TestGenerateMockReport_TolerantBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "invalid json", body: "{not json"},
		{name: "empty object", body: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReportService{}
			rec := doRequest(newTestServer(svc), http.MethodPost, "/generate-mock-report", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, svc.mockIn)
			assert.Empty(t, svc.mockIn.MeetingTitle)
			assert.Nil(t, svc.mockIn.Participants)
			assert.EqualValues(t, 2, decode(t, rec)["emails_generated"])
		})
	}
}

func TestGenerateMockReport_Overrides(t *testing.T) {
	svc := &fakeReportService{}
	body := `{"meeting_title":"Retro","user_email":"me@example.com","participants":[{"name":"Ann","email":"ann@example.com"},{"name":"Bob"}]}`

	rec := doRequest(newTestServer(svc), http.MethodPost, "/generate-mock-report", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Retro", svc.mockIn.MeetingTitle)
	assert.Equal(t, "me@example.com", svc.mockIn.UserEmail)
	assert.Equal(t, []report.ParticipantInput{
		{Name: "Ann", Email: "ann@example.com"},
		{Name: "Bob"},
	}, svc.mockIn.Participants)
}

func TestGenerateMockReport_InvalidEmail(t *testing.T) {
	svc := &fakeReportService{}

	rec := doRequest(newTestServer(svc), http.MethodPost, "/generate-mock-report", `{"user_email":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestCraftEmail_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "no body", body: "", wantMsg: "valid JSON"},
		{name: "invalid json", body: "{", wantMsg: "valid JSON"},
		{name: "neither field", body: "{}", wantMsg: "either 'meeting_id' or 'user_email' must be provided"},
		{name: "bad uuid", body: `{"meeting_id":"abc"}`, wantMsg: "'meeting_id' must be a valid UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReportService{}
			rec := doRequest(newTestServer(svc), http.MethodPost, "/craft-email", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, svc.calls)
			body := decode(t, rec)
			assert.EqualValues(t, errors.ErrorCode_INVALID_ARGUMENT, body["code"])
			assert.Contains(t, body["message"], tt.wantMsg)
		})
	}
}

func TestCraftEmail_ByMeetingID(t *testing.T) {
	svc := &fakeReportService{}
	id := uuid.New()

	rec := doRequest(newTestServer(svc), http.MethodPost, "/craft-email", `{"meeting_id":"`+id.String()+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.craftIn.MeetingID)
	assert.Equal(t, "crafted", decode(t, rec)["message"])
}

func TestCraftEmail_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "missing ref", err: usecaseErrors.ErrMissingMeetingRef, wantCode: http.StatusBadRequest},
		{name: "meeting not found", err: errors.ErrMeetingNotFound("x"), wantCode: http.StatusNotFound},
		{name: "plain error", err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReportService{craftErr: tt.err}
			rec := doRequest(newTestServer(svc), http.MethodPost, "/craft-email", `{"user_email":"a@example.com"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestSendPendingEmails(t *testing.T) {
	rec := doRequest(newTestServer(&fakeReportService{}), http.MethodPost, "/send-pending-emails", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 3, body["sent_count"])
	assert.EqualValues(t, 1, body["failed_count"])
	assert.NotContains(t, body, "error")
}

func TestGenerateLiveReport(t *testing.T) {
	t.Run("requires user_email", func(t *testing.T) {
		svc := &fakeReportService{}
		rec := doRequest(newTestServer(svc), http.MethodPost, "/generate-live-report", `{}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["message"], "'user_email' is required")
		assert.Zero(t, svc.calls)
	})

	t.Run("passes request through", func(t *testing.T) {
		svc := &fakeReportService{}
		id := uuid.New()
		rec := doRequest(newTestServer(svc), http.MethodPost, "/generate-live-report",
			`{"user_email":"boss@example.com","meeting_id":"`+id.String()+`"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "boss@example.com", svc.liveIn.UserEmail)
		assert.Equal(t, id, svc.liveIn.MeetingID)
		assert.Equal(t, "boss@example.com", decode(t, rec)["requested_user"])
	})

	t.Run("no meetings", func(t *testing.T) {
		svc := &fakeReportService{liveErr: errors.ErrNoMeetingsForUser("boss@example.com")}
		rec := doRequest(newTestServer(svc), http.MethodPost, "/generate-live-report", `{"user_email":"boss@example.com"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTestData_EmptyLists(t *testing.T) {
	rec := doRequest(newTestServer(&fakeReportService{}), http.MethodGet, "/test-data", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	for _, key := range []string{"users", "meetings", "transcripts", "participants"} {
		assert.Equal(t, []interface{}{}, body[key], key)
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, nil, pingerFunc(func(context.Context) error { return assert.AnError })).Setup(e)

	rec := doRequest(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decode(t, rec)["status"])
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

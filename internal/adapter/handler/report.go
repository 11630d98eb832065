package handler

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/veritasai/veritas-backend/errors"
	reportDTO "github.com/veritasai/veritas-backend/internal/adapter/dto/report"
	"github.com/veritasai/veritas-backend/internal/adapter/presenter"
	"github.com/veritasai/veritas-backend/internal/usecase/delivery"
	"github.com/veritasai/veritas-backend/internal/usecase/report"
)

const testDataLimit = 10

// ReportService is the report use case consumed by the handler
type ReportService interface {
	GenerateMockReport(ctx context.Context, in report.MockReportInput) (*report.MockReportResult, error)
	CraftEmails(ctx context.Context, in report.CraftEmailInput) (*report.CraftEmailResult, error)
	DispatchPending(ctx context.Context) delivery.Result
	GenerateLiveReport(ctx context.Context, in report.LiveReportInput) (*report.LiveReportResult, error)
	TestData(ctx context.Context, limit int) (*report.TestData, error)
}

// Report handles report and email delivery endpoints
type Report struct {
	svc    ReportService
	logger *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc ReportService, logger *zap.Logger) *Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Report{svc: svc, logger: logger}
}

// GenerateMockReport handles POST /generate-mock-report
// @Summary      Generate a mock report
// @Description  Creates a sample meeting with transcript and participants, emails a summary to every monitored user plus the guaranteed recipient, and dispatches pending emails. Every body field is optional.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request  body      reportDTO.MockReportRequest  false  "Overrides for the sample data"
// @Success      200      {object}  report.MockReportResult
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      500      {object}  map[string]interface{}  "Failed to create sample data"
// @Router       /generate-mock-report [post]
func (h *Report) GenerateMockReport(c echo.Context) error {
	var req reportDTO.MockReportRequest
	if err := c.Bind(&req); err != nil {
		// A missing or malformed body means "use the sample data".
		h.logger.Debug("mock report body ignored", zap.Error(err))
		req = reportDTO.MockReportRequest{}
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := report.MockReportInput{
		MeetingTitle:   req.MeetingTitle,
		UserEmail:      req.UserEmail,
		TranscriptText: req.TranscriptText,
	}
	if req.Participants != nil {
		in.Participants = make([]report.ParticipantInput, 0, len(req.Participants))
		for _, p := range req.Participants {
			in.Participants = append(in.Participants, report.ParticipantInput{Name: p.Name, Email: p.Email})
		}
	}

	result, err := h.svc.GenerateMockReport(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// CraftEmail handles POST /craft-email
// @Summary      Craft emails for meeting participants
// @Description  Generates and stores, without sending, one personalized email per participant of the given meeting or of the user's latest meeting.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request  body      reportDTO.CraftEmailRequest  true  "meeting_id or user_email"
// @Success      200      {object}  report.CraftEmailResult
// @Failure      400      {object}  map[string]interface{}  "Invalid JSON or neither field provided"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Failure      500      {object}  map[string]interface{}  "Database error"
// @Router       /craft-email [post]
func (h *Report) CraftEmail(c echo.Context) error {
	var req reportDTO.CraftEmailRequest
	if err := bindJSON(c, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			"Request body must contain valid JSON with either 'meeting_id' or 'user_email'."))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := report.CraftEmailInput{UserEmail: req.UserEmail}
	if req.MeetingID != "" {
		in.MeetingID = uuid.MustParse(req.MeetingID)
	}

	result, err := h.svc.CraftEmails(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// SendPendingEmails handles POST /send-pending-emails
// @Summary      Send all pending emails
// @Description  Relays every pending email through the delivery webhook and records each outcome.
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  delivery.Result
// @Router       /send-pending-emails [post]
func (h *Report) SendPendingEmails(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.svc.DispatchPending(c.Request().Context()))
}

// GenerateLiveReport handles POST /generate-live-report
// @Summary      Generate and send a live report
// @Description  Emails a comprehensive summary of the user's selected or latest meeting to every monitored user plus the requester, then dispatches pending emails.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request  body      reportDTO.LiveReportRequest  true  "Requesting user and optional meeting"
// @Success      200      {object}  report.LiveReportResult
// @Failure      400      {object}  map[string]interface{}  "Missing user_email"
// @Failure      404      {object}  map[string]interface{}  "No meeting found"
// @Failure      500      {object}  map[string]interface{}  "Database error"
// @Router       /generate-live-report [post]
func (h *Report) GenerateLiveReport(c echo.Context) error {
	var req reportDTO.LiveReportRequest
	if err := bindJSON(c, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			"Request body must contain valid JSON with 'user_email'."))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := report.LiveReportInput{UserEmail: req.UserEmail}
	if req.MeetingID != "" {
		in.MeetingID = uuid.MustParse(req.MeetingID)
	}

	result, err := h.svc.GenerateLiveReport(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// TestData handles GET /test-data
// @Summary      List recent rows
// @Description  Returns recent users, meetings, transcripts and participants for manual inspection.
// @Tags         Debug
// @Produce      json
// @Success      200  {object}  reportDTO.TestDataResponse
// @Failure      500  {object}  map[string]interface{}  "Database error"
// @Router       /test-data [get]
func (h *Report) TestData(c echo.Context) error {
	data, err := h.svc.TestData(c.Request().Context(), testDataLimit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTestDataResponse(data))
}

// bindJSON binds a JSON body and rejects an empty one
func bindJSON(c echo.Context, v interface{}) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return io.EOF
	}
	if ct := req.Header.Get(echo.HeaderContentType); ct != "" && !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		return echo.ErrUnsupportedMediaType
	}
	return c.Bind(v)
}

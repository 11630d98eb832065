package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	reportDTO "github.com/veritasai/veritas-backend/internal/adapter/dto/report"
	"github.com/veritasai/veritas-backend/pkg/config"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	reportHandler *Report
	db            Pinger
}

// NewRouter creates a new router with all handlers. db may be nil.
func NewRouter(cfg *config.Config, reportHandler *Report, db Pinger) *Router {
	return &Router{
		cfg:           cfg,
		reportHandler: reportHandler,
		db:            db,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.status)
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	rt.setupReportRoutes(e)
}

// setupReportRoutes configures report and delivery routes
func (rt *Router) setupReportRoutes(e *echo.Echo) {
	if rt.reportHandler == nil {
		e.POST("/generate-mock-report", rt.notImplemented)
		e.POST("/craft-email", rt.notImplemented)
		e.POST("/send-pending-emails", rt.notImplemented)
		e.POST("/generate-live-report", rt.notImplemented)
		e.GET("/test-data", rt.notImplemented)
		return
	}

	e.POST("/generate-mock-report", rt.reportHandler.GenerateMockReport)
	e.POST("/craft-email", rt.reportHandler.CraftEmail)
	e.POST("/send-pending-emails", rt.reportHandler.SendPendingEmails)
	e.POST("/generate-live-report", rt.reportHandler.GenerateLiveReport)
	e.GET("/test-data", rt.reportHandler.TestData)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// status godoc
// @Summary  Service status
// @Tags     System
// @Produce  json
// @Success  200  {object}  reportDTO.StatusResponse
// @Router   / [get]
func (rt *Router) status(c echo.Context) error {
	return c.JSON(http.StatusOK, reportDTO.StatusResponse{
		Message:     "Veritas AI Backend is running.",
		Version:     rt.cfg.Server.Version,
		Environment: rt.cfg.Server.Environment,
	})
}

// healthCheck returns health status
// @Summary  Health check
// @Tags     System
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Failure  503  {object}  map[string]interface{}
// @Router   /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	body := map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"time":        time.Now().UTC().Format(time.RFC3339),
	}
	if rt.db == nil {
		return c.JSON(http.StatusOK, body)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()
	if err := rt.db.PingContext(ctx); err != nil {
		body["status"] = "degraded"
		body["database"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	body["database"] = "ok"
	return c.JSON(http.StatusOK, body)
}

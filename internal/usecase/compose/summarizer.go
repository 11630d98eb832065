package compose

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veritasai/veritas-backend/internal/infrastructure/metrics"
)

// Completer is a chat completion backend
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Composer builds one recipient's email
type Composer interface {
	Compose(ctx context.Context, req Request) Content
}

// Summarizer composes emails with a language model and falls back to the
// Renderer on any failure. It never returns an error.
type Summarizer struct {
	completer Completer
	renderer  *Renderer
	signature Signature
	logger    *zap.Logger
}

// NewSummarizer creates a summarizer. A nil completer means every email is
// rendered from the template.
func NewSummarizer(completer Completer, renderer *Renderer, logger *zap.Logger) *Summarizer {
	if renderer == nil {
		renderer = NewRenderer(DefaultSignature, nil)
	}
	return &Summarizer{
		completer: completer,
		renderer:  renderer,
		signature: renderer.signature,
		logger:    logger,
	}
}

// Compose returns model generated content, or the rendered template when the
// model is unavailable, errors, or replies with nothing usable.
func (s *Summarizer) Compose(ctx context.Context, req Request) Content {
	if s.completer == nil {
		return s.fallback(req, "model not configured", nil)
	}

	start := time.Now()
	reply, err := s.completer.Complete(ctx, systemPrompt, buildPrompt(req, s.signature))
	if err != nil {
		metrics.CompletionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return s.fallback(req, "completion failed", err)
	}
	metrics.CompletionDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	body := stripCodeFence(reply)
	if strings.TrimSpace(body) == "" {
		return s.fallback(req, "empty completion", nil)
	}

	metrics.EmailsComposed.WithLabelValues(metrics.SourceAI).Inc()
	return Content{
		Subject:  Subject(req.MeetingTitle, req.RecipientName),
		HTMLBody: body,
	}
}

func (s *Summarizer) fallback(req Request, reason string, err error) Content {
	if s.logger != nil {
		fields := []zap.Field{
			zap.String("recipient", req.RecipientName),
			zap.String("reason", reason),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
			s.logger.Warn("⚠️ Falling back to template summary", fields...)
		} else {
			s.logger.Debug("Using template summary", fields...)
		}
	}
	metrics.EmailsComposed.WithLabelValues(metrics.SourceTemplate).Inc()
	return s.renderer.Render(req)
}

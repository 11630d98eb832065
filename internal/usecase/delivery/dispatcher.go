package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/domain/repositories"
	"github.com/veritasai/veritas-backend/internal/infrastructure/cache"
	"github.com/veritasai/veritas-backend/internal/infrastructure/external/webhook"
	"github.com/veritasai/veritas-backend/internal/infrastructure/metrics"
)

const (
	lockKey = "veritas:dispatch-pending"

	msgNothingPending = "No pending emails to send"
	msgInProgress     = "dispatch already in progress"
	msgLockLost       = "dispatch stopped, lock lost"
)

// Sender relays a single email to the outbound channel
type Sender interface {
	Send(ctx context.Context, msg webhook.Message) error
}

// Locker serializes dispatch runs. Acquire returns cache.ErrLockHeld when
// another run holds the lock.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (cache.Lease, error)
}

// Result summarizes one dispatch run. InProgress is set when another run
// held the lock and nothing was sent. LeftQueued counts emails the caller
// just queued that were left for a later run.
type Result struct {
	SentCount   int    `json:"sent_count"`
	FailedCount int    `json:"failed_count"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
	InProgress  bool   `json:"in_progress,omitempty"`
	LeftQueued  int    `json:"left_queued,omitempty"`
}

// Dispatcher drains pending emails through the Sender
type Dispatcher struct {
	emails  repositories.EmailRepository
	sender  Sender
	locker  Locker
	lockTTL time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewDispatcher creates a dispatcher. locker may be nil, in which case runs
// are not serialized.
func NewDispatcher(
	emails repositories.EmailRepository,
	sender Sender,
	locker Locker,
	lockTTL time.Duration,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		emails:  emails,
		sender:  sender,
		locker:  locker,
		lockTTL: lockTTL,
		logger:  logger,
		now:     time.Now,
	}
}

// DispatchPending sends every pending email once and records the outcome on
// each row. Failures are reported in the Result, never returned.
//
// The run ignores cancellation of ctx: a row handed to the webhook must have
// its status written, otherwise the next run posts it again. Each send is
// bounded by the webhook client's own timeout.
func (d *Dispatcher) DispatchPending(ctx context.Context) Result {
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	defer func() { metrics.DispatchDuration.Observe(time.Since(start).Seconds()) }()

	var lease cache.Lease
	if d.locker != nil {
		l, err := d.locker.Acquire(ctx, lockKey, d.lockTTL)
		switch {
		case errors.Is(err, cache.ErrLockHeld):
			d.logger.Info("Dispatch skipped, another run holds the lock")
			return Result{Message: msgInProgress, InProgress: true}
		case err != nil:
			// Lock backend down: proceed unserialized rather than stall delivery.
			d.logger.Warn("Dispatch lock unavailable", zap.Error(err))
		default:
			lease = l
			defer func() {
				if err := lease.Release(ctx); err != nil {
					d.logger.Warn("Failed to release dispatch lock", zap.Error(err))
				}
			}()
		}
	}

	pending, err := d.emails.ListPending(ctx)
	if err != nil {
		d.logger.Error("Failed to list pending emails", zap.Error(err))
		return Result{
			Message: "Failed to send pending emails",
			Error:   err.Error(),
		}
	}
	if len(pending) == 0 {
		return Result{Message: msgNothingPending}
	}

	var result Result
	for _, email := range pending {
		if lease != nil {
			if err := lease.Extend(ctx, d.lockTTL); err != nil {
				if errors.Is(err, cache.ErrLockLost) {
					// Another run may already own the remaining rows.
					d.logger.Error("Dispatch lock lost, leaving remaining emails pending",
						zap.Int("remaining", len(pending)-result.SentCount-result.FailedCount),
					)
					result.Message = fmt.Sprintf("%s. Sent: %d, Failed: %d", msgLockLost, result.SentCount, result.FailedCount)
					result.Error = err.Error()
					return result
				}
				d.logger.Warn("Failed to extend dispatch lock", zap.Error(err))
			}
		}

		if d.deliver(ctx, email) {
			result.SentCount++
		} else {
			result.FailedCount++
		}
	}

	result.Message = fmt.Sprintf("Email sending completed. Sent: %d, Failed: %d", result.SentCount, result.FailedCount)
	d.logger.Info("Dispatch finished",
		zap.Int("sent", result.SentCount),
		zap.Int("failed", result.FailedCount),
	)
	return result
}

// deliver sends one email and persists its final status
func (d *Dispatcher) deliver(ctx context.Context, email *entities.EmailNotification) bool {
	log := d.logger.With(
		zap.String("email_id", email.ID.String()),
		zap.String("recipient", email.RecipientEmail),
	)

	sendErr := d.sender.Send(ctx, webhook.Message{
		To:      email.RecipientEmail,
		From:    email.FromEmail,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
	})

	if sendErr == nil {
		if err := d.emails.MarkSent(ctx, email.ID, d.now()); err != nil {
			log.Error("Email relayed but status update failed", zap.Error(err))
		}
		metrics.EmailsDispatched.WithLabelValues(string(entities.EmailStatusSent)).Inc()
		log.Debug("Email sent")
		return true
	}

	if err := d.emails.MarkFailed(ctx, email.ID, sendErr.Error()); err != nil {
		log.Error("Failed to record delivery failure", zap.Error(err))
	}
	metrics.EmailsDispatched.WithLabelValues(string(entities.EmailStatusFailed)).Inc()
	log.Warn("Email delivery failed", zap.Error(sendErr))
	return false
}

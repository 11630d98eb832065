package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestJobBegin(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "mock_report", time.Minute)
	defer cancel()

	meta := GetJobMetadata(ctx)
	assert.NotEqual(t, uuid.Nil, meta.JobID)
	assert.Equal(t, "mock_report", meta.JobType)
	assert.False(t, meta.StartTime.IsZero())

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestJobBegin_DefaultTimeout(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "live_report", 0)
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, 5*time.Second)
}

func TestLogger_AddsJobFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := JobBegin(context.Background(), "craft_email", time.Minute)
	defer cancel()

	Logger(ctx, zap.New(core)).Info("hello")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "craft_email", fields["job_type"])
		assert.NotEmpty(t, fields["job_id"])
	}
}

func TestLogger_OutsideJob(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, Logger(context.Background(), base))
	assert.Zero(t, Elapsed(context.Background()))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), true},
		{errors.New("FATAL: the database system is starting up (SQLSTATE 57P03)"), true},
		{context.DeadlineExceeded, true},
		{errors.New("password authentication failed for user \"postgres\""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryableError(tt.err), "%v", tt.err)
	}
}

package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLockHeld is returned when a lock is owned by someone else
	ErrLockHeld = errors.New("lock already held")
	// ErrLockLost is returned when extending a lock that expired or changed hands
	ErrLockLost = errors.New("lock no longer held")
)

// Lease is a held lock. Extend pushes its expiration ttl into the future.
type Lease interface {
	Extend(ctx context.Context, ttl time.Duration) error
	Release(ctx context.Context) error
}

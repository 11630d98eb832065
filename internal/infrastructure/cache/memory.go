package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a simple in-memory key-value store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired(5 * time.Minute)

	return store
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

// SetNX stores the value only if the key is absent or expired
func (ms *MemoryStore) SetNX(key, value string, expiration time.Duration) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if item, ok := ms.items[key]; ok && ms.now().Before(item.expireTime) {
		return false
	}
	ms.items[key] = &memoryItem{
		value:      value,
		expireTime: ms.now().Add(expiration),
	}
	return true
}

// Get retrieves a value by key (returns empty string if not found or expired)
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists {
		return "", false
	}

	// Check if expired
	if ms.now().After(item.expireTime) {
		return "", false
	}

	return item.value, true
}

// DeleteIfEquals removes the key only while it still holds value
func (ms *MemoryStore) DeleteIfEquals(key, value string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.items[key]
	if !ok || item.value != value {
		return false
	}
	delete(ms.items, key)
	return true
}

// ExpireIfEquals resets the key's expiration only while it still holds
// value and has not expired
func (ms *MemoryStore) ExpireIfEquals(key, value string, expiration time.Duration) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.items[key]
	if !ok || item.value != value || !ms.now().Before(item.expireTime) {
		return false
	}
	item.expireTime = ms.now().Add(expiration)
	return true
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := ms.now()
			for key, item := range ms.items {
				if now.After(item.expireTime) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}

// MemoryLocker is a process-local lock used when Redis is not configured
type MemoryLocker struct {
	store *MemoryStore
}

// NewMemoryLocker creates a locker backed by the given store
func NewMemoryLocker(store *MemoryStore) *MemoryLocker {
	return &MemoryLocker{store: store}
}

// Acquire takes the lock for ttl. It returns ErrLockHeld when another holder
// owns it.
func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	token := uuid.NewString()
	if !l.store.SetNX(key, token, ttl) {
		return nil, ErrLockHeld
	}
	return &memoryLease{store: l.store, key: key, token: token}, nil
}

type memoryLease struct {
	store *MemoryStore
	key   string
	token string
}

func (l *memoryLease) Extend(_ context.Context, ttl time.Duration) error {
	if !l.store.ExpireIfEquals(l.key, l.token, ttl) {
		return ErrLockLost
	}
	return nil
}

func (l *memoryLease) Release(context.Context) error {
	l.store.DeleteIfEquals(l.key, l.token)
	return nil
}

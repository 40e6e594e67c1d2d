package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// MemoryStore keeps session snapshots in process memory with expiration.
// Snapshots are stored encoded so callers never share slices with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	now   func() time.Time
	done  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	value      []byte
	expireTime time.Time
}

var _ repositories.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		now:   time.Now,
		done:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired(5 * time.Minute)

	return store
}

// Save stores a snapshot with expiration
func (ms *MemoryStore) Save(_ context.Context, snapshot *entities.SessionSnapshot, ttl time.Duration) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[snapshot.ID] = &memoryItem{
		value:      value,
		expireTime: ms.now().Add(ttl),
	}
	return nil
}

// Load retrieves a snapshot by session id
func (ms *MemoryStore) Load(_ context.Context, id string) (*entities.SessionSnapshot, error) {
	ms.mu.RLock()
	item, exists := ms.items[id]
	ms.mu.RUnlock()

	if !exists || ms.now().After(item.expireTime) {
		return nil, entities.ErrSnapshotNotFound
	}

	var snapshot entities.SessionSnapshot
	if err := json.Unmarshal(item.value, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	return &snapshot, nil
}

// Touch resets a snapshot's expiration
func (ms *MemoryStore) Touch(_ context.Context, id string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, exists := ms.items[id]
	now := ms.now()
	if !exists || now.After(item.expireTime) {
		return entities.ErrSnapshotNotFound
	}
	item.expireTime = now.Add(ttl)
	return nil
}

// Delete removes a snapshot
func (ms *MemoryStore) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, id)
	return nil
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	ms.once.Do(func() { close(ms.done) })
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.done:
			return
		case <-ticker.C:
			ms.removeExpired()
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
		}
	}
}

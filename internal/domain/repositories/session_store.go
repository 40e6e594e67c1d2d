package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// SessionStore persists recording session snapshots between requests
type SessionStore interface {
	// Save stores the snapshot, replacing any previous one, for ttl
	Save(ctx context.Context, snapshot *entities.SessionSnapshot, ttl time.Duration) error

	// Load retrieves a snapshot, entities.ErrSnapshotNotFound when absent or expired
	Load(ctx context.Context, id string) (*entities.SessionSnapshot, error)

	// Touch extends a snapshot's lifetime to ttl without rewriting it,
	// entities.ErrSnapshotNotFound when absent or expired
	Touch(ctx context.Context, id string, ttl time.Duration) error

	// Delete removes a snapshot
	Delete(ctx context.Context, id string) error
}

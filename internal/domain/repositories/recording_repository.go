package repositories

import (
	"context"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// RecordingRepository defines the interface for recording metadata
type RecordingRepository interface {
	// Upsert creates or replaces the row keyed by (owner, sentence_id)
	Upsert(ctx context.Context, recording *entities.Recording) error

	// DeleteByKey removes the recording for a contributor and sentence
	DeleteByKey(ctx context.Context, key entities.RecordingKey) error

	// ListSentenceIDs returns the sentence IDs recorded by a contributor
	ListSentenceIDs(ctx context.Context, owner string) ([]uint, error)

	// List retrieves recordings, restricted to ids when ids is not empty
	List(ctx context.Context, ids []uint) ([]*entities.Recording, error)

	// CountByOwner returns the number of recordings per owner
	CountByOwner(ctx context.Context) ([]entities.OwnerCount, error)
}

package repositories

import (
	"context"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// SentenceRepository defines the interface for the reading script
type SentenceRepository interface {
	// List retrieves all sentences ordered by ID ascending
	List(ctx context.Context) ([]*entities.Sentence, error)

	// Count returns the number of sentences
	Count(ctx context.Context) (int64, error)

	// CreateBatch inserts sentences, keeping the IDs they carry
	CreateBatch(ctx context.Context, sentences []*entities.Sentence) error
}

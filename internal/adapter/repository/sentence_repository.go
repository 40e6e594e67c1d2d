package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// sentenceRepository implements the SentenceRepository interface
type sentenceRepository struct {
	db *gorm.DB
}

// NewSentenceRepository creates a new sentence repository
func NewSentenceRepository(db *gorm.DB) repositories.SentenceRepository {
	return &sentenceRepository{db: db}
}

// List retrieves all sentences ordered by ID ascending
func (r *sentenceRepository) List(ctx context.Context) ([]*entities.Sentence, error) {
	var sentences []*entities.Sentence
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&sentences).Error; err != nil {
		return nil, fmt.Errorf("failed to list sentences: %w", err)
	}
	return sentences, nil
}

// Count returns the number of sentences
func (r *sentenceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Sentence{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count sentences: %w", err)
	}
	return total, nil
}

// CreateBatch inserts sentences, updating the text of IDs that already exist
func (r *sentenceRepository) CreateBatch(ctx context.Context, sentences []*entities.Sentence) error {
	if len(sentences) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text"}),
		}).
		Create(&sentences).Error
	if err != nil {
		return fmt.Errorf("failed to create sentences: %w", err)
	}
	return nil
}

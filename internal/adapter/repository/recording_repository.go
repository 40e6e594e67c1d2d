package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// recordingRepository handles recording metadata operations
type recordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository creates a new recording repository
func NewRecordingRepository(db *gorm.DB) repositories.RecordingRepository {
	return &recordingRepository{db: db}
}

// Upsert creates the recording or replaces the row with the same owner and sentence
func (r *recordingRepository) Upsert(ctx context.Context, recording *entities.Recording) error {
	if recording == nil {
		return errors.New("recording cannot be nil")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner"}, {Name: "sentence_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"filename", "sentence", "storage_url", "content_type", "size_bytes", "metadata", "updated_at",
			}),
		}).
		Create(recording).Error
	if err != nil {
		return fmt.Errorf("failed to upsert recording: %w", err)
	}
	return nil
}

// DeleteByKey removes the recording for a contributor and sentence.
// Deleting a missing row is not an error.
func (r *recordingRepository) DeleteByKey(ctx context.Context, key entities.RecordingKey) error {
	err := r.db.WithContext(ctx).
		Where("owner = ? AND sentence_id = ?", key.Contributor, key.SentenceID).
		Delete(&entities.Recording{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}

// ListSentenceIDs returns the sentence IDs recorded by a contributor
func (r *recordingRepository) ListSentenceIDs(ctx context.Context, owner string) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&entities.Recording{}).
		Where("owner = ?", owner).
		Distinct("sentence_id").
		Order("sentence_id ASC").
		Pluck("sentence_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list recorded sentences: %w", err)
	}
	return ids, nil
}

// List retrieves recordings, restricted to ids when ids is not empty
func (r *recordingRepository) List(ctx context.Context, ids []uint) ([]*entities.Recording, error) {
	var recordings []*entities.Recording
	query := r.db.WithContext(ctx).Order("owner ASC, sentence_id ASC")
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if err := query.Find(&recordings).Error; err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	return recordings, nil
}

// CountByOwner returns the number of recordings per owner
func (r *recordingRepository) CountByOwner(ctx context.Context) ([]entities.OwnerCount, error) {
	var counts []entities.OwnerCount
	if err := r.db.WithContext(ctx).
		Model(&entities.Recording{}).
		Select("owner, COUNT(*) AS count").
		Group("owner").
		Order("owner ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count recordings by owner: %w", err)
	}
	return counts, nil
}

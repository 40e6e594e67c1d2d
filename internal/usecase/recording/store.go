package recording

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/storage"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

// Store pairs audio blobs with their metadata rows. The blob key and the
// row's filename are both derived from (contributor, sentence).
type Store struct {
	blobs      repositories.BlobStore
	recordings repositories.RecordingRepository
	extension  string
}

var _ session.RecordingStore = (*Store)(nil)

// NewStore creates a recording store
func NewStore(blobs repositories.BlobStore, recordings repositories.RecordingRepository, extension string) *Store {
	return &Store{
		blobs:      blobs,
		recordings: recordings,
		extension:  extension,
	}
}

// Key returns the blob key of a recording
func (s *Store) Key(contributor string, sentenceID uint) string {
	return storage.RecordingKey(contributor, sentenceID, s.extension)
}

// ListCompleted returns the sentences the contributor has a recording for
func (s *Store) ListCompleted(ctx context.Context, contributor string) ([]uint, error) {
	return s.recordings.ListSentenceIDs(ctx, contributor)
}

// PutBlob uploads audio, overwriting the previous take at the same key
func (s *Store) PutBlob(ctx context.Context, contributor string, sentenceID uint, data []byte, contentType string) error {
	key := s.Key(contributor, sentenceID)
	if err := s.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return fmt.Errorf("failed to upload recording: %w", err)
	}
	return nil
}

// DeleteBlob removes the audio of a recording
func (s *Store) DeleteBlob(ctx context.Context, contributor string, sentenceID uint) error {
	if err := s.blobs.Delete(ctx, s.Key(contributor, sentenceID)); err != nil {
		return fmt.Errorf("failed to delete recording audio: %w", err)
	}
	return nil
}

// GetBlobURL returns the public URL of a stored recording
func (s *Store) GetBlobURL(ctx context.Context, contributor string, sentenceID uint) (string, error) {
	key := s.Key(contributor, sentenceID)
	exists, err := s.blobs.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check recording audio: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", entities.ErrBlobNotFound, key)
	}
	return s.blobs.URL(key), nil
}

// PutMetadata upserts the metadata row of a recording
func (s *Store) PutMetadata(ctx context.Context, meta session.Metadata) error {
	extra, err := json.Marshal(map[string]string{
		"key": s.Key(meta.Contributor, meta.SentenceID),
	})
	if err != nil {
		return fmt.Errorf("failed to encode recording metadata: %w", err)
	}

	recording := &entities.Recording{
		Owner:       meta.Contributor,
		Filename:    storage.RecordingFilename(meta.SentenceID, s.extension),
		SentenceID:  meta.SentenceID,
		Sentence:    meta.SentenceText,
		StorageURL:  meta.BlobURL,
		ContentType: meta.ContentType,
		SizeBytes:   meta.SizeBytes,
		Metadata:    datatypes.JSON(extra),
	}
	return s.recordings.Upsert(ctx, recording)
}

// DeleteMetadata removes the metadata row of a recording
func (s *Store) DeleteMetadata(ctx context.Context, contributor string, sentenceID uint) error {
	return s.recordings.DeleteByKey(ctx, entities.RecordingKey{Contributor: contributor, SentenceID: sentenceID})
}

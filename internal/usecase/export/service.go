package export

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

const (
	// DatasetPath is the archive path of the metadata document
	DatasetPath = "json/dataset.json"
	audioDir    = "audio"

	defaultConcurrency = 8
)

// ErrNoRecordings is returned when the selection matches nothing
var ErrNoRecordings = errors.New("no recordings selected")

// Result describes a finished archive
type Result struct {
	Included int      `json:"included"`
	Skipped  []string `json:"skipped,omitempty"`
}

// Service builds zip archives of the dataset
type Service struct {
	recordings  repositories.RecordingRepository
	blobs       repositories.BlobStore
	concurrency int
	logger      *zap.Logger
}

// NewService creates a new export service
func NewService(recordings repositories.RecordingRepository, blobs repositories.BlobStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		recordings:  recordings,
		blobs:       blobs,
		concurrency: defaultConcurrency,
		logger:      logger,
	}
}

// Prepare loads the selected recordings; an empty ids selects all
func (s *Service) Prepare(ctx context.Context, ids []uint) ([]*entities.Recording, error) {
	recordings, err := s.recordings.List(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(recordings) == 0 {
		return nil, ErrNoRecordings
	}
	return recordings, nil
}

// Write streams the archive of recordings to w. Audio is laid out as
// audio/{owner}/{filename} next to json/dataset.json. Audio that cannot be
// fetched is left out and listed in the result.
func (s *Service) Write(ctx context.Context, w io.Writer, recordings []*entities.Recording) (*Result, error) {
	audio, skipped, err := s.fetch(ctx, recordings)
	if err != nil {
		return nil, err
	}

	zw := zip.NewWriter(w)
	modified := time.Now().UTC()

	included := 0
	for i, rec := range recordings {
		if audio[i] == nil {
			continue
		}
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     path.Join(audioDir, rec.Owner, rec.Filename),
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", rec.Filename, err)
		}
		if _, err := f.Write(audio[i]); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", rec.Filename, err)
		}
		included++
	}

	dataset, err := json.MarshalIndent(recordings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:     DatasetPath,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add dataset to archive: %w", err)
	}
	if _, err := f.Write(dataset); err != nil {
		return nil, fmt.Errorf("failed to write dataset to archive: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	result := &Result{Included: included, Skipped: skipped}
	if len(skipped) > 0 {
		s.logger.Warn("export.audio.skipped",
			zap.Int("skipped", len(skipped)),
			zap.Strings("keys", skipped),
		)
	}
	return result, nil
}

// fetch downloads audio concurrently. A failed download leaves a nil slot;
// only cancellation of ctx aborts the whole fetch.
func (s *Service) fetch(ctx context.Context, recordings []*entities.Recording) ([][]byte, []string, error) {
	audio := make([][]byte, len(recordings))
	var (
		mu      sync.Mutex
		skipped []string
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, rec := range recordings {
		// The stored filename is the blob name under the owner prefix
		key := path.Join(rec.Owner, rec.Filename)
		g.Go(func() error {
			data, err := s.blobs.Get(gCtx, key)
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Debug("export.audio.fetch_failed", zap.String("key", key), zap.Error(err))
				mu.Lock()
				skipped = append(skipped, key)
				mu.Unlock()
				return nil
			}
			audio[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("export cancelled: %w", err)
	}
	sort.Strings(skipped)
	return audio, skipped, nil
}

package training

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// ErrTrainerFailed marks failures of the training service itself
var ErrTrainerFailed = errors.New("training service call failed")

// Trainer submits training jobs
type Trainer interface {
	Train(ctx context.Context, owner string) ([]string, error)
}

// Service triggers model training for a contributor's recordings
type Service struct {
	contributors repositories.ContributorRepository
	trainer      Trainer
	logger       *zap.Logger
}

// NewService creates a new training service
func NewService(contributors repositories.ContributorRepository, trainer Trainer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		contributors: contributors,
		trainer:      trainer,
		logger:       logger,
	}
}

// Start validates the contributor and submits a job, returning its log lines
func (s *Service) Start(ctx context.Context, contributor string) ([]string, error) {
	if _, err := s.contributors.FindByName(ctx, contributor); err != nil {
		return nil, err
	}

	logs, err := s.trainer.Train(ctx, contributor)
	if err != nil {
		s.logger.Error("training.start.failed",
			zap.String("contributor", contributor),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: contributor %q: %w", ErrTrainerFailed, contributor, err)
	}

	s.logger.Info("training.started",
		zap.String("contributor", contributor),
		zap.Int("log_lines", len(logs)),
	)
	return logs, nil
}

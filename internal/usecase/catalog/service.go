package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

// Service is the read side of contributors and the reading script
type Service struct {
	contributors repositories.ContributorRepository
	sentences    repositories.SentenceRepository
}

var _ session.Catalog = (*Service)(nil)

// NewService creates a new catalog service
func NewService(contributors repositories.ContributorRepository, sentences repositories.SentenceRepository) *Service {
	return &Service{
		contributors: contributors,
		sentences:    sentences,
	}
}

// ListContributors returns contributors in creation order
func (s *Service) ListContributors(ctx context.Context) ([]*entities.Contributor, error) {
	return s.contributors.List(ctx)
}

// ListSentences returns sentences ordered by id
func (s *Service) ListSentences(ctx context.Context) ([]*entities.Sentence, error) {
	return s.sentences.List(ctx)
}

// ImportInput is a batch of catalog entries to load
type ImportInput struct {
	Contributors []*entities.Contributor
	Sentences    []*entities.Sentence
}

// ImportOutput reports what an import changed
type ImportOutput struct {
	ContributorsCreated int
	ContributorsSkipped int
	Sentences           int
}

// Import creates missing contributors and upserts sentences by id.
// Existing contributors are left untouched.
func (s *Service) Import(ctx context.Context, input ImportInput) (*ImportOutput, error) {
	out := &ImportOutput{}

	for _, c := range input.Contributors {
		_, err := s.contributors.FindByName(ctx, c.Name)
		if err == nil {
			out.ContributorsSkipped++
			continue
		}
		if !errors.Is(err, entities.ErrContributorNotFound) {
			return out, fmt.Errorf("failed to look up contributor %q: %w", c.Name, err)
		}
		if err := s.contributors.Create(ctx, c); err != nil {
			return out, fmt.Errorf("failed to create contributor %q: %w", c.Name, err)
		}
		out.ContributorsCreated++
	}

	if len(input.Sentences) > 0 {
		if err := s.sentences.CreateBatch(ctx, input.Sentences); err != nil {
			return out, fmt.Errorf("failed to import sentences: %w", err)
		}
		out.Sentences = len(input.Sentences)
	}

	return out, nil
}

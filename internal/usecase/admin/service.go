package admin

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
	"github.com/johnquangdev/voice-dataset/pkg/validator"
)

// Service defines the interface for the admin use case
type Service interface {
	// ListContributors retrieves contributors in creation order
	ListContributors(ctx context.Context) ([]*entities.Contributor, error)

	// AddContributor creates a contributor
	AddContributor(ctx context.Context, input AddContributorInput) (*entities.Contributor, error)

	// DeleteContributor removes a contributor. Their recordings are kept.
	DeleteContributor(ctx context.Context, id uint) error

	// Progress returns per-contributor recording progress
	Progress(ctx context.Context) ([]ProgressRow, error)

	// Dashboard returns recording counts grouped by owner
	Dashboard(ctx context.Context) (*DashboardOutput, error)

	// ListRecordings retrieves all recording metadata
	ListRecordings(ctx context.Context) ([]*entities.Recording, error)
}

// AddContributorInput is the input for AddContributor
type AddContributorInput struct {
	Name        string
	DisplayName string
}

// ProgressRow is one line of the progress table
type ProgressRow struct {
	Contributor string  `json:"contributor"`
	DisplayName string  `json:"display_name"`
	Recorded    int     `json:"recorded"`
	Total       int64   `json:"total"`
	Percent     float64 `json:"percent"`
}

// OwnerShare is one owner's slice of the dataset
type OwnerShare struct {
	Owner string  `json:"owner"`
	Count int64   `json:"count"`
	Share float64 `json:"share"`
}

// DashboardOutput is the output of Dashboard
type DashboardOutput struct {
	Total  int64        `json:"total"`
	Owners []OwnerShare `json:"owners"`
}

// AdminService implements Service
type AdminService struct {
	contributors repositories.ContributorRepository
	sentences    repositories.SentenceRepository
	recordings   repositories.RecordingRepository
	logger       *zap.Logger
}

// Ensure AdminService implements Service interface
var _ Service = (*AdminService)(nil)

// NewService creates a new admin service
func NewService(
	contributors repositories.ContributorRepository,
	sentences repositories.SentenceRepository,
	recordings repositories.RecordingRepository,
	logger *zap.Logger,
) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		contributors: contributors,
		sentences:    sentences,
		recordings:   recordings,
		logger:       logger,
	}
}

// ListContributors retrieves contributors in creation order
func (s *AdminService) ListContributors(ctx context.Context) ([]*entities.Contributor, error) {
	return s.contributors.List(ctx)
}

// AddContributor validates and creates a contributor
func (s *AdminService) AddContributor(ctx context.Context, input AddContributorInput) (*entities.Contributor, error) {
	name := strings.TrimSpace(input.Name)
	displayName := strings.TrimSpace(input.DisplayName)

	if !validator.IsContributorID(name) {
		return nil, entities.ErrInvalidContributorName
	}
	if displayName == "" {
		return nil, entities.ErrInvalidDisplayName
	}

	contributor := &entities.Contributor{
		Name:        name,
		DisplayName: displayName,
	}
	if err := s.contributors.Create(ctx, contributor); err != nil {
		return nil, err
	}

	s.logger.Info("admin.contributor.created",
		zap.Uint("id", contributor.ID),
		zap.String("name", contributor.Name),
	)
	return contributor, nil
}

// DeleteContributor removes a contributor by id
func (s *AdminService) DeleteContributor(ctx context.Context, id uint) error {
	contributor, err := s.contributors.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.contributors.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("admin.contributor.deleted",
		zap.Uint("id", id),
		zap.String("name", contributor.Name),
	)
	return nil
}

// Progress computes recorded/total per contributor. Percent is 0 for an empty script.
func (s *AdminService) Progress(ctx context.Context) ([]ProgressRow, error) {
	contributors, err := s.contributors.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.sentences.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ProgressRow, 0, len(contributors))
	for _, c := range contributors {
		ids, err := s.recordings.ListSentenceIDs(ctx, c.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress of %q: %w", c.Name, err)
		}
		rows = append(rows, ProgressRow{
			Contributor: c.Name,
			DisplayName: c.DisplayName,
			Recorded:    len(ids),
			Total:       total,
			Percent:     percent(int64(len(ids)), total),
		})
	}
	return rows, nil
}

// Dashboard returns recording counts grouped by owner with each owner's share
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardOutput, error) {
	counts, err := s.recordings.CountByOwner(ctx)
	if err != nil {
		return nil, err
	}

	out := &DashboardOutput{Owners: make([]OwnerShare, 0, len(counts))}
	for _, c := range counts {
		out.Total += c.Count
	}
	for _, c := range counts {
		out.Owners = append(out.Owners, OwnerShare{
			Owner: c.Owner,
			Count: c.Count,
			Share: percent(c.Count, out.Total),
		})
	}
	return out, nil
}

// ListRecordings retrieves all recording metadata
func (s *AdminService) ListRecordings(ctx context.Context) ([]*entities.Recording, error) {
	return s.recordings.List(ctx, nil)
}

// percent returns part/whole*100 rounded to one decimal place
func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

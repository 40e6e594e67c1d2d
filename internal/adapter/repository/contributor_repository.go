package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// contributorRepository implements the ContributorRepository interface
type contributorRepository struct {
	db *gorm.DB
}

// NewContributorRepository creates a new contributor repository
func NewContributorRepository(db *gorm.DB) repositories.ContributorRepository {
	return &contributorRepository{db: db}
}

// Create creates a new contributor
func (r *contributorRepository) Create(ctx context.Context, contributor *entities.Contributor) error {
	if contributor == nil {
		return errors.New("contributor cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(contributor).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.ErrContributorAlreadyExists
		}
		return fmt.Errorf("failed to create contributor: %w", err)
	}
	return nil
}

// FindByID retrieves a contributor by its ID
func (r *contributorRepository) FindByID(ctx context.Context, id uint) (*entities.Contributor, error) {
	var contributor entities.Contributor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrContributorNotFound
		}
		return nil, fmt.Errorf("failed to find contributor by ID: %w", err)
	}
	return &contributor, nil
}

// FindByName retrieves a contributor by its machine-safe name
func (r *contributorRepository) FindByName(ctx context.Context, name string) (*entities.Contributor, error) {
	var contributor entities.Contributor
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrContributorNotFound
		}
		return nil, fmt.Errorf("failed to find contributor by name: %w", err)
	}
	return &contributor, nil
}

// List retrieves all contributors in creation order
func (r *contributorRepository) List(ctx context.Context) ([]*entities.Contributor, error) {
	var contributors []*entities.Contributor
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&contributors).Error; err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	return contributors, nil
}

// Delete removes a contributor
func (r *contributorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Contributor{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contributor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrContributorNotFound
	}
	return nil
}

// isUniqueViolation recognises duplicate-key errors from postgres and sqlite
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

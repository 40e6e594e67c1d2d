package repositories

import (
	"context"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// ContributorRepository defines the interface for contributor data access
type ContributorRepository interface {
	// Create creates a new contributor
	Create(ctx context.Context, contributor *entities.Contributor) error

	// FindByID retrieves a contributor by its ID
	FindByID(ctx context.Context, id uint) (*entities.Contributor, error)

	// FindByName retrieves a contributor by its machine-safe name
	FindByName(ctx context.Context, name string) (*entities.Contributor, error)

	// List retrieves all contributors in creation order
	List(ctx context.Context) ([]*entities.Contributor, error)

	// Delete removes a contributor
	Delete(ctx context.Context, id uint) error
}

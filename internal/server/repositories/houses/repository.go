package houses

import (
	"context"

	"github.com/rentafind/rentafind/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, house *models.House) (*models.House, error)
	GetByID(ctx context.Context, id string) (*models.House, error)
	// Search filters by district and/or city; empty strings match everything.
	Search(ctx context.Context, district, city string) ([]*models.House, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.House, error)
	Delete(ctx context.Context, id string) error
	SetHasImage(ctx context.Context, id string, hasImage bool) error
	Districts(ctx context.Context) ([]string, error)
	CitiesByDistrict(ctx context.Context, district string) ([]string, error)
}

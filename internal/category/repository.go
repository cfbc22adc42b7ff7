package category

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, merchantID, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, category *model.Category) error
	// Delete deactivates the category; rows are never removed.
	Delete(ctx context.Context, merchantID, id string) error
}

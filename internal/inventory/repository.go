package inventory

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

type Repository interface {
	GetLevel(ctx context.Context, merchantID, productID string) (*model.StockLevel, error)
	GetLevels(ctx context.Context, merchantID string, productIDs []string) ([]model.StockLevel, error)

	// ApplyMovement sets the product's stock to movement.QuantityAfter and
	// records the movement in one transaction.
	ApplyMovement(ctx context.Context, movement *model.StockMovement) error
	// HasMovement reports whether a movement for productID with the given
	// reference was already recorded.
	HasMovement(ctx context.Context, merchantID, productID, referenceType, referenceID string) (bool, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

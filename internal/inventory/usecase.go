package inventory

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrNotManaged        = errors.New("product does not manage stock")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ReferenceSale marks movements caused by a checkout.
const ReferenceSale = "sale"

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockLevel, error)
	// DeductForSale removes the sold quantities of stock-managed products.
	// Replaying the same sale is a no-op.
	DeductForSale(ctx context.Context, merchantID, saleID string, lines []event.StockLine) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

package sale

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/dto"
)

type Repository interface {
	// Create writes the sale, its items and its delivery info in one
	// transaction.
	Create(ctx context.Context, sale *model.Sale) error
	// FindByID loads the sale with items and delivery info.
	FindByID(ctx context.Context, merchantID, id string) (*model.Sale, error)
	FindAll(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	// FindByStatuses loads matching sales with items and delivery info,
	// oldest first.
	FindByStatuses(ctx context.Context, merchantID string, statuses []orderstatus.Status) ([]model.Sale, error)
	UpdateStatus(ctx context.Context, merchantID, id string, status orderstatus.Status) error
}

package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/dto"
)

var (
	ErrNotFound         = errors.New("sale not found")
	ErrEmptySale        = errors.New("sale has no items")
	ErrDeliveryRequired = errors.New("delivery sale without delivery info")
	ErrProductNotFound  = errors.New("sold product not found")
)

// InactiveProductError refuses a checkout line whose product is disabled.
type InactiveProductError struct {
	Name string
}

func (e *InactiveProductError) Error() string {
	return fmt.Sprintf("product %q is inactive", e.Name)
}

type UseCase interface {
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Sale, error)
	// GetSale returns the sale with composite items expanded.
	GetSale(ctx context.Context, merchantID, id string) (*model.Sale, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	ListPendingOrders(ctx context.Context, merchantID string) ([]model.Sale, error)
	// SetStatus persists the new status and only then reflects it in the
	// returned sale.
	SetStatus(ctx context.Context, merchantID, id string, status orderstatus.Status) (*model.Sale, error)
}

package product

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrSKUExists      = errors.New("sku already exists")
	ErrBarcodeExists  = errors.New("barcode already exists")
	ErrNotComposition = errors.New("product is not a composition")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, merchantID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	SearchProducts(ctx context.Context, merchantID, query string, limit int) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, merchantID, id string) error

	// Composition editing on a stored product.
	AddComponent(ctx context.Context, merchantID, productID, componentID string, qty decimal.Decimal) (*model.Product, error)
	RemoveComponent(ctx context.Context, merchantID, productID, componentID string) (*model.Product, error)
	SetComponentQuantity(ctx context.Context, merchantID, productID, componentID string, qty decimal.Decimal) (*model.Product, error)
	SearchComponentCandidates(ctx context.Context, filters *dto.CandidateFilters) ([]model.Product, error)

	LookupPrice(ctx context.Context, merchantID, code string) (*model.Product, error)

	Catalog
}

// Catalog is the read side other modules price and expand sales with.
type Catalog interface {
	FindProducts(ctx context.Context, merchantID string, ids []string) (map[string]model.Product, error)
	ComponentsOf(ctx context.Context, merchantID string, parentIDs []string) (map[string][]model.Component, error)
}

package product

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
)

type Repository interface {
	// Create and Update write the product row and replace its component
	// relations in one transaction. A nil relations slice clears them.
	Create(ctx context.Context, product *model.Product, relations []model.ComponentRelation) error
	Update(ctx context.Context, product *model.Product, relations []model.ComponentRelation) error

	FindByID(ctx context.Context, merchantID, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, merchantID string, ids []string) ([]model.Product, error)
	// FindByCode matches an active product by barcode first, then SKU.
	FindByCode(ctx context.Context, merchantID, code string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindRelations(ctx context.Context, parentIDs []string) ([]model.ComponentRelation, error)
	// FindParentIDs lists the active compositions of merchantID that use
	// componentID.
	FindParentIDs(ctx context.Context, merchantID, componentID string) ([]string, error)
	FindCandidates(ctx context.Context, filters *dto.CandidateFilters) ([]model.Product, error)
	Delete(ctx context.Context, merchantID, id string) error

	IsSKUUnique(ctx context.Context, merchantID, sku, excludeID string) (bool, error)
	IsBarcodeUnique(ctx context.Context, merchantID, barcode, excludeID string) (bool, error)
}

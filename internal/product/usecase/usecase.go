package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/composition"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/search"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

// Cache is the slice of the Redis client the catalog needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Searcher is the slice of the Elasticsearch client the catalog needs.
type Searcher interface {
	Index(ctx context.Context, index, id string, doc interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
	Delete(ctx context.Context, index, id string) error
}

type productUseCase struct {
	repo   product.Repository
	cache  Cache
	es     Searcher
	logger logger.ZapLogger
	now    func() time.Time
}

// NewProductUseCase builds the catalog. cache and es may be nil, in which
// case lists always hit the database and search falls back to ILIKE.
func NewProductUseCase(repo product.Repository, cache Cache, es Searcher, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
		now:    time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, input.MerchantID, input.SKU, input.Barcode, ""); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := uc.now()

	p := &model.Product{
		BaseModel:     model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		MerchantID:    input.MerchantID,
		CategoryID:    optional(input.CategoryID),
		SKU:           input.SKU,
		Barcode:       optional(input.Barcode),
		Name:          input.Name,
		Description:   optional(input.Description),
		CostPrice:     input.CostPrice,
		IsActive:      true,
		ManageStock:   input.ManageStock,
		OnlineSale:    input.OnlineSale,
		StockQuantity: input.StockQuantity,
		IsComposition: input.IsComposition,
		ImageURL:      optional(input.ImageURL),
	}

	if input.IsComposition {
		components, err := uc.buildComponents(ctx, input.MerchantID, id, input.Components)
		if err != nil {
			return nil, err
		}
		p.Components = components
		p.CostPrice = composition.Cost(components)
	}
	p.SalePrice = salePrice(p, input.SalePrice, input.MarginPercent)

	if err := uc.repo.Create(ctx, p, composition.Relations(p.ID, p.Components)); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, merchantID, id string) (*model.Product, error) {
	p, err := uc.mustFind(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	if p.IsComposition {
		components, err := uc.ComponentsOf(ctx, merchantID, []string{p.ID})
		if err != nil {
			return nil, err
		}
		p.Components = components[p.ID]
		p.CostPrice = composition.Cost(p.Components)
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.SearchQuery != "" {
		if products, count, ok := uc.searchCatalog(ctx, filters.MerchantID, filters.SearchQuery, filters.PageSize, filters.Page); ok {
			return products, count, nil
		}
	}

	cacheKey := listCacheKey(filters)
	if uc.cache != nil {
		var cached cachedList
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
		if hit {
			return cached.Products, cached.Count, nil
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}
	return products, count, nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, merchantID, query string, limit int) ([]model.Product, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if products, count, ok := uc.searchCatalog(ctx, merchantID, query, limit, 1); ok {
		return products, count, nil
	}
	active := true
	return uc.repo.FindAll(ctx, &dto.ProductFilters{
		MerchantID:  merchantID,
		IsActive:    &active,
		SearchQuery: query,
		SortBy:      "name",
		SortOrder:   "asc",
		Page:        1,
		PageSize:    limit,
	})
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	p, err := uc.mustFind(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, input.MerchantID, input.SKU, input.Barcode, p.ID); err != nil {
		return nil, err
	}

	if input.IsComposition && !p.IsComposition {
		parents, err := uc.repo.FindParentIDs(ctx, input.MerchantID, p.ID)
		if err != nil {
			return nil, err
		}
		if len(parents) > 0 {
			return nil, composition.ErrNestedComposition
		}
	}

	previousCost := p.CostPrice
	p.CategoryID = optional(input.CategoryID)
	p.SKU = input.SKU
	p.Barcode = optional(input.Barcode)
	p.Name = input.Name
	p.Description = optional(input.Description)
	p.CostPrice = input.CostPrice
	p.IsActive = input.IsActive
	p.ManageStock = input.ManageStock
	p.OnlineSale = input.OnlineSale
	p.IsComposition = input.IsComposition
	p.ImageURL = optional(input.ImageURL)
	p.Components = nil

	// Switching a composition back to a simple product drops its relations.
	if input.IsComposition {
		components, err := uc.buildComponents(ctx, input.MerchantID, p.ID, input.Components)
		if err != nil {
			return nil, err
		}
		p.Components = components
		p.CostPrice = composition.Cost(components)
	}
	p.SalePrice = salePrice(p, input.SalePrice, input.MarginPercent)
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p, composition.Relations(p.ID, p.Components)); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, p)
	if !p.IsComposition && !p.CostPrice.Equal(previousCost) {
		uc.refreshParents(ctx, p.MerchantID, p.ID)
	}
	return p, nil
}

// refreshParents rewrites the stored cost of every composition that uses
// componentID. Failures are logged; reads derive the cost anyway.
func (uc *productUseCase) refreshParents(ctx context.Context, merchantID, componentID string) {
	parents, err := uc.repo.FindParentIDs(ctx, merchantID, componentID)
	if err != nil {
		uc.logger.Error("failed to find parent compositions", zap.String("product_id", componentID), zap.Error(err))
		return
	}
	for _, parentID := range parents {
		if err := uc.refreshCost(ctx, merchantID, parentID); err != nil {
			uc.logger.Error("failed to refresh composition cost",
				zap.String("product_id", parentID),
				zap.String("component_id", componentID),
				zap.Error(err))
		}
	}
}

func (uc *productUseCase) refreshCost(ctx context.Context, merchantID, parentID string) error {
	stored, err := uc.mustFind(ctx, merchantID, parentID)
	if err != nil {
		return err
	}
	components, err := uc.ComponentsOf(ctx, merchantID, []string{parentID})
	if err != nil {
		return err
	}
	list := components[parentID]
	cost := composition.Cost(list)
	if cost.Equal(stored.CostPrice) {
		return nil
	}

	if stored.SalePrice.Equal(stored.CostPrice) {
		stored.SalePrice = cost
	}
	stored.CostPrice = cost
	stored.Components = list
	stored.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, stored, composition.Relations(parentID, list)); err != nil {
		return err
	}
	uc.afterWrite(ctx, stored)
	return nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, merchantID, id string) error {
	p, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	if err := uc.repo.Delete(ctx, merchantID, id); err != nil {
		return err
	}

	uc.invalidateListCache(ctx, merchantID)
	if uc.es != nil {
		if err := uc.es.Delete(ctx, searchIndex, id); err != nil {
			uc.logger.Error("failed to delete product from index", zap.String("product_id", id), zap.Error(err))
		}
	}
	return nil
}

func (uc *productUseCase) AddComponent(ctx context.Context, merchantID, productID, componentID string, qty decimal.Decimal) (*model.Product, error) {
	return uc.editComposition(ctx, merchantID, productID, func(list []model.Component) ([]model.Component, error) {
		if componentID == productID {
			return list, composition.ErrSelfReference
		}
		candidate, err := uc.mustFind(ctx, merchantID, componentID)
		if err != nil {
			return list, err
		}
		return composition.Add(list, *candidate, qty)
	})
}

func (uc *productUseCase) RemoveComponent(ctx context.Context, merchantID, productID, componentID string) (*model.Product, error) {
	return uc.editComposition(ctx, merchantID, productID, func(list []model.Component) ([]model.Component, error) {
		return composition.Remove(list, componentID), nil
	})
}

func (uc *productUseCase) SetComponentQuantity(ctx context.Context, merchantID, productID, componentID string, qty decimal.Decimal) (*model.Product, error) {
	return uc.editComposition(ctx, merchantID, productID, func(list []model.Component) ([]model.Component, error) {
		return composition.SetQuantity(list, componentID, qty)
	})
}

// editComposition applies edit to the current component list and persists
// the result together with the recomputed cost. The sale price moves with
// the cost only while it still equals the previous cost.
func (uc *productUseCase) editComposition(ctx context.Context, merchantID, productID string, edit func([]model.Component) ([]model.Component, error)) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsComposition {
		return nil, product.ErrNotComposition
	}

	list, err := edit(p.Components)
	if err != nil {
		return nil, err
	}

	previousCost := p.CostPrice
	p.Components = list
	p.CostPrice = composition.Cost(list)
	if p.SalePrice.Equal(previousCost) {
		p.SalePrice = composition.SalePrice(list, nil)
	}
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p, composition.Relations(p.ID, list)); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *productUseCase) SearchComponentCandidates(ctx context.Context, filters *dto.CandidateFilters) ([]model.Product, error) {
	return uc.repo.FindCandidates(ctx, filters)
}

func (uc *productUseCase) LookupPrice(ctx context.Context, merchantID, code string) (*model.Product, error) {
	p, err := uc.repo.FindByCode(ctx, merchantID, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) FindProducts(ctx context.Context, merchantID string, ids []string) (map[string]model.Product, error) {
	products, err := uc.repo.FindByIDs(ctx, merchantID, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (uc *productUseCase) ComponentsOf(ctx context.Context, merchantID string, parentIDs []string) (map[string][]model.Component, error) {
	relations, err := uc.repo.FindRelations(ctx, parentIDs)
	if err != nil {
		return nil, err
	}
	products, err := uc.FindProducts(ctx, merchantID, composition.ComponentIDs(relations))
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]model.ComponentRelation)
	for _, r := range relations {
		byParent[r.ParentProductID] = append(byParent[r.ParentProductID], r)
	}
	out := make(map[string][]model.Component, len(byParent))
	for parentID, rels := range byParent {
		out[parentID] = composition.Join(rels, products)
	}
	return out, nil
}

// buildComponents resolves component inputs through the composition rules.
func (uc *productUseCase) buildComponents(ctx context.Context, merchantID, parentID string, inputs []dto.ComponentInput) ([]model.Component, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == parentID {
			return nil, composition.ErrSelfReference
		}
		ids = append(ids, in.ProductID)
	}
	products, err := uc.FindProducts(ctx, merchantID, ids)
	if err != nil {
		return nil, err
	}

	var list []model.Component
	for _, in := range inputs {
		candidate, ok := products[in.ProductID]
		if !ok {
			return nil, fmt.Errorf("component %s: %w", in.ProductID, product.ErrNotFound)
		}
		if list, err = composition.Add(list, candidate, in.Quantity); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (uc *productUseCase) checkUnique(ctx context.Context, merchantID, sku, barcode, excludeID string) error {
	unique, err := uc.repo.IsSKUUnique(ctx, merchantID, sku, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return product.ErrSKUExists
	}

	unique, err = uc.repo.IsBarcodeUnique(ctx, merchantID, barcode, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return product.ErrBarcodeExists
	}
	return nil
}

func (uc *productUseCase) mustFind(ctx context.Context, merchantID, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) afterWrite(ctx context.Context, p *model.Product) {
	uc.invalidateListCache(ctx, p.MerchantID)
	uc.syncToIndex(ctx, p)
}

func (uc *productUseCase) invalidateListCache(ctx context.Context, merchantID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, fmt.Sprintf("products:list:%s:*", merchantID)); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.String("merchant_id", merchantID), zap.Error(err))
	}
}

func listCacheKey(filters *dto.ProductFilters) string {
	data, _ := json.Marshal(filters)
	return fmt.Sprintf("products:list:%s:%x", filters.MerchantID, md5.Sum(data))
}

// salePrice derives the stored sale price. A margin wins over an explicit
// price; compositions without either sell at cost.
func salePrice(p *model.Product, explicit decimal.Decimal, margin *decimal.Decimal) decimal.Decimal {
	if margin != nil {
		return money.SalePriceFromMargin(p.CostPrice, *margin).Round(2)
	}
	if p.IsComposition && explicit.IsZero() {
		return composition.SalePrice(p.Components, nil)
	}
	return explicit
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

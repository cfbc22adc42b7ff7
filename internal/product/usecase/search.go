package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// searchIndex holds every merchant's products; queries filter on merchant_id.
const searchIndex = "products"

const searchMapping = `{
	"mappings": {
		"properties": {
			"merchant_id": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"barcode": { "type": "keyword" },
			"sale_price": { "type": "double" },
			"is_active": { "type": "boolean" },
			"is_composition": { "type": "boolean" },
			"updated_at": { "type": "date" }
		}
	}
}`

type indexCreator interface {
	CreateIndex(ctx context.Context, index, mapping string) error
}

// EnsureSearchIndex creates the products index when it does not exist yet.
func EnsureSearchIndex(ctx context.Context, es indexCreator) error {
	return es.CreateIndex(ctx, searchIndex, searchMapping)
}

type searchDocument struct {
	MerchantID    string          `json:"merchant_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	IsActive      bool            `json:"is_active"`
	IsComposition bool            `json:"is_composition"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (uc *productUseCase) syncToIndex(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	doc := searchDocument{
		MerchantID:    p.MerchantID,
		Name:          p.Name,
		Description:   deref(p.Description),
		SKU:           p.SKU,
		Barcode:       deref(p.Barcode),
		SalePrice:     p.SalePrice,
		IsActive:      p.IsActive,
		IsComposition: p.IsComposition,
		UpdatedAt:     p.UpdatedAt,
	}
	if err := uc.es.Index(ctx, searchIndex, p.ID, doc); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

// searchCatalog returns active products matching text, loaded from the
// database in hit order. ok is false when the index is unavailable.
func (uc *productUseCase) searchCatalog(ctx context.Context, merchantID, text string, size, page int) ([]model.Product, int, bool) {
	if uc.es == nil {
		return nil, 0, false
	}
	if size <= 0 {
		size = 20
	}
	if page <= 0 {
		page = 1
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":     text,
							"fields":    []string{"name^3", "sku", "barcode", "description"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"merchant_id": merchantID}},
					{"term": map[string]interface{}{"is_active": true}},
				},
			},
		},
		"from": (page - 1) * size,
		"size": size,
	}

	res, err := uc.es.Search(ctx, searchIndex, q)
	if err != nil {
		uc.logger.Error("product search failed, falling back to database", zap.Error(err))
		return nil, 0, false
	}

	ids := make([]string, len(res.Hits.Hits))
	for i, hit := range res.Hits.Hits {
		ids[i] = hit.ID
	}
	found, err := uc.FindProducts(ctx, merchantID, ids)
	if err != nil {
		uc.logger.Error("failed to load searched products", zap.Error(err))
		return nil, 0, false
	}

	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

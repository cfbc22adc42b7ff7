package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-backoffice-service/internal/composition"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/internal/simulation"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type simulationUseCase struct {
	catalog product.Catalog
	logger  logger.ZapLogger
}

func NewSimulationUseCase(catalog product.Catalog, log logger.ZapLogger) simulation.UseCase {
	return &simulationUseCase{
		catalog: catalog,
		logger:  log,
	}
}

// Quote prices the lines like a checkout would, expanding composite lines
// into their components.
func (uc *simulationUseCase) Quote(ctx context.Context, input *simulation.QuoteInput) (*simulation.Quote, error) {
	if len(input.Lines) == 0 {
		return nil, sale.ErrEmptySale
	}

	ids := make([]string, len(input.Lines))
	for i, l := range input.Lines {
		if !l.Quantity.IsPositive() {
			return nil, composition.ErrInvalidQuantity
		}
		ids[i] = l.ProductID
	}
	products, err := uc.catalog.FindProducts(ctx, input.MerchantID, ids)
	if err != nil {
		return nil, err
	}

	var (
		items      []model.SaleItem
		composites []string
		costs      = make(map[string]decimal.Decimal, len(products))
	)
	for _, l := range input.Lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%s: %w", l.ProductID, sale.ErrProductNotFound)
		}
		unit := p.SalePrice
		if l.UnitPrice != nil {
			unit = *l.UnitPrice
		}
		items = append(items, model.SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			UnitPrice:   unit,
			TotalPrice:  sale.LineTotal(l.Quantity, unit),
			IsComposite: p.IsComposition,
		})
		costs[p.ID] = p.CostPrice
		if p.IsComposition {
			composites = append(composites, p.ID)
		}
	}

	if len(composites) > 0 {
		components, err := uc.catalog.ComponentsOf(ctx, input.MerchantID, composites)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].IsComposite {
				items[i].Components = composition.ExpandSaleItem(items[i], components[items[i].ProductID])
			}
		}
	}

	totals := sale.ComputeTotals(sale.TotalsInput{
		Items:         items,
		Delivery:      input.Delivery,
		DeliveryFee:   input.DeliveryFee,
		AdditionType:  input.AdditionType,
		AdditionValue: input.AdditionValue,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
	})
	cost := simulation.Cost(items, costs)
	margin, ok := money.MarginFromPrices(cost, totals.Subtotal)

	uc.logger.Debug("quote computed",
		zap.String("merchant_id", input.MerchantID),
		zap.Int("lines", len(items)),
		zap.String("total", totals.Total.StringFixed(2)))

	return &simulation.Quote{
		Title:    input.Title,
		Items:    items,
		Delivery: input.Delivery,
		Totals:   totals,
		Cost:     cost,
		Margin:   margin.Round(2),
		MarginOK: ok,
	}, nil
}

func (uc *simulationUseCase) ExportQuote(ctx context.Context, input *simulation.QuoteInput) (*simulation.Export, error) {
	q, err := uc.Quote(ctx, input)
	if err != nil {
		return nil, err
	}
	return simulation.ExportXLSX(q)
}

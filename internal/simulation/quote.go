package simulation

import (
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/shopspring/decimal"
)

type QuoteLine struct {
	ProductID string
	Quantity  decimal.Decimal
	// UnitPrice overrides the catalog sale price when set.
	UnitPrice *decimal.Decimal
}

type QuoteInput struct {
	MerchantID    string
	Title         string
	Lines         []QuoteLine
	Delivery      bool
	DeliveryFee   decimal.Decimal
	AdditionType  model.AdjustmentType
	AdditionValue decimal.Decimal
	DiscountType  model.AdjustmentType
	DiscountValue decimal.Decimal
}

type Quote struct {
	Title    string
	Items    []model.SaleItem
	Delivery bool
	Totals   sale.Totals
	// Cost is what the quoted goods cost the merchant: component costs for
	// composite lines, the product cost otherwise.
	Cost     decimal.Decimal
	Margin   decimal.Decimal
	MarginOK bool
}

// Cost sums the cost of items given the cost price of each simple product.
func Cost(items []model.SaleItem, costPrices map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if !it.IsComposite {
			total = total.Add(costPrices[it.ProductID].Mul(it.Quantity))
			continue
		}
		for _, c := range it.Components {
			total = total.Add(c.TotalPrice)
		}
	}
	return total.Round(2)
}

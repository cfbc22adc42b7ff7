package sale

import (
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/shopspring/decimal"
)

type TotalsInput struct {
	Items         []model.SaleItem
	Delivery      bool
	DeliveryFee   decimal.Decimal
	AdditionType  model.AdjustmentType
	AdditionValue decimal.Decimal
	DiscountType  model.AdjustmentType
	DiscountValue decimal.Decimal
}

type Totals struct {
	Subtotal       decimal.Decimal
	AdditionAmount decimal.Decimal
	DiscountAmount decimal.Decimal
	DeliveryFee    decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals applies
//
//	total = subtotal + addition - discount + delivery fee (delivery only)
//
// Percentage adjustments are taken from the subtotal. The discount never
// exceeds subtotal plus addition, so the total before delivery is never
// negative. Amounts are rounded to cents.
func ComputeTotals(in TotalsInput) Totals {
	subtotal := decimal.Zero
	for _, it := range in.Items {
		subtotal = subtotal.Add(it.TotalPrice)
	}
	subtotal = subtotal.Round(2)

	addition := adjustment(subtotal, in.AdditionType, in.AdditionValue)
	discount := adjustment(subtotal, in.DiscountType, in.DiscountValue)
	if ceiling := subtotal.Add(addition); discount.GreaterThan(ceiling) {
		discount = ceiling
	}

	fee := decimal.Zero
	if in.Delivery && in.DeliveryFee.IsPositive() {
		fee = in.DeliveryFee.Round(2)
	}

	return Totals{
		Subtotal:       subtotal,
		AdditionAmount: addition,
		DiscountAmount: discount,
		DeliveryFee:    fee,
		Total:          subtotal.Add(addition).Sub(discount).Add(fee),
	}
}

func adjustment(subtotal decimal.Decimal, kind model.AdjustmentType, value decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() {
		return decimal.Zero
	}
	if kind == model.AdjustmentPercentage {
		return money.Percent(subtotal, value).Round(2)
	}
	return value.Round(2)
}

// LineTotal is quantity × unit price.
func LineTotal(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitPrice).Round(2)
}

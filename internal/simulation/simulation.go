// Package simulation answers "what if" pricing questions and builds price
// quotes without persisting anything.
package simulation

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/shopspring/decimal"
)

// marginCeiling bounds typed margins. Markups above 100% are common, so the
// percentage default does not apply.
var marginCeiling = decimal.NewFromInt(1000)

// SimulatePrice reads a cost typed as cents and a margin typed as a
// percentage, and returns the resulting sale price rounded to cents.
func SimulatePrice(costText, marginText string) decimal.Decimal {
	cost := money.ParseCurrencyInput(costText)
	margin := money.ParsePercentageInput(marginText, money.WithMax(marginCeiling))
	return money.SalePriceFromMargin(cost, margin).Round(2)
}

// SimulateMargin returns the margin of selling at saleText something that
// costs costText. ok is false when the cost is zero.
func SimulateMargin(costText, saleText string) (decimal.Decimal, bool) {
	cost := money.ParseCurrencyInput(costText)
	sale := money.ParseCurrencyInput(saleText)
	margin, ok := money.MarginFromPrices(cost, sale)
	if !ok {
		return decimal.Zero, false
	}
	return margin.Round(2), true
}

type UseCase interface {
	Quote(ctx context.Context, input *QuoteInput) (*Quote, error)
	ExportQuote(ctx context.Context, input *QuoteInput) (*Export, error)
}

type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

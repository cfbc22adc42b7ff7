package dto

import "github.com/shopspring/decimal"

type AdjustStockInput struct {
	MerchantID     string          `validate:"required"`
	ProductID      string          `validate:"required"`
	QuantityChange decimal.Decimal `validate:"ne=0"`
	Reason         string          `validate:"max=500"`
	UserID         string
}

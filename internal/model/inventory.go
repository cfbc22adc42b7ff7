package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
)

type StockMovement struct {
	ID             string          `db:"id"`
	MerchantID     string          `db:"merchant_id"`
	ProductID      string          `db:"product_id"`
	MovementType   MovementType    `db:"movement_type"`
	QuantityChange decimal.Decimal `db:"quantity_change"`
	QuantityBefore decimal.Decimal `db:"quantity_before"`
	QuantityAfter  decimal.Decimal `db:"quantity_after"`
	ReferenceType  *string         `db:"reference_type"`
	ReferenceID    *string         `db:"reference_id"`
	Notes          string          `db:"notes"`
	CreatedBy      *string         `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
}

// StockLevel is the stock view of a product row.
type StockLevel struct {
	ProductID     string          `db:"id"`
	MerchantID    string          `db:"merchant_id"`
	Name          string          `db:"name"`
	ManageStock   bool            `db:"manage_stock"`
	StockQuantity decimal.Decimal `db:"stock_quantity"`
}

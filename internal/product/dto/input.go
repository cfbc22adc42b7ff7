package dto

import "github.com/shopspring/decimal"

type ComponentInput struct {
	ProductID string          `validate:"required"`
	Quantity  decimal.Decimal `validate:"gt=0"`
}

type CreateProductInput struct {
	MerchantID    string           `validate:"required"`
	SKU           string           `validate:"required,max=64"`
	Barcode       string           `validate:"max=64"`
	Name          string           `validate:"required,max=200"`
	CostPrice     decimal.Decimal  `validate:"gte=0"`
	SalePrice     decimal.Decimal  `validate:"gte=0"`
	Components    []ComponentInput `validate:"dive"`
	ImageURL      string           `validate:"omitempty,url"`
	CategoryID    string
	Description   string
	MarginPercent *decimal.Decimal
	ManageStock   bool
	OnlineSale    bool
	StockQuantity decimal.Decimal
	IsComposition bool
}

type UpdateProductInput struct {
	ID            string           `validate:"required"`
	MerchantID    string           `validate:"required"`
	SKU           string           `validate:"required,max=64"`
	Barcode       string           `validate:"max=64"`
	Name          string           `validate:"required,max=200"`
	CostPrice     decimal.Decimal  `validate:"gte=0"`
	SalePrice     decimal.Decimal  `validate:"gte=0"`
	Components    []ComponentInput `validate:"dive"`
	ImageURL      string           `validate:"omitempty,url"`
	CategoryID    string
	Description   string
	MarginPercent *decimal.Decimal
	IsActive      bool
	ManageStock   bool
	OnlineSale    bool
	IsComposition bool
}

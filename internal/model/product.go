package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	MerchantID    string          `db:"merchant_id" json:"merchant_id"`
	CategoryID    *string         `db:"category_id" json:"category_id"` // Nullable
	SKU           string          `db:"sku" json:"sku"`
	Barcode       *string         `db:"barcode" json:"barcode"` // Nullable
	Name          string          `db:"name" json:"name"`
	Description   *string         `db:"description" json:"description"`
	CostPrice     decimal.Decimal `db:"cost_price" json:"cost_price"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"sale_price"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	ManageStock   bool            `db:"manage_stock" json:"manage_stock"`
	OnlineSale    bool            `db:"online_sale" json:"online_sale"`
	StockQuantity decimal.Decimal `db:"stock_quantity" json:"stock_quantity"`
	IsComposition bool            `db:"is_composition" json:"is_composition"`
	ImageURL      *string         `db:"image_url" json:"image_url"`
	Components    []Component     `db:"-" json:"components,omitempty"`
}

// ComponentRelation is one bill-of-materials row of a composite product.
type ComponentRelation struct {
	ID                 string          `db:"id" json:"id"`
	ParentProductID    string          `db:"parent_product_id" json:"parent_product_id"`
	ComponentProductID string          `db:"component_product_id" json:"component_product_id"`
	Quantity           decimal.Decimal `db:"quantity" json:"quantity"`
}

// Component is a relation joined with the component product it points to.
type Component struct {
	Product  Product         `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

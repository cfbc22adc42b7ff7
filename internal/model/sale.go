package model

import (
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/shopspring/decimal"
)

type SaleType string

const (
	SaleTypePickup   SaleType = "pickup"
	SaleTypeDelivery SaleType = "delivery"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
)

// AdjustmentType says how an addition or discount value is applied.
type AdjustmentType string

const (
	AdjustmentFixed      AdjustmentType = "fixed"
	AdjustmentPercentage AdjustmentType = "percentage"
)

type Sale struct {
	BaseModel
	MerchantID     string             `db:"merchant_id" json:"merchant_id"`
	SaleType       SaleType           `db:"sale_type" json:"sale_type"`
	PaymentMethod  PaymentMethod      `db:"payment_method" json:"payment_method"`
	Subtotal       decimal.Decimal    `db:"subtotal" json:"subtotal"`
	Total          decimal.Decimal    `db:"total" json:"total"`
	Status         orderstatus.Status `db:"status" json:"status"`
	Notes          *string            `db:"notes" json:"notes"`
	DeliveryFee    decimal.Decimal    `db:"delivery_fee" json:"delivery_fee"`
	AdditionType   AdjustmentType     `db:"addition_type" json:"addition_type"`
	AdditionValue  decimal.Decimal    `db:"addition_value" json:"addition_value"`
	AdditionAmount decimal.Decimal    `db:"addition_amount" json:"addition_amount"`
	DiscountType   AdjustmentType     `db:"discount_type" json:"discount_type"`
	DiscountValue  decimal.Decimal    `db:"discount_value" json:"discount_value"`
	DiscountAmount decimal.Decimal    `db:"discount_amount" json:"discount_amount"`
	CreatedBy      *string            `db:"created_by" json:"created_by"`
	Items          []SaleItem         `db:"-" json:"items,omitempty"`
	Delivery       *DeliveryInfo      `db:"-" json:"delivery,omitempty"`
}

func (s *Sale) IsDelivery() bool { return s.SaleType == SaleTypeDelivery }

type SaleItem struct {
	ID          string              `db:"id" json:"id"`
	SaleID      string              `db:"sale_id" json:"sale_id"`
	ProductID   string              `db:"product_id" json:"product_id"`
	ProductName string              `db:"product_name" json:"product_name"`
	Quantity    decimal.Decimal     `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal     `db:"unit_price" json:"unit_price"`
	TotalPrice  decimal.Decimal     `db:"total_price" json:"total_price"`
	IsComposite bool                `db:"is_composite" json:"is_composite"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	Components  []ExpandedComponent `db:"-" json:"components,omitempty"`
}

// ExpandedComponent is a derived sub-line of a composite sale item.
type ExpandedComponent struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type DeliveryInfo struct {
	ID             string     `db:"id" json:"id"`
	SaleID         string     `db:"sale_id" json:"sale_id"`
	CustomerName   string     `db:"customer_name" json:"customer_name"`
	CustomerPhone  string     `db:"customer_phone" json:"customer_phone"`
	DeliveryDate   *time.Time `db:"delivery_date" json:"delivery_date"`
	DeliveryTime   *string    `db:"delivery_time" json:"delivery_time"`
	Street         string     `db:"street" json:"street"`
	Number         string     `db:"number" json:"number"`
	Complement     *string    `db:"complement" json:"complement"`
	Neighborhood   string     `db:"neighborhood" json:"neighborhood"`
	City           string     `db:"city" json:"city"`
	State          string     `db:"state" json:"state"`
	ZipCode        string     `db:"zip_code" json:"zip_code"`
	AdditionalInfo *string    `db:"additional_info" json:"additional_info"`
	From           *string    `db:"from_info" json:"from"`
	To             *string    `db:"to_info" json:"to"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutItemInput struct {
	ProductID string          `validate:"required"`
	Quantity  decimal.Decimal `validate:"gt=0"`
}

type DeliveryInput struct {
	CustomerName   string `validate:"required,max=200"`
	CustomerPhone  string `validate:"required"`
	Street         string `validate:"required"`
	Number         string `validate:"required"`
	Neighborhood   string `validate:"required"`
	City           string `validate:"required"`
	State          string `validate:"required"`
	ZipCode        string `validate:"required"`
	Complement     string
	AdditionalInfo string
	DeliveryDate   *time.Time
	DeliveryTime   string
	From           string
	To             string
}

type CheckoutInput struct {
	MerchantID    string              `validate:"required"`
	SaleType      string              `validate:"oneof=pickup delivery"`
	PaymentMethod string              `validate:"oneof=cash credit_card debit_card pix"`
	Items         []CheckoutItemInput `validate:"dive"`
	Notes         string              `validate:"max=1000"`
	DeliveryFee   decimal.Decimal     `validate:"gte=0"`
	AdditionType  string              `validate:"omitempty,oneof=fixed percentage"`
	AdditionValue decimal.Decimal     `validate:"gte=0"`
	DiscountType  string              `validate:"omitempty,oneof=fixed percentage"`
	DiscountValue decimal.Decimal     `validate:"gte=0"`
	Delivery      *DeliveryInput
	UserID        string
}

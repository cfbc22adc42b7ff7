// Package event defines the messages published on the sales topic.
package event

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SaleCreated       = "SaleCreated"
	SaleStatusChanged = "SaleStatusChanged"
)

// SaleChanged is emitted after every committed sale write. Consumers must
// tolerate redelivery and reordering.
type SaleChanged struct {
	EventID    string             `json:"event_id"`
	EventType  string             `json:"event_type"`
	MerchantID string             `json:"merchant_id"`
	SaleID     string             `json:"sale_id"`
	Status     orderstatus.Status `json:"status"`
	// Stock lists what leaves the shelf: simple items as sold, composite
	// items as their expanded components. Set on SaleCreated only.
	Stock     []StockLine `json:"stock,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type StockLine struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

func NewSaleChanged(eventType, merchantID, saleID string, status orderstatus.Status) SaleChanged {
	return SaleChanged{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		MerchantID: merchantID,
		SaleID:     saleID,
		Status:     status,
		Timestamp:  time.Now().UTC(),
	}
}

// Publisher sends a JSON message keyed for partitioning.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, value interface{}) error
}

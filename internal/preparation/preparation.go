// Package preparation tracks the picking of a sale's goods and moves the
// sale on once everything is picked.
package preparation

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrIncomplete   = errors.New("preparation has unpicked lines")
	ErrLineNotFound = errors.New("pick line not found")
	ErrNotAwaiting  = errors.New("sale is not awaiting preparation")
)

// PickStore keeps the picked quantity per line key of one sale.
type PickStore interface {
	Get(ctx context.Context, merchantID, saleID string) (map[string]decimal.Decimal, error)
	Set(ctx context.Context, merchantID, saleID, lineKey string, qty decimal.Decimal) error
	Clear(ctx context.Context, merchantID, saleID string) error
}

type UseCase interface {
	GetChecklist(ctx context.Context, merchantID, saleID string) (*Checklist, error)
	// Pick records qty as the picked quantity of lineKey, clamped to
	// [0, required].
	Pick(ctx context.Context, merchantID, saleID, lineKey string, qty decimal.Decimal) (*Checklist, error)
	// CompletePreparation refuses with ErrIncomplete unless every line is
	// fully picked, then moves the sale to its preparation target.
	CompletePreparation(ctx context.Context, merchantID, saleID string) (*model.Sale, error)
}

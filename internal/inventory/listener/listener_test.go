package listener

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUseCase struct {
	saleIDs []string
	lines   [][]event.StockLine
}

func (r *recordingUseCase) AdjustStock(context.Context, *dto.AdjustStockInput) (*model.StockLevel, error) {
	return nil, nil
}

func (r *recordingUseCase) DeductForSale(_ context.Context, _, saleID string, lines []event.StockLine) error {
	r.saleIDs = append(r.saleIDs, saleID)
	r.lines = append(r.lines, lines)
	return nil
}

func (r *recordingUseCase) ListMovements(context.Context, *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func encode(t *testing.T, evt event.SaleChanged) []byte {
	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	return raw
}

func TestProcessMessage(t *testing.T) {
	uc := &recordingUseCase{}
	l := NewInventoryListener(nil, uc, logger.NewNop())
	ctx := context.Background()

	created := event.NewSaleChanged(event.SaleCreated, "m", "s1", orderstatus.Pending)
	created.Stock = []event.StockLine{{ProductID: "p", Quantity: decimal.NewFromInt(2)}}
	l.processMessage(ctx, encode(t, created))
	l.processMessage(ctx, encode(t, event.NewSaleChanged(event.SaleStatusChanged, "m", "s1", orderstatus.Paid)))
	l.processMessage(ctx, []byte("not json"))

	assert.Equal(t, []string{"s1"}, uc.saleIDs)
	require.Len(t, uc.lines[0], 1)
	assert.True(t, decimal.NewFromInt(2).Equal(uc.lines[0][0].Quantity))
}

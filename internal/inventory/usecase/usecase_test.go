package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	levels    map[string]model.StockLevel
	movements []model.StockMovement
}

func (r *memRepo) GetLevel(_ context.Context, merchantID, productID string) (*model.StockLevel, error) {
	l, ok := r.levels[productID]
	if !ok || l.MerchantID != merchantID {
		return nil, nil
	}
	return &l, nil
}

func (r *memRepo) GetLevels(ctx context.Context, merchantID string, productIDs []string) ([]model.StockLevel, error) {
	var out []model.StockLevel
	for _, id := range productIDs {
		if l, _ := r.GetLevel(ctx, merchantID, id); l != nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memRepo) ApplyMovement(_ context.Context, m *model.StockMovement) error {
	l := r.levels[m.ProductID]
	l.StockQuantity = m.QuantityAfter
	r.levels[m.ProductID] = l
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memRepo) HasMovement(_ context.Context, merchantID, productID, refType, refID string) (bool, error) {
	for _, m := range r.movements {
		if m.MerchantID == merchantID && m.ProductID == productID &&
			m.ReferenceType != nil && *m.ReferenceType == refType &&
			m.ReferenceID != nil && *m.ReferenceID == refID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if f.ProductID == "" || m.ProductID == f.ProductID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

type memLocker struct {
	held     map[string]string
	acquired int
}

func (l *memLocker) AcquireLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	if _, busy := l.held[key]; busy {
		return false, nil
	}
	l.held[key] = value
	l.acquired++
	return true, nil
}

func (l *memLocker) ReleaseLock(_ context.Context, key, value string) error {
	if l.held[key] == value {
		delete(l.held, key)
	}
	return nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() (*memRepo, *memLocker, inventory.UseCase) {
	repo := &memRepo{levels: map[string]model.StockLevel{
		"burger": {ProductID: "burger", MerchantID: "m", Name: "Burger", ManageStock: true, StockQuantity: d("10")},
		"fries":  {ProductID: "fries", MerchantID: "m", Name: "Fries", ManageStock: true, StockQuantity: d("3")},
		"soda":   {ProductID: "soda", MerchantID: "m", Name: "Soda", StockQuantity: d("0")},
	}}
	locker := &memLocker{held: map[string]string{}}
	return repo, locker, NewInventoryUseCase(repo, locker, logger.NewNop())
}

func TestAdjustStock(t *testing.T) {
	repo, locker, uc := newFixture()
	ctx := context.Background()

	level, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{MerchantID: "m", ProductID: "burger", QuantityChange: d("-4"), Reason: "count", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, d("6").Equal(level.StockQuantity))
	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, model.MovementAdjustment, m.MovementType)
	assert.True(t, d("10").Equal(m.QuantityBefore))
	assert.True(t, d("6").Equal(m.QuantityAfter))
	assert.Equal(t, "u1", *m.CreatedBy)
	assert.Empty(t, locker.held)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{MerchantID: "m", ProductID: "fries", QuantityChange: d("-5")})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{MerchantID: "m", ProductID: "soda", QuantityChange: d("1")})
	assert.ErrorIs(t, err, inventory.ErrNotManaged)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{MerchantID: "m", ProductID: "ghost", QuantityChange: d("1")})
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{MerchantID: "m", ProductID: "burger", QuantityChange: d("0")})
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))
}

func TestAdjustStockBusy(t *testing.T) {
	_, locker, uc := newFixture()
	locker.held["lock:stock:m:burger"] = "someone"

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{MerchantID: "m", ProductID: "burger", QuantityChange: d("1")})
	assert.ErrorIs(t, err, cache.ErrLockNotObtained)
}

func TestDeductForSale(t *testing.T) {
	repo, _, uc := newFixture()
	ctx := context.Background()
	lines := []event.StockLine{
		{ProductID: "burger", Quantity: d("2")},
		{ProductID: "fries", Quantity: d("4")},
		{ProductID: "soda", Quantity: d("1")},
		{ProductID: "burger", Quantity: d("1")},
	}

	require.NoError(t, uc.DeductForSale(ctx, "m", "sale-1", lines))
	assert.True(t, d("7").Equal(repo.levels["burger"].StockQuantity))
	assert.True(t, d("-1").Equal(repo.levels["fries"].StockQuantity))
	assert.True(t, d("0").Equal(repo.levels["soda"].StockQuantity))
	require.Len(t, repo.movements, 2)
	assert.Equal(t, model.MovementSale, repo.movements[0].MovementType)
	assert.Equal(t, "sale-1", *repo.movements[0].ReferenceID)

	require.NoError(t, uc.DeductForSale(ctx, "m", "sale-1", lines))
	assert.Len(t, repo.movements, 2)
	assert.True(t, d("7").Equal(repo.levels["burger"].StockQuantity))
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/preparation"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSales struct {
	sale.UseCase
	sales     map[string]*model.Sale
	statusErr error
}

func (f *fakeSales) GetSale(_ context.Context, _, id string) (*model.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, sale.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSales) SetStatus(_ context.Context, _, id string, status orderstatus.Status) (*model.Sale, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	f.sales[id].Status = status
	copied := *f.sales[id]
	return &copied, nil
}

var _ sale.UseCase = (*fakeSales)(nil)

type memPicks struct {
	data map[string]map[string]decimal.Decimal
}

func (m *memPicks) Get(_ context.Context, _, saleID string) (map[string]decimal.Decimal, error) {
	return m.data[saleID], nil
}

func (m *memPicks) Set(_ context.Context, _, saleID, lineKey string, qty decimal.Decimal) error {
	if m.data[saleID] == nil {
		m.data[saleID] = map[string]decimal.Decimal{}
	}
	m.data[saleID][lineKey] = qty
	return nil
}

func (m *memPicks) Clear(_ context.Context, _, saleID string) error {
	delete(m.data, saleID)
	return nil
}

type fakeLocker struct {
	held     bool
	released int
}

func (l *fakeLocker) Obtain(context.Context, string, time.Duration) (func(context.Context) error, error) {
	if l.held {
		return nil, cache.ErrLockNotObtained
	}
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(saleType model.SaleType) (*fakeSales, *memPicks, *fakeLocker, preparation.UseCase) {
	sales := &fakeSales{sales: map[string]*model.Sale{
		"s1": {
			BaseModel: model.BaseModel{ID: "s1"},
			SaleType:  saleType,
			Status:    orderstatus.Paid,
			Items: []model.SaleItem{
				{ID: "i1", ProductID: "combo", ProductName: "Combo", Quantity: d("1"), IsComposite: true,
					Components: []model.ExpandedComponent{{ProductID: "burger", ProductName: "Burger", Quantity: d("1")}}},
				{ID: "i2", ProductID: "soda", ProductName: "Soda", Quantity: d("2")},
			},
		},
	}}
	picks := &memPicks{data: map[string]map[string]decimal.Decimal{}}
	locker := &fakeLocker{}
	return sales, picks, locker, NewPreparationUseCase(sales, picks, locker, time.Second, logger.NewNop())
}

func TestPickClampsAndCompletes(t *testing.T) {
	sales, picks, locker, uc := newFixture(model.SaleTypeDelivery)
	ctx := context.Background()

	c, err := uc.Pick(ctx, "m", "s1", "i2", d("5"))
	require.NoError(t, err)
	line, _ := c.Line("i2")
	assert.True(t, d("2").Equal(line.Picked))

	_, err = uc.CompletePreparation(ctx, "m", "s1")
	assert.ErrorIs(t, err, preparation.ErrIncomplete)
	assert.Equal(t, orderstatus.Paid, sales.sales["s1"].Status)

	_, err = uc.Pick(ctx, "m", "s1", "i1:burger", d("1"))
	require.NoError(t, err)

	s, err := uc.CompletePreparation(ctx, "m", "s1")
	require.NoError(t, err)
	assert.Equal(t, orderstatus.Packed, s.Status)
	assert.Empty(t, picks.data)
	assert.Equal(t, 2, locker.released)

	_, err = uc.CompletePreparation(ctx, "m", "s1")
	assert.ErrorIs(t, err, preparation.ErrNotAwaiting)
}

func TestCompletePickupGoesToAwaitingPickup(t *testing.T) {
	_, picks, _, uc := newFixture(model.SaleTypePickup)
	picks.data["s1"] = map[string]decimal.Decimal{"i1:burger": d("1"), "i2": d("2")}

	s, err := uc.CompletePreparation(context.Background(), "m", "s1")
	require.NoError(t, err)
	assert.Equal(t, orderstatus.AwaitingPickup, s.Status)
}

func TestCompleteFailureKeepsSession(t *testing.T) {
	sales, picks, _, uc := newFixture(model.SaleTypePickup)
	picks.data["s1"] = map[string]decimal.Decimal{"i1:burger": d("1"), "i2": d("2")}
	sales.statusErr = errors.New("db down")

	_, err := uc.CompletePreparation(context.Background(), "m", "s1")
	require.Error(t, err)
	assert.Equal(t, orderstatus.Paid, sales.sales["s1"].Status)
	assert.Len(t, picks.data["s1"], 2)
}

func TestPickErrors(t *testing.T) {
	_, _, locker, uc := newFixture(model.SaleTypePickup)
	ctx := context.Background()

	_, err := uc.Pick(ctx, "m", "s1", "i1", d("1"))
	assert.ErrorIs(t, err, preparation.ErrLineNotFound)

	_, err = uc.Pick(ctx, "m", "missing", "i2", d("1"))
	assert.ErrorIs(t, err, sale.ErrNotFound)

	locker.held = true
	_, err = uc.CompletePreparation(ctx, "m", "s1")
	assert.ErrorIs(t, err, cache.ErrLockNotObtained)
}

func TestEmptyCompositeMustBePickedBeforeCompleting(t *testing.T) {
	sales, _, _, uc := newFixture(model.SaleTypePickup)
	sales.sales["s1"].Items = []model.SaleItem{
		{ID: "i1", ProductID: "soda", ProductName: "Soda", Quantity: d("1")},
		{ID: "i2", ProductID: "combo", ProductName: "Combo", Quantity: d("3"), IsComposite: true},
	}
	ctx := context.Background()

	c, err := uc.Pick(ctx, "m", "s1", "i1", d("1"))
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2)

	_, err = uc.CompletePreparation(ctx, "m", "s1")
	assert.ErrorIs(t, err, preparation.ErrIncomplete)

	_, err = uc.Pick(ctx, "m", "s1", "i2", d("3"))
	require.NoError(t, err)
	s, err := uc.CompletePreparation(ctx, "m", "s1")
	require.NoError(t, err)
	assert.Equal(t, orderstatus.AwaitingPickup, s.Status)
}

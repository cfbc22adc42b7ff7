package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	sales     map[string]*model.Sale
	updateErr error
}

func (r *memRepo) Create(_ context.Context, s *model.Sale) error {
	stored := *s
	r.sales[s.ID] = &stored
	return nil
}

func (r *memRepo) FindByID(_ context.Context, merchantID, id string) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.MerchantID != merchantID {
		return nil, nil
	}
	copied := *s
	copied.Items = append([]model.SaleItem(nil), s.Items...)
	for i := range copied.Items {
		copied.Items[i].Components = nil
	}
	return &copied, nil
}

func (r *memRepo) FindAll(_ context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.MerchantID == f.MerchantID {
			out = append(out, *s)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) FindByStatuses(_ context.Context, merchantID string, statuses []orderstatus.Status) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		for _, st := range statuses {
			if s.MerchantID == merchantID && s.Status == st {
				out = append(out, *s)
			}
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, _, id string, status orderstatus.Status) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.sales[id].Status = status
	return nil
}

type fakeCatalog struct {
	products   map[string]model.Product
	components map[string][]model.Component
}

func (c *fakeCatalog) FindProducts(_ context.Context, _ string, ids []string) (map[string]model.Product, error) {
	out := map[string]model.Product{}
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (c *fakeCatalog) ComponentsOf(_ context.Context, _ string, parentIDs []string) (map[string][]model.Component, error) {
	out := map[string][]model.Component{}
	for _, id := range parentIDs {
		out[id] = c.components[id]
	}
	return out, nil
}

type recorder struct {
	events []event.SaleChanged
	err    error
}

func (p *recorder) PublishJSON(_ context.Context, _ string, value interface{}) error {
	p.events = append(p.events, value.(event.SaleChanged))
	return p.err
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func catalogProduct(id, name, cost, price string) model.Product {
	return model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      name,
		CostPrice: d(cost),
		SalePrice: d(price),
		IsActive:  true,
	}
}

type fixture struct {
	repo    *memRepo
	catalog *fakeCatalog
	events  *recorder
	uc      sale.UseCase
}

func newFixture() *fixture {
	burger := catalogProduct("burger", "Burger", "10", "18")
	fries := catalogProduct("fries", "Fries", "4", "8")
	combo := catalogProduct("combo", "Combo", "18", "25")
	combo.IsComposition = true

	f := &fixture{
		repo: &memRepo{sales: map[string]*model.Sale{}},
		catalog: &fakeCatalog{
			products: map[string]model.Product{"burger": burger, "fries": fries, "combo": combo},
			components: map[string][]model.Component{
				"combo": {{Product: burger, Quantity: d("1")}, {Product: fries, Quantity: d("2")}},
			},
		},
		events: &recorder{},
	}
	f.uc = NewSaleUseCase(f.repo, f.catalog, f.events, "BR", logger.NewNop())
	return f
}

func pickup(items ...dto.CheckoutItemInput) *dto.CheckoutInput {
	return &dto.CheckoutInput{
		MerchantID:    "m",
		SaleType:      "pickup",
		PaymentMethod: "cash",
		Items:         items,
	}
}

func TestCheckoutSnapshotsAndExpands(t *testing.T) {
	f := newFixture()

	s, err := f.uc.Checkout(context.Background(), pickup(
		dto.CheckoutItemInput{ProductID: "combo", Quantity: d("2")},
		dto.CheckoutItemInput{ProductID: "burger", Quantity: d("1")},
	))
	require.NoError(t, err)
	assert.Equal(t, orderstatus.Pending, s.Status)
	assert.True(t, d("68").Equal(s.Total), "got %s", s.Total)
	require.Len(t, s.Items, 2)
	assert.True(t, d("50").Equal(s.Items[0].TotalPrice))
	require.Len(t, s.Items[0].Components, 2)
	assert.True(t, d("4").Equal(s.Items[0].Components[1].Quantity))
	assert.Empty(t, s.Items[1].Components)
	assert.Contains(t, f.repo.sales, s.ID)

	require.Len(t, f.events.events, 1)
	evt := f.events.events[0]
	assert.Equal(t, event.SaleCreated, evt.EventType)
	require.Len(t, evt.Stock, 3)
	assert.Equal(t, "burger", evt.Stock[0].ProductID)
	assert.Equal(t, "fries", evt.Stock[1].ProductID)
	assert.True(t, d("4").Equal(evt.Stock[1].Quantity))
	assert.Equal(t, "burger", evt.Stock[2].ProductID)
}

func TestCheckoutRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Checkout(ctx, pickup())
	assert.ErrorIs(t, err, sale.ErrEmptySale)

	_, err = f.uc.Checkout(ctx, pickup(dto.CheckoutItemInput{ProductID: "ghost", Quantity: d("1")}))
	assert.ErrorIs(t, err, sale.ErrProductNotFound)

	_, err = f.uc.Checkout(ctx, pickup(dto.CheckoutItemInput{ProductID: "burger", Quantity: d("0")}))
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))

	fries := f.catalog.products["fries"]
	fries.IsActive = false
	f.catalog.products["fries"] = fries
	_, err = f.uc.Checkout(ctx, pickup(dto.CheckoutItemInput{ProductID: "fries", Quantity: d("1")}))
	var inactive *sale.InactiveProductError
	require.True(t, errors.As(err, &inactive))
	assert.Equal(t, "Fries", inactive.Name)

	in := pickup(dto.CheckoutItemInput{ProductID: "burger", Quantity: d("1")})
	in.SaleType = "delivery"
	_, err = f.uc.Checkout(ctx, in)
	assert.ErrorIs(t, err, sale.ErrDeliveryRequired)

	assert.Empty(t, f.repo.sales)
	assert.Empty(t, f.events.events)
}

func TestCheckoutDelivery(t *testing.T) {
	f := newFixture()
	when := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	in := pickup(dto.CheckoutItemInput{ProductID: "burger", Quantity: d("1")})
	in.SaleType = "delivery"
	in.DeliveryFee = d("6")
	in.DiscountType = "percentage"
	in.DiscountValue = d("10")
	in.Delivery = &dto.DeliveryInput{
		CustomerName:  "Ana",
		CustomerPhone: "(11) 98765-4321",
		Street:        "Rua A",
		Number:        "10",
		Neighborhood:  "Centro",
		City:          "São Paulo",
		State:         "SP",
		ZipCode:       "01000-000",
		DeliveryDate:  &when,
	}

	s, err := f.uc.Checkout(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, s.Delivery)
	assert.Equal(t, "+5511987654321", s.Delivery.CustomerPhone)
	assert.Equal(t, s.ID, s.Delivery.SaleID)
	assert.True(t, d("1.8").Equal(s.DiscountAmount))
	assert.True(t, d("22.2").Equal(s.Total), "got %s", s.Total)

	in.Delivery.CustomerPhone = "12"
	_, err = f.uc.Checkout(context.Background(), in)
	assert.ErrorIs(t, err, validation.ErrInvalidPhone)
}

func TestCheckoutIgnoresPublishFailure(t *testing.T) {
	f := newFixture()
	f.events.err = errors.New("broker down")

	s, err := f.uc.Checkout(context.Background(), pickup(dto.CheckoutItemInput{ProductID: "burger", Quantity: d("1")}))
	require.NoError(t, err)
	assert.Contains(t, f.repo.sales, s.ID)
}

func TestSetStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.uc.Checkout(ctx, pickup(dto.CheckoutItemInput{ProductID: "combo", Quantity: d("1")}))
	require.NoError(t, err)

	updated, err := f.uc.SetStatus(ctx, "m", s.ID, orderstatus.Paid)
	require.NoError(t, err)
	assert.Equal(t, orderstatus.Paid, updated.Status)
	assert.Equal(t, orderstatus.Paid, f.repo.sales[s.ID].Status)
	assert.Len(t, updated.Items[0].Components, 2)
	assert.Equal(t, event.SaleStatusChanged, f.events.events[len(f.events.events)-1].EventType)

	_, err = f.uc.SetStatus(ctx, "m", s.ID, orderstatus.Status("lost"))
	assert.ErrorIs(t, err, orderstatus.ErrUnknownStatus)

	f.repo.updateErr = errors.New("connection reset")
	_, err = f.uc.SetStatus(ctx, "m", s.ID, orderstatus.Delivered)
	require.Error(t, err)
	assert.Equal(t, orderstatus.Paid, f.repo.sales[s.ID].Status)

	_, err = f.uc.SetStatus(ctx, "other", s.ID, orderstatus.Paid)
	assert.ErrorIs(t, err, sale.ErrNotFound)
}

func TestListPendingOrders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	open, err := f.uc.Checkout(ctx, pickup(dto.CheckoutItemInput{ProductID: "combo", Quantity: d("1")}))
	require.NoError(t, err)
	done, err := f.uc.Checkout(ctx, pickup(dto.CheckoutItemInput{ProductID: "burger", Quantity: d("1")}))
	require.NoError(t, err)
	_, err = f.uc.SetStatus(ctx, "m", done.ID, orderstatus.Delivered)
	require.NoError(t, err)

	pending, err := f.uc.ListPendingOrders(ctx, "m")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)
	assert.Len(t, pending[0].Items[0].Components, 2)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/composition"
	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type saleUseCase struct {
	repo        sale.Repository
	catalog     product.Catalog
	publisher   event.Publisher
	phoneRegion string
	logger      logger.ZapLogger
	now         func() time.Time
}

// NewSaleUseCase wires checkout. publisher may be nil, in which case no
// change events are emitted.
func NewSaleUseCase(repo sale.Repository, catalog product.Catalog, publisher event.Publisher, phoneRegion string, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{
		repo:        repo,
		catalog:     catalog,
		publisher:   publisher,
		phoneRegion: phoneRegion,
		logger:      log,
		now:         time.Now,
	}
}

func (uc *saleUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Sale, error) {
	if len(input.Items) == 0 {
		return nil, sale.ErrEmptySale
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	saleType := model.SaleType(input.SaleType)
	if saleType == model.SaleTypeDelivery && input.Delivery == nil {
		return nil, sale.ErrDeliveryRequired
	}

	ids := make([]string, len(input.Items))
	for i, it := range input.Items {
		ids[i] = it.ProductID
	}
	products, err := uc.catalog.FindProducts(ctx, input.MerchantID, ids)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	s := &model.Sale{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:    input.MerchantID,
		SaleType:      saleType,
		PaymentMethod: model.PaymentMethod(input.PaymentMethod),
		Status:        orderstatus.Pending,
		Notes:         optional(input.Notes),
		AdditionType:  adjustmentType(input.AdditionType),
		AdditionValue: input.AdditionValue,
		DiscountType:  adjustmentType(input.DiscountType),
		DiscountValue: input.DiscountValue,
		CreatedBy:     optional(input.UserID),
	}

	var compositeIDs []string
	for _, in := range input.Items {
		p, ok := products[in.ProductID]
		if !ok {
			return nil, fmt.Errorf("%s: %w", in.ProductID, sale.ErrProductNotFound)
		}
		if !p.IsActive {
			return nil, &sale.InactiveProductError{Name: p.Name}
		}
		s.Items = append(s.Items, model.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      s.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			UnitPrice:   p.SalePrice,
			TotalPrice:  sale.LineTotal(in.Quantity, p.SalePrice),
			IsComposite: p.IsComposition,
			CreatedAt:   now,
		})
		if p.IsComposition {
			compositeIDs = append(compositeIDs, p.ID)
		}
	}

	if err := uc.expand(ctx, input.MerchantID, s.Items, compositeIDs); err != nil {
		return nil, err
	}

	if saleType == model.SaleTypeDelivery {
		delivery, err := uc.deliveryInfo(s.ID, input.Delivery)
		if err != nil {
			return nil, err
		}
		s.Delivery = delivery
	}

	totals := sale.ComputeTotals(sale.TotalsInput{
		Items:         s.Items,
		Delivery:      s.IsDelivery(),
		DeliveryFee:   input.DeliveryFee,
		AdditionType:  s.AdditionType,
		AdditionValue: s.AdditionValue,
		DiscountType:  s.DiscountType,
		DiscountValue: s.DiscountValue,
	})
	s.Subtotal = totals.Subtotal
	s.AdditionAmount = totals.AdditionAmount
	s.DiscountAmount = totals.DiscountAmount
	s.DeliveryFee = totals.DeliveryFee
	s.Total = totals.Total

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.logger.Info("sale created",
		zap.String("sale_id", s.ID),
		zap.String("merchant_id", s.MerchantID),
		zap.String("total", s.Total.StringFixed(2)))

	evt := event.NewSaleChanged(event.SaleCreated, s.MerchantID, s.ID, s.Status)
	evt.Stock = StockLines(s.Items)
	uc.publish(ctx, evt)
	return s, nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, merchantID, id string) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, sale.ErrNotFound
	}
	if err := uc.expand(ctx, merchantID, s.Items, compositeProducts(s.Items)); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *saleUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *saleUseCase) ListPendingOrders(ctx context.Context, merchantID string) ([]model.Sale, error) {
	sales, err := uc.repo.FindByStatuses(ctx, merchantID, orderstatus.PreparationQueue())
	if err != nil {
		return nil, err
	}

	var items []model.SaleItem
	for _, s := range sales {
		items = append(items, s.Items...)
	}
	components, err := uc.components(ctx, merchantID, compositeProducts(items))
	if err != nil {
		return nil, err
	}
	for i := range sales {
		expandItems(sales[i].Items, components)
	}
	return sales, nil
}

func (uc *saleUseCase) SetStatus(ctx context.Context, merchantID, id string, status orderstatus.Status) (*model.Sale, error) {
	s, err := uc.GetSale(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	next, err := orderstatus.Transition(s.Status, status)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, merchantID, id, next); err != nil {
		return nil, fmt.Errorf("update sale status: %w", err)
	}

	previous := s.Status
	s.Status = next
	uc.logger.Info("sale status changed",
		zap.String("sale_id", id),
		zap.String("from", previous.String()),
		zap.String("to", next.String()))

	uc.publish(ctx, event.NewSaleChanged(event.SaleStatusChanged, merchantID, id, next))
	return s, nil
}

// expand fills Components on every composite item using the current
// relations of compositeIDs.
func (uc *saleUseCase) expand(ctx context.Context, merchantID string, items []model.SaleItem, compositeIDs []string) error {
	components, err := uc.components(ctx, merchantID, compositeIDs)
	if err != nil {
		return err
	}
	expandItems(items, components)
	return nil
}

func (uc *saleUseCase) components(ctx context.Context, merchantID string, compositeIDs []string) (map[string][]model.Component, error) {
	if len(compositeIDs) == 0 {
		return nil, nil
	}
	return uc.catalog.ComponentsOf(ctx, merchantID, compositeIDs)
}

func (uc *saleUseCase) deliveryInfo(saleID string, in *dto.DeliveryInput) (*model.DeliveryInfo, error) {
	phone, err := validation.NormalizePhone(in.CustomerPhone, uc.phoneRegion)
	if err != nil {
		return nil, err
	}
	return &model.DeliveryInfo{
		ID:             uuid.New().String(),
		SaleID:         saleID,
		CustomerName:   in.CustomerName,
		CustomerPhone:  phone,
		DeliveryDate:   in.DeliveryDate,
		DeliveryTime:   optional(in.DeliveryTime),
		Street:         in.Street,
		Number:         in.Number,
		Complement:     optional(in.Complement),
		Neighborhood:   in.Neighborhood,
		City:           in.City,
		State:          in.State,
		ZipCode:        in.ZipCode,
		AdditionalInfo: optional(in.AdditionalInfo),
		From:           optional(in.From),
		To:             optional(in.To),
	}, nil
}

func (uc *saleUseCase) publish(ctx context.Context, evt event.SaleChanged) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishJSON(ctx, evt.MerchantID, evt); err != nil {
		uc.logger.Error("failed to publish sale event",
			zap.String("sale_id", evt.SaleID),
			zap.String("event_type", evt.EventType),
			zap.Error(err))
	}
}

// StockLines lists the stock movements a sale causes: composite items
// contribute their expanded components instead of themselves.
func StockLines(items []model.SaleItem) []event.StockLine {
	var out []event.StockLine
	for _, it := range items {
		if !it.IsComposite {
			out = append(out, event.StockLine{ProductID: it.ProductID, Quantity: it.Quantity})
			continue
		}
		for _, c := range it.Components {
			out = append(out, event.StockLine{ProductID: c.ProductID, Quantity: c.Quantity})
		}
	}
	return out
}

func expandItems(items []model.SaleItem, components map[string][]model.Component) {
	for i := range items {
		if items[i].IsComposite {
			items[i].Components = composition.ExpandSaleItem(items[i], components[items[i].ProductID])
		}
	}
}

func compositeProducts(items []model.SaleItem) []string {
	var ids []string
	seen := map[string]bool{}
	for _, it := range items {
		if it.IsComposite && !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	return ids
}

func adjustmentType(s string) model.AdjustmentType {
	if s == string(model.AdjustmentPercentage) {
		return model.AdjustmentPercentage
	}
	return model.AdjustmentFixed
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package handler

import (
	"context"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperr"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/receipt"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/feed"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"go.uber.org/zap"
)

var _ pb.SaleServiceServer = (*SaleHandler)(nil)

// Board serves pending-orders snapshots.
type Board interface {
	Current(ctx context.Context, merchantID string) (*feed.Snapshot, error)
	Subscribe(merchantID string) (<-chan feed.Snapshot, func())
}

type SaleHandler struct {
	pb.UnimplementedSaleServiceServer
	uc           sale.UseCase
	board        Board
	receiptTitle string
	logger       logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, board Board, receiptTitle string, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:           uc,
		board:        board,
		receiptTitle: receiptTitle,
		logger:       log,
	}
}

func (h *SaleHandler) Checkout(ctx context.Context, req *pb.CheckoutRequest) (*pb.SaleResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	input := &dto.CheckoutInput{
		MerchantID:    merchantID,
		SaleType:      req.SaleType,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		DeliveryFee:   req.DeliveryFee,
		AdditionType:  req.AdditionType,
		AdditionValue: req.AdditionValue,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Delivery:      mapDeliveryInput(req.Delivery),
		UserID:        auth.GetUserID(ctx),
	}
	for _, it := range req.Items {
		if it == nil {
			continue
		}
		input.Items = append(input.Items, dto.CheckoutItemInput{ProductID: it.ProductId, Quantity: it.Quantity})
	}

	s, err := h.uc.Checkout(ctx, input)
	if err != nil {
		h.logger.Error("failed to checkout", zap.String("merchant_id", merchantID), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.SaleResponse{Sale: MapSale(s)}, nil
}

func (h *SaleHandler) GetSale(ctx context.Context, req *pb.GetSaleRequest) (*pb.SaleResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	s, err := h.uc.GetSale(ctx, merchantID, req.Id)
	if err != nil {
		return nil, apperr.Status(ctx, err)
	}
	return &pb.SaleResponse{Sale: MapSale(s)}, nil
}

func (h *SaleHandler) ListSales(ctx context.Context, req *pb.ListSalesRequest) (*pb.ListSalesResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	filters := &dto.SaleFilters{
		MerchantID: merchantID,
		SaleType:   model.SaleType(req.SaleType),
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	}
	if req.Status != "" {
		st, err := orderstatus.Parse(req.Status)
		if err != nil {
			return nil, apperr.Status(ctx, err)
		}
		filters.Status = st
	}

	sales, count, err := h.uc.ListSales(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ListSalesResponse{Sales: mapSales(sales), Total: int32(count)}, nil
}

func (h *SaleHandler) ListPendingOrders(ctx context.Context, _ *pb.ListPendingOrdersRequest) (*pb.ListSalesResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	sales, err := h.uc.ListPendingOrders(ctx, merchantID)
	if err != nil {
		h.logger.Error("failed to list pending orders", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ListSalesResponse{Sales: mapSales(sales), Total: int32(len(sales))}, nil
}

func (h *SaleHandler) SetStatus(ctx context.Context, req *pb.SetStatusRequest) (*pb.SaleResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	// Labels come from status pickers; anything unrecognized falls back to
	// pending.
	next := orderstatus.FromTranslation(req.StatusLabel)
	if req.Status != "" {
		st, err := orderstatus.Parse(req.Status)
		if err != nil {
			return nil, apperr.Status(ctx, err)
		}
		next = st
	}

	s, err := h.uc.SetStatus(ctx, merchantID, req.Id, next)
	if err != nil {
		h.logger.Error("failed to set sale status", zap.String("sale_id", req.Id), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.SaleResponse{Sale: MapSale(s)}, nil
}

func (h *SaleHandler) PrintReceipt(ctx context.Context, req *pb.PrintReceiptRequest) (*pb.PrintReceiptResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	s, err := h.uc.GetSale(ctx, merchantID, req.Id)
	if err != nil {
		return nil, apperr.Status(ctx, err)
	}
	text := receipt.Sale(s, receipt.Options{
		Width:  int(req.Width),
		Lang:   auth.GetLanguage(ctx),
		Header: h.receiptTitle,
	})
	return &pb.PrintReceiptResponse{Text: text}, nil
}

// WatchPendingOrders sends the current board, then every refreshed board
// until the client goes away.
func (h *SaleHandler) WatchPendingOrders(_ *pb.WatchPendingOrdersRequest, stream rpc.Sender[pb.PendingOrdersSnapshot]) error {
	ctx := stream.Context()
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return apperr.MissingMerchant(ctx)
	}

	updates, cancel := h.board.Subscribe(merchantID)
	defer cancel()

	current, err := h.board.Current(ctx, merchantID)
	if err != nil {
		h.logger.Error("failed to load pending orders", zap.String("merchant_id", merchantID), zap.Error(err))
		return apperr.Status(ctx, err)
	}
	if err := stream.Send(mapSnapshot(current)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if err := stream.Send(mapSnapshot(&snap)); err != nil {
				h.logger.Debug("pending orders watcher gone", zap.String("merchant_id", merchantID), zap.Error(err))
				return err
			}
		}
	}
}

func mapSnapshot(s *feed.Snapshot) *pb.PendingOrdersSnapshot {
	return &pb.PendingOrdersSnapshot{Sales: mapSales(s.Sales), Refreshed: s.Refreshed}
}

func mapSales(sales []model.Sale) []*pb.Sale {
	out := make([]*pb.Sale, len(sales))
	for i := range sales {
		out[i] = MapSale(&sales[i])
	}
	return out
}

func MapSale(s *model.Sale) *pb.Sale {
	if s == nil {
		return nil
	}

	out := &pb.Sale{
		Id:             s.ID,
		MerchantId:     s.MerchantID,
		SaleType:       string(s.SaleType),
		PaymentMethod:  string(s.PaymentMethod),
		Status:         s.Status.String(),
		StatusLabel:    s.Status.Label(),
		Subtotal:       s.Subtotal,
		DeliveryFee:    s.DeliveryFee,
		AdditionType:   string(s.AdditionType),
		AdditionValue:  s.AdditionValue,
		AdditionAmount: s.AdditionAmount,
		DiscountType:   string(s.DiscountType),
		DiscountValue:  s.DiscountValue,
		DiscountAmount: s.DiscountAmount,
		Total:          s.Total,
		TotalDisplay:   money.FormatCurrency(s.Total),
		Notes:          deref(s.Notes),
		Items:          MapItems(s.Items),
		CreatedAt:      s.CreatedAt,
	}
	if d := s.Delivery; d != nil {
		out.Delivery = &pb.DeliveryInfo{
			CustomerName:   d.CustomerName,
			CustomerPhone:  d.CustomerPhone,
			DeliveryDate:   d.DeliveryDate,
			DeliveryTime:   deref(d.DeliveryTime),
			Street:         d.Street,
			Number:         d.Number,
			Complement:     deref(d.Complement),
			Neighborhood:   d.Neighborhood,
			City:           d.City,
			State:          d.State,
			ZipCode:        d.ZipCode,
			AdditionalInfo: deref(d.AdditionalInfo),
			From:           deref(d.From),
			To:             deref(d.To),
		}
	}
	return out
}

// MapItems converts sale or quote lines with their expanded components.
func MapItems(items []model.SaleItem) []*pb.SaleItem {
	out := make([]*pb.SaleItem, len(items))
	for i, it := range items {
		item := &pb.SaleItem{
			Id:          it.ID,
			ProductId:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			IsComposite: it.IsComposite,
		}
		for _, c := range it.Components {
			item.Components = append(item.Components, &pb.ExpandedComponent{
				ProductId:   c.ProductID,
				ProductName: c.ProductName,
				Quantity:    c.Quantity,
				UnitPrice:   c.UnitPrice,
				TotalPrice:  c.TotalPrice,
			})
		}
		out[i] = item
	}
	return out
}

func mapDeliveryInput(d *pb.DeliveryInfo) *dto.DeliveryInput {
	if d == nil {
		return nil
	}
	return &dto.DeliveryInput{
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		Street:         d.Street,
		Number:         d.Number,
		Neighborhood:   d.Neighborhood,
		City:           d.City,
		State:          d.State,
		ZipCode:        d.ZipCode,
		Complement:     d.Complement,
		AdditionalInfo: d.AdditionalInfo,
		DeliveryDate:   d.DeliveryDate,
		DeliveryTime:   d.DeliveryTime,
		From:           d.From,
		To:             d.To,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package handler

import (
	"context"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperr"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/fekuna/omnipos-backoffice-service/internal/receipt"
	salehandler "github.com/fekuna/omnipos-backoffice-service/internal/sale/handler"
	"github.com/fekuna/omnipos-backoffice-service/internal/simulation"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
)

var _ pb.SimulationServiceServer = (*SimulationHandler)(nil)

type SimulationHandler struct {
	pb.UnimplementedSimulationServiceServer
	uc           simulation.UseCase
	receiptTitle string
	logger       logger.ZapLogger
}

func NewSimulationHandler(uc simulation.UseCase, receiptTitle string, log logger.ZapLogger) *SimulationHandler {
	return &SimulationHandler{
		uc:           uc,
		receiptTitle: receiptTitle,
		logger:       log,
	}
}

func (h *SimulationHandler) SimulatePrice(_ context.Context, req *pb.SimulatePriceRequest) (*pb.SimulatePriceResponse, error) {
	price := simulation.SimulatePrice(req.CostPrice, req.MarginPercent)
	return &pb.SimulatePriceResponse{
		SalePrice:        price,
		SalePriceDisplay: money.FormatCurrency(price),
	}, nil
}

func (h *SimulationHandler) SimulateMargin(_ context.Context, req *pb.SimulateMarginRequest) (*pb.SimulateMarginResponse, error) {
	margin, ok := simulation.SimulateMargin(req.CostPrice, req.SalePrice)
	if !ok {
		return &pb.SimulateMarginResponse{}, nil
	}
	return &pb.SimulateMarginResponse{
		MarginPercent: margin.StringFixed(2),
		MarginDisplay: money.FormatPercentage(margin),
	}, nil
}

func (h *SimulationHandler) Quote(ctx context.Context, req *pb.QuoteRequest) (*pb.QuoteResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	q, err := h.uc.Quote(ctx, quoteInput(merchantID, req))
	if err != nil {
		h.logger.Error("failed to build quote", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}

	out := &pb.Quote{
		Title:          q.Title,
		Lines:          salehandler.MapItems(q.Items),
		Subtotal:       q.Totals.Subtotal,
		AdditionAmount: q.Totals.AdditionAmount,
		DiscountAmount: q.Totals.DiscountAmount,
		DeliveryFee:    q.Totals.DeliveryFee,
		Total:          q.Totals.Total,
		Cost:           q.Cost,
		Text: receipt.Quote(q.Title, q.Items, q.Totals, q.Delivery, receipt.Options{
			Lang:   auth.GetLanguage(ctx),
			Header: h.receiptTitle,
		}),
	}
	if q.MarginOK {
		out.MarginDisplay = money.FormatPercentage(q.Margin)
	}
	return &pb.QuoteResponse{Quote: out}, nil
}

func (h *SimulationHandler) ExportQuote(ctx context.Context, req *pb.QuoteRequest) (*pb.ExportQuoteResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	exp, err := h.uc.ExportQuote(ctx, quoteInput(merchantID, req))
	if err != nil {
		h.logger.Error("failed to export quote", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ExportQuoteResponse{
		Filename:    exp.Filename,
		ContentType: exp.ContentType,
		Content:     exp.Content,
	}, nil
}

func quoteInput(merchantID string, req *pb.QuoteRequest) *simulation.QuoteInput {
	lines := make([]simulation.QuoteLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l == nil {
			continue
		}
		lines = append(lines, simulation.QuoteLine{
			ProductID: l.ProductId,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return &simulation.QuoteInput{
		MerchantID:    merchantID,
		Title:         req.Title,
		Lines:         lines,
		Delivery:      model.SaleType(req.SaleType) == model.SaleTypeDelivery,
		DeliveryFee:   req.DeliveryFee,
		AdditionType:  model.AdjustmentType(req.AdditionType),
		AdditionValue: req.AdditionValue,
		DiscountType:  model.AdjustmentType(req.DiscountType),
		DiscountValue: req.DiscountValue,
	}
}

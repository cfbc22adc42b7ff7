package handler

import (
	"context"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperr"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/preparation"
	salehandler "github.com/fekuna/omnipos-backoffice-service/internal/sale/handler"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
)

var _ pb.PreparationServiceServer = (*PreparationHandler)(nil)

type PreparationHandler struct {
	pb.UnimplementedPreparationServiceServer
	uc     preparation.UseCase
	logger logger.ZapLogger
}

func NewPreparationHandler(uc preparation.UseCase, log logger.ZapLogger) *PreparationHandler {
	return &PreparationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *PreparationHandler) GetChecklist(ctx context.Context, req *pb.GetChecklistRequest) (*pb.ChecklistResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	c, err := h.uc.GetChecklist(ctx, merchantID, req.SaleId)
	if err != nil {
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ChecklistResponse{Checklist: mapChecklist(c)}, nil
}

func (h *PreparationHandler) Pick(ctx context.Context, req *pb.PickRequest) (*pb.ChecklistResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	c, err := h.uc.Pick(ctx, merchantID, req.SaleId, req.LineKey, req.Quantity)
	if err != nil {
		h.logger.Error("failed to pick line",
			zap.String("sale_id", req.SaleId),
			zap.String("line", req.LineKey),
			zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ChecklistResponse{Checklist: mapChecklist(c)}, nil
}

func (h *PreparationHandler) CompletePreparation(ctx context.Context, req *pb.CompletePreparationRequest) (*pb.CompletePreparationResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	s, err := h.uc.CompletePreparation(ctx, merchantID, req.SaleId)
	if err != nil {
		h.logger.Error("failed to complete preparation", zap.String("sale_id", req.SaleId), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.CompletePreparationResponse{
		Sale:             salehandler.MapSale(s),
		ReceiptAvailable: true,
	}, nil
}

func mapChecklist(c *preparation.Checklist) *pb.Checklist {
	out := &pb.Checklist{
		SaleId:   c.Sale.ID,
		SaleType: string(c.Sale.SaleType),
		Status:   c.Sale.Status.String(),
		Complete: c.Complete(),
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, &pb.PickLine{
			Key:         l.Key,
			SaleItemId:  l.SaleItemID,
			ProductId:   l.ProductID,
			ProductName: l.ProductName,
			ParentName:  l.ParentName,
			Required:    l.Required,
			Picked:      l.Picked,
			Done:        l.Done(),
		})
	}
	return out
}

package handler

import (
	"context"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperr"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
)

var _ pb.InventoryServiceServer = (*InventoryHandler)(nil)

type InventoryHandler struct {
	pb.UnimplementedInventoryServiceServer
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) AdjustStock(ctx context.Context, req *pb.AdjustStockRequest) (*pb.AdjustStockResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	level, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		MerchantID:     merchantID,
		ProductID:      req.ProductId,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		UserID:         auth.GetUserID(ctx),
	})
	if err != nil {
		h.logger.Error("failed to adjust stock", zap.String("product_id", req.ProductId), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}

	return &pb.AdjustStockResponse{
		ProductId:     level.ProductID,
		StockQuantity: level.StockQuantity,
	}, nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *pb.ListMovementsRequest) (*pb.ListMovementsResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	mvs, count, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		MerchantID:   merchantID,
		ProductID:    req.ProductId,
		MovementType: req.MovementType,
		Page:         int(req.Page),
		PageSize:     int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list stock movements", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}

	out := make([]*pb.StockMovement, len(mvs))
	for i := range mvs {
		out[i] = mapMovement(&mvs[i])
	}
	return &pb.ListMovementsResponse{
		Movements: out,
		Total:     int32(count),
	}, nil
}

func mapMovement(m *model.StockMovement) *pb.StockMovement {
	return &pb.StockMovement{
		Id:             m.ID,
		ProductId:      m.ProductID,
		MovementType:   string(m.MovementType),
		QuantityChange: m.QuantityChange,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		ReferenceType:  deref(m.ReferenceType),
		ReferenceId:    deref(m.ReferenceID),
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package handler

import (
	"context"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperr"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/category"
	"github.com/fekuna/omnipos-backoffice-service/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

var _ pb.CategoryServiceServer = (*CategoryHandler)(nil)

type CategoryHandler struct {
	pb.UnimplementedCategoryServiceServer
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) CreateCategory(ctx context.Context, req *pb.CreateCategoryRequest) (*pb.CategoryResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	input := &dto.CreateCategoryInput{
		MerchantID:  merchantID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageUrl,
		SortOrder:   int(req.SortOrder),
	}
	if req.ParentId != "" {
		input.ParentID = &req.ParentId
	}

	cat, err := h.uc.CreateCategory(ctx, input)
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.CategoryResponse{Category: mapModelToProto(cat)}, nil
}

func (h *CategoryHandler) GetCategory(ctx context.Context, req *pb.GetCategoryRequest) (*pb.CategoryResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	cat, err := h.uc.GetCategory(ctx, merchantID, req.Id)
	if err != nil {
		return nil, apperr.Status(ctx, err)
	}
	return &pb.CategoryResponse{Category: mapModelToProto(cat)}, nil
}

func (h *CategoryHandler) ListCategories(ctx context.Context, req *pb.ListCategoriesRequest) (*pb.ListCategoriesResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	filters := &dto.CategoryFilters{
		MerchantID: merchantID,
		ParentID:   req.ParentId,
		AsTree:     req.AsTree,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	}
	if req.ActiveOnly {
		active := true
		filters.IsActive = &active
	}

	cats, count, err := h.uc.ListCategories(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}

	protoCats := make([]*pb.Category, len(cats))
	for i := range cats {
		protoCats[i] = mapModelToProto(&cats[i])
	}
	return &pb.ListCategoriesResponse{
		Categories: protoCats,
		Total:      int32(count),
	}, nil
}

func (h *CategoryHandler) UpdateCategory(ctx context.Context, req *pb.UpdateCategoryRequest) (*pb.CategoryResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	input := &dto.UpdateCategoryInput{
		ID:          req.Id,
		MerchantID:  merchantID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageUrl,
		SortOrder:   int(req.SortOrder),
		IsActive:    req.IsActive,
	}
	if req.ParentId != "" {
		input.ParentID = &req.ParentId
	}

	cat, err := h.uc.UpdateCategory(ctx, input)
	if err != nil {
		h.logger.Error("failed to update category", zap.String("category_id", req.Id), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.CategoryResponse{Category: mapModelToProto(cat)}, nil
}

func (h *CategoryHandler) DeleteCategory(ctx context.Context, req *pb.DeleteCategoryRequest) (*emptypb.Empty, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	if err := h.uc.DeleteCategory(ctx, merchantID, req.Id); err != nil {
		h.logger.Error("failed to delete category", zap.String("category_id", req.Id), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func mapModelToProto(m *model.Category) *pb.Category {
	if m == nil {
		return nil
	}

	var children []*pb.Category
	if len(m.Children) > 0 {
		children = make([]*pb.Category, len(m.Children))
		for i := range m.Children {
			children[i] = mapModelToProto(&m.Children[i])
		}
	}

	return &pb.Category{
		Id:          m.ID,
		MerchantId:  m.MerchantID,
		ParentId:    deref(m.ParentID),
		Name:        m.Name,
		Description: deref(m.Description),
		ImageUrl:    deref(m.ImageURL),
		SortOrder:   int32(m.SortOrder),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Children:    children,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

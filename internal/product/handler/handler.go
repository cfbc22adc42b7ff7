package handler

import (
	"context"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperr"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

var _ pb.ProductServiceServer = (*ProductHandler)(nil)

type ProductHandler struct {
	pb.UnimplementedProductServiceServer
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *pb.CreateProductRequest) (*pb.ProductResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	input := &dto.CreateProductInput{
		MerchantID:    merchantID,
		CategoryID:    req.CategoryId,
		SKU:           req.Sku,
		Barcode:       req.Barcode,
		Name:          req.Name,
		Description:   req.Description,
		CostPrice:     req.CostPrice,
		SalePrice:     req.SalePrice,
		MarginPercent: req.MarginPercent,
		ManageStock:   req.ManageStock,
		OnlineSale:    req.OnlineSale,
		StockQuantity: req.StockQuantity,
		IsComposition: req.IsComposition,
		Components:    mapComponentInputs(req.Components),
		ImageURL:      req.ImageUrl,
	}

	p, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *pb.GetProductRequest) (*pb.ProductResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	p, err := h.uc.GetProduct(ctx, merchantID, req.Id)
	if err != nil {
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *pb.ListProductsRequest) (*pb.ListProductsResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	page, pageSize := int(req.Page), int(req.PageSize)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	filters := &dto.ProductFilters{
		MerchantID:    merchantID,
		CategoryID:    req.CategoryId,
		IsComposition: req.Compositions,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
		Page:          page,
		PageSize:      pageSize,
	}
	if req.ActiveOnly {
		active := true
		filters.IsActive = &active
	}

	products, total, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ListProductsResponse{
		Products: mapProducts(products),
		Total:    int32(total),
		Page:     int32(page),
		PageSize: int32(pageSize),
	}, nil
}

func (h *ProductHandler) SearchProducts(ctx context.Context, req *pb.SearchProductsRequest) (*pb.ListProductsResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	products, total, err := h.uc.SearchProducts(ctx, merchantID, req.Query, int(req.Limit))
	if err != nil {
		h.logger.Error("failed to search products", zap.String("query", req.Query), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ListProductsResponse{
		Products: mapProducts(products),
		Total:    int32(total),
		Page:     1,
		PageSize: req.Limit,
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *pb.UpdateProductRequest) (*pb.ProductResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	input := &dto.UpdateProductInput{
		ID:            req.Id,
		MerchantID:    merchantID,
		CategoryID:    req.CategoryId,
		SKU:           req.Sku,
		Barcode:       req.Barcode,
		Name:          req.Name,
		Description:   req.Description,
		CostPrice:     req.CostPrice,
		SalePrice:     req.SalePrice,
		MarginPercent: req.MarginPercent,
		IsActive:      req.IsActive,
		ManageStock:   req.ManageStock,
		OnlineSale:    req.OnlineSale,
		IsComposition: req.IsComposition,
		Components:    mapComponentInputs(req.Components),
		ImageURL:      req.ImageUrl,
	}

	p, err := h.uc.UpdateProduct(ctx, input)
	if err != nil {
		h.logger.Error("failed to update product", zap.String("product_id", req.Id), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *pb.DeleteProductRequest) (*emptypb.Empty, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	if err := h.uc.DeleteProduct(ctx, merchantID, req.Id); err != nil {
		h.logger.Error("failed to delete product", zap.String("product_id", req.Id), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (h *ProductHandler) AddComponent(ctx context.Context, req *pb.AddComponentRequest) (*pb.ProductResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	p, err := h.uc.AddComponent(ctx, merchantID, req.ProductId, req.ComponentProductId, req.Quantity)
	if err != nil {
		h.logger.Warn("component not added",
			zap.String("product_id", req.ProductId),
			zap.String("component_id", req.ComponentProductId),
			zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) RemoveComponent(ctx context.Context, req *pb.RemoveComponentRequest) (*pb.ProductResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	p, err := h.uc.RemoveComponent(ctx, merchantID, req.ProductId, req.ComponentProductId)
	if err != nil {
		h.logger.Error("failed to remove component", zap.String("product_id", req.ProductId), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) SetComponentQuantity(ctx context.Context, req *pb.SetComponentQuantityRequest) (*pb.ProductResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	p, err := h.uc.SetComponentQuantity(ctx, merchantID, req.ProductId, req.ComponentProductId, req.Quantity)
	if err != nil {
		h.logger.Warn("component quantity not changed", zap.String("product_id", req.ProductId), zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) SearchComponentCandidates(ctx context.Context, req *pb.SearchComponentCandidatesRequest) (*pb.ListProductsResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	products, err := h.uc.SearchComponentCandidates(ctx, &dto.CandidateFilters{
		MerchantID: merchantID,
		Query:      req.Query,
		ExcludeID:  req.ExcludeProductId,
		Limit:      int(req.Limit),
	})
	if err != nil {
		h.logger.Error("failed to search component candidates", zap.Error(err))
		return nil, apperr.Status(ctx, err)
	}
	return &pb.ListProductsResponse{
		Products: mapProducts(products),
		Total:    int32(len(products)),
		Page:     1,
		PageSize: req.Limit,
	}, nil
}

func (h *ProductHandler) LookupPrice(ctx context.Context, req *pb.LookupPriceRequest) (*pb.LookupPriceResponse, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return nil, apperr.MissingMerchant(ctx)
	}

	p, err := h.uc.LookupPrice(ctx, merchantID, req.Code)
	if err != nil {
		return nil, apperr.Status(ctx, err)
	}
	return &pb.LookupPriceResponse{
		Product:          MapProduct(p),
		SalePrice:        p.SalePrice,
		SalePriceDisplay: money.FormatCurrency(p.SalePrice),
	}, nil
}

// MapProduct converts a catalog product into its wire form, including the
// formatted prices and margin.
func MapProduct(m *model.Product) *pb.Product {
	if m == nil {
		return nil
	}

	var components []*pb.Component
	if len(m.Components) > 0 {
		components = make([]*pb.Component, len(m.Components))
		for i, c := range m.Components {
			components[i] = &pb.Component{
				ProductId: c.Product.ID,
				Name:      c.Product.Name,
				CostPrice: c.Product.CostPrice,
				Quantity:  c.Quantity,
				TotalCost: c.Product.CostPrice.Mul(c.Quantity),
			}
		}
	}

	margin := ""
	if pct, ok := money.MarginFromPrices(m.CostPrice, m.SalePrice); ok {
		margin = money.FormatPercentage(pct)
	}

	return &pb.Product{
		Id:               m.ID,
		MerchantId:       m.MerchantID,
		CategoryId:       deref(m.CategoryID),
		Sku:              m.SKU,
		Barcode:          deref(m.Barcode),
		Name:             m.Name,
		Description:      deref(m.Description),
		CostPrice:        m.CostPrice,
		SalePrice:        m.SalePrice,
		CostPriceDisplay: money.FormatCurrency(m.CostPrice),
		SalePriceDisplay: money.FormatCurrency(m.SalePrice),
		MarginDisplay:    margin,
		IsActive:         m.IsActive,
		ManageStock:      m.ManageStock,
		OnlineSale:       m.OnlineSale,
		StockQuantity:    m.StockQuantity,
		IsComposition:    m.IsComposition,
		ImageUrl:         deref(m.ImageURL),
		Components:       components,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func mapProducts(products []model.Product) []*pb.Product {
	out := make([]*pb.Product, len(products))
	for i := range products {
		out[i] = MapProduct(&products[i])
	}
	return out
}

func mapComponentInputs(in []*pb.ComponentInput) []dto.ComponentInput {
	out := make([]dto.ComponentInput, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		out = append(out, dto.ComponentInput{ProductID: c.ProductId, Quantity: c.Quantity})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

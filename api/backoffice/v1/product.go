package backofficev1

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type Product struct {
	Id               string          `json:"id"`
	MerchantId       string          `json:"merchant_id"`
	CategoryId       string          `json:"category_id,omitempty"`
	Sku              string          `json:"sku"`
	Barcode          string          `json:"barcode,omitempty"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	CostPriceDisplay string          `json:"cost_price_display"`
	SalePriceDisplay string          `json:"sale_price_display"`
	MarginDisplay    string          `json:"margin_display"`
	IsActive         bool            `json:"is_active"`
	ManageStock      bool            `json:"manage_stock"`
	OnlineSale       bool            `json:"online_sale"`
	StockQuantity    decimal.Decimal `json:"stock_quantity"`
	IsComposition    bool            `json:"is_composition"`
	ImageUrl         string          `json:"image_url,omitempty"`
	Components       []*Component    `json:"components,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Component struct {
	ProductId string          `json:"product_id"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

type ComponentInput struct {
	ProductId string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CreateProductRequest struct {
	CategoryId    string            `json:"category_id"`
	Sku           string            `json:"sku"`
	Barcode       string            `json:"barcode"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	CostPrice     decimal.Decimal   `json:"cost_price"`
	SalePrice     decimal.Decimal   `json:"sale_price"`
	MarginPercent *decimal.Decimal  `json:"margin_percent"`
	ManageStock   bool              `json:"manage_stock"`
	OnlineSale    bool              `json:"online_sale"`
	StockQuantity decimal.Decimal   `json:"stock_quantity"`
	IsComposition bool              `json:"is_composition"`
	Components    []*ComponentInput `json:"components"`
	ImageUrl      string            `json:"image_url"`
}

type UpdateProductRequest struct {
	Id            string            `json:"id"`
	CategoryId    string            `json:"category_id"`
	Sku           string            `json:"sku"`
	Barcode       string            `json:"barcode"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	CostPrice     decimal.Decimal   `json:"cost_price"`
	SalePrice     decimal.Decimal   `json:"sale_price"`
	MarginPercent *decimal.Decimal  `json:"margin_percent"`
	IsActive      bool              `json:"is_active"`
	ManageStock   bool              `json:"manage_stock"`
	OnlineSale    bool              `json:"online_sale"`
	IsComposition bool              `json:"is_composition"`
	Components    []*ComponentInput `json:"components"`
	ImageUrl      string            `json:"image_url"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type GetProductRequest struct {
	Id string `json:"id"`
}

type ListProductsRequest struct {
	CategoryId   string `json:"category_id"`
	ActiveOnly   bool   `json:"active_only"`
	Compositions *bool  `json:"compositions"`
	SortBy       string `json:"sort_by"`
	SortOrder    string `json:"sort_order"`
	Page         int32  `json:"page"`
	PageSize     int32  `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int32      `json:"total"`
	Page     int32      `json:"page"`
	PageSize int32      `json:"page_size"`
}

type SearchProductsRequest struct {
	Query string `json:"query"`
	Limit int32  `json:"limit"`
}

type DeleteProductRequest struct {
	Id string `json:"id"`
}

type AddComponentRequest struct {
	ProductId          string          `json:"product_id"`
	ComponentProductId string          `json:"component_product_id"`
	Quantity           decimal.Decimal `json:"quantity"`
}

type RemoveComponentRequest struct {
	ProductId          string `json:"product_id"`
	ComponentProductId string `json:"component_product_id"`
}

type SetComponentQuantityRequest struct {
	ProductId          string          `json:"product_id"`
	ComponentProductId string          `json:"component_product_id"`
	Quantity           decimal.Decimal `json:"quantity"`
}

type SearchComponentCandidatesRequest struct {
	Query            string `json:"query"`
	ExcludeProductId string `json:"exclude_product_id"`
	Limit            int32  `json:"limit"`
}

type LookupPriceRequest struct {
	// Code is a scanned barcode or a typed SKU.
	Code string `json:"code"`
}

type LookupPriceResponse struct {
	Product          *Product        `json:"product"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	SalePriceDisplay string          `json:"sale_price_display"`
}

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	SearchProducts(context.Context, *SearchProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*emptypb.Empty, error)
	AddComponent(context.Context, *AddComponentRequest) (*ProductResponse, error)
	RemoveComponent(context.Context, *RemoveComponentRequest) (*ProductResponse, error)
	SetComponentQuantity(context.Context, *SetComponentQuantityRequest) (*ProductResponse, error)
	SearchComponentCandidates(context.Context, *SearchComponentCandidatesRequest) (*ListProductsResponse, error)
	LookupPrice(context.Context, *LookupPriceRequest) (*LookupPriceResponse, error)
}

type UnimplementedProductServiceServer struct{}

func (UnimplementedProductServiceServer) CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error) {
	return nil, unimplemented("CreateProduct")
}
func (UnimplementedProductServiceServer) GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error) {
	return nil, unimplemented("GetProduct")
}
func (UnimplementedProductServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, unimplemented("ListProducts")
}
func (UnimplementedProductServiceServer) SearchProducts(context.Context, *SearchProductsRequest) (*ListProductsResponse, error) {
	return nil, unimplemented("SearchProducts")
}
func (UnimplementedProductServiceServer) UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error) {
	return nil, unimplemented("UpdateProduct")
}
func (UnimplementedProductServiceServer) DeleteProduct(context.Context, *DeleteProductRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteProduct")
}
func (UnimplementedProductServiceServer) AddComponent(context.Context, *AddComponentRequest) (*ProductResponse, error) {
	return nil, unimplemented("AddComponent")
}
func (UnimplementedProductServiceServer) RemoveComponent(context.Context, *RemoveComponentRequest) (*ProductResponse, error) {
	return nil, unimplemented("RemoveComponent")
}
func (UnimplementedProductServiceServer) SetComponentQuantity(context.Context, *SetComponentQuantityRequest) (*ProductResponse, error) {
	return nil, unimplemented("SetComponentQuantity")
}
func (UnimplementedProductServiceServer) SearchComponentCandidates(context.Context, *SearchComponentCandidatesRequest) (*ListProductsResponse, error) {
	return nil, unimplemented("SearchComponentCandidates")
}
func (UnimplementedProductServiceServer) LookupPrice(context.Context, *LookupPriceRequest) (*LookupPriceResponse, error) {
	return nil, unimplemented("LookupPrice")
}

const productService = pkgName + "ProductService"

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: productService,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(productService, "CreateProduct", ProductServiceServer.CreateProduct),
		rpc.Unary(productService, "GetProduct", ProductServiceServer.GetProduct),
		rpc.Unary(productService, "ListProducts", ProductServiceServer.ListProducts),
		rpc.Unary(productService, "SearchProducts", ProductServiceServer.SearchProducts),
		rpc.Unary(productService, "UpdateProduct", ProductServiceServer.UpdateProduct),
		rpc.Unary(productService, "DeleteProduct", ProductServiceServer.DeleteProduct),
		rpc.Unary(productService, "AddComponent", ProductServiceServer.AddComponent),
		rpc.Unary(productService, "RemoveComponent", ProductServiceServer.RemoveComponent),
		rpc.Unary(productService, "SetComponentQuantity", ProductServiceServer.SetComponentQuantity),
		rpc.Unary(productService, "SearchComponentCandidates", ProductServiceServer.SearchComponentCandidates),
		rpc.Unary(productService, "LookupPrice", ProductServiceServer.LookupPrice),
	},
	Metadata: "omnipos/backoffice/v1/product",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

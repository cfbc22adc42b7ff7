package backofficev1

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

type Sale struct {
	Id             string          `json:"id"`
	MerchantId     string          `json:"merchant_id"`
	SaleType       string          `json:"sale_type"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	StatusLabel    string          `json:"status_label"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	AdditionType   string          `json:"addition_type"`
	AdditionValue  decimal.Decimal `json:"addition_value"`
	AdditionAmount decimal.Decimal `json:"addition_amount"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	TotalDisplay   string          `json:"total_display"`
	Notes          string          `json:"notes,omitempty"`
	Items          []*SaleItem     `json:"items,omitempty"`
	Delivery       *DeliveryInfo   `json:"delivery,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type SaleItem struct {
	Id          string               `json:"id"`
	ProductId   string               `json:"product_id"`
	ProductName string               `json:"product_name"`
	Quantity    decimal.Decimal      `json:"quantity"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	TotalPrice  decimal.Decimal      `json:"total_price"`
	IsComposite bool                 `json:"is_composite"`
	Components  []*ExpandedComponent `json:"components,omitempty"`
}

type ExpandedComponent struct {
	ProductId   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type DeliveryInfo struct {
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
	DeliveryTime   string     `json:"delivery_time,omitempty"`
	Street         string     `json:"street"`
	Number         string     `json:"number"`
	Complement     string     `json:"complement,omitempty"`
	Neighborhood   string     `json:"neighborhood"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	ZipCode        string     `json:"zip_code"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
	From           string     `json:"from,omitempty"`
	To             string     `json:"to,omitempty"`
}

type CheckoutItem struct {
	ProductId string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CheckoutRequest struct {
	SaleType      string          `json:"sale_type"`
	PaymentMethod string          `json:"payment_method"`
	Items         []*CheckoutItem `json:"items"`
	Notes         string          `json:"notes"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	AdditionType  string          `json:"addition_type"`
	AdditionValue decimal.Decimal `json:"addition_value"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Delivery      *DeliveryInfo   `json:"delivery"`
}

type SaleResponse struct {
	Sale *Sale `json:"sale"`
}

type GetSaleRequest struct {
	Id string `json:"id"`
}

type ListSalesRequest struct {
	Status   string `json:"status"`
	SaleType string `json:"sale_type"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListSalesResponse struct {
	Sales []*Sale `json:"sales"`
	Total int32   `json:"total"`
}

type ListPendingOrdersRequest struct{}

type SetStatusRequest struct {
	Id string `json:"id"`
	// Status is a status code; StatusLabel is accepted when Status is empty.
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
}

type PrintReceiptRequest struct {
	Id    string `json:"id"`
	Width int32  `json:"width"`
}

type PrintReceiptResponse struct {
	Text string `json:"text"`
}

type WatchPendingOrdersRequest struct{}

type PendingOrdersSnapshot struct {
	Sales     []*Sale   `json:"sales"`
	Refreshed time.Time `json:"refreshed"`
}

type SaleServiceServer interface {
	Checkout(context.Context, *CheckoutRequest) (*SaleResponse, error)
	GetSale(context.Context, *GetSaleRequest) (*SaleResponse, error)
	ListSales(context.Context, *ListSalesRequest) (*ListSalesResponse, error)
	ListPendingOrders(context.Context, *ListPendingOrdersRequest) (*ListSalesResponse, error)
	SetStatus(context.Context, *SetStatusRequest) (*SaleResponse, error)
	PrintReceipt(context.Context, *PrintReceiptRequest) (*PrintReceiptResponse, error)
	WatchPendingOrders(*WatchPendingOrdersRequest, rpc.Sender[PendingOrdersSnapshot]) error
}

type UnimplementedSaleServiceServer struct{}

func (UnimplementedSaleServiceServer) Checkout(context.Context, *CheckoutRequest) (*SaleResponse, error) {
	return nil, unimplemented("Checkout")
}
func (UnimplementedSaleServiceServer) GetSale(context.Context, *GetSaleRequest) (*SaleResponse, error) {
	return nil, unimplemented("GetSale")
}
func (UnimplementedSaleServiceServer) ListSales(context.Context, *ListSalesRequest) (*ListSalesResponse, error) {
	return nil, unimplemented("ListSales")
}
func (UnimplementedSaleServiceServer) ListPendingOrders(context.Context, *ListPendingOrdersRequest) (*ListSalesResponse, error) {
	return nil, unimplemented("ListPendingOrders")
}
func (UnimplementedSaleServiceServer) SetStatus(context.Context, *SetStatusRequest) (*SaleResponse, error) {
	return nil, unimplemented("SetStatus")
}
func (UnimplementedSaleServiceServer) PrintReceipt(context.Context, *PrintReceiptRequest) (*PrintReceiptResponse, error) {
	return nil, unimplemented("PrintReceipt")
}
func (UnimplementedSaleServiceServer) WatchPendingOrders(*WatchPendingOrdersRequest, rpc.Sender[PendingOrdersSnapshot]) error {
	return unimplemented("WatchPendingOrders")
}

const saleService = pkgName + "SaleService"

var SaleService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: saleService,
	HandlerType: (*SaleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(saleService, "Checkout", SaleServiceServer.Checkout),
		rpc.Unary(saleService, "GetSale", SaleServiceServer.GetSale),
		rpc.Unary(saleService, "ListSales", SaleServiceServer.ListSales),
		rpc.Unary(saleService, "ListPendingOrders", SaleServiceServer.ListPendingOrders),
		rpc.Unary(saleService, "SetStatus", SaleServiceServer.SetStatus),
		rpc.Unary(saleService, "PrintReceipt", SaleServiceServer.PrintReceipt),
	},
	Streams: []grpc.StreamDesc{
		rpc.ServerStream("WatchPendingOrders", SaleServiceServer.WatchPendingOrders),
	},
	Metadata: "omnipos/backoffice/v1/sale",
}

func RegisterSaleServiceServer(s grpc.ServiceRegistrar, srv SaleServiceServer) {
	s.RegisterService(&SaleService_ServiceDesc, srv)
}

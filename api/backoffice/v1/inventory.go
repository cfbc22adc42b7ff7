package backofficev1

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

type StockMovement struct {
	Id             string          `json:"id"`
	ProductId      string          `json:"product_id"`
	MovementType   string          `json:"movement_type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceId    string          `json:"reference_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type AdjustStockRequest struct {
	ProductId      string          `json:"product_id"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Reason         string          `json:"reason"`
}

type AdjustStockResponse struct {
	ProductId     string          `json:"product_id"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

type ListMovementsRequest struct {
	ProductId    string `json:"product_id"`
	MovementType string `json:"movement_type"`
	Page         int32  `json:"page"`
	PageSize     int32  `json:"page_size"`
}

type ListMovementsResponse struct {
	Movements []*StockMovement `json:"movements"`
	Total     int32            `json:"total"`
}

type InventoryServiceServer interface {
	AdjustStock(context.Context, *AdjustStockRequest) (*AdjustStockResponse, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
}

type UnimplementedInventoryServiceServer struct{}

func (UnimplementedInventoryServiceServer) AdjustStock(context.Context, *AdjustStockRequest) (*AdjustStockResponse, error) {
	return nil, unimplemented("AdjustStock")
}
func (UnimplementedInventoryServiceServer) ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error) {
	return nil, unimplemented("ListMovements")
}

const inventoryService = pkgName + "InventoryService"

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: inventoryService,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(inventoryService, "AdjustStock", InventoryServiceServer.AdjustStock),
		rpc.Unary(inventoryService, "ListMovements", InventoryServiceServer.ListMovements),
	},
	Metadata: "omnipos/backoffice/v1/inventory",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

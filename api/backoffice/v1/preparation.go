package backofficev1

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

type PickLine struct {
	Key         string          `json:"key"`
	SaleItemId  string          `json:"sale_item_id"`
	ProductId   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ParentName  string          `json:"parent_name,omitempty"`
	Required    decimal.Decimal `json:"required"`
	Picked      decimal.Decimal `json:"picked"`
	Done        bool            `json:"done"`
}

type Checklist struct {
	SaleId   string      `json:"sale_id"`
	SaleType string      `json:"sale_type"`
	Status   string      `json:"status"`
	Lines    []*PickLine `json:"lines"`
	Complete bool        `json:"complete"`
}

type GetChecklistRequest struct {
	SaleId string `json:"sale_id"`
}

type ChecklistResponse struct {
	Checklist *Checklist `json:"checklist"`
}

type PickRequest struct {
	SaleId   string          `json:"sale_id"`
	LineKey  string          `json:"line_key"`
	Quantity decimal.Decimal `json:"quantity"`
}

type CompletePreparationRequest struct {
	SaleId string `json:"sale_id"`
}

type CompletePreparationResponse struct {
	Sale             *Sale `json:"sale"`
	ReceiptAvailable bool  `json:"receipt_available"`
}

type PreparationServiceServer interface {
	GetChecklist(context.Context, *GetChecklistRequest) (*ChecklistResponse, error)
	Pick(context.Context, *PickRequest) (*ChecklistResponse, error)
	CompletePreparation(context.Context, *CompletePreparationRequest) (*CompletePreparationResponse, error)
}

type UnimplementedPreparationServiceServer struct{}

func (UnimplementedPreparationServiceServer) GetChecklist(context.Context, *GetChecklistRequest) (*ChecklistResponse, error) {
	return nil, unimplemented("GetChecklist")
}
func (UnimplementedPreparationServiceServer) Pick(context.Context, *PickRequest) (*ChecklistResponse, error) {
	return nil, unimplemented("Pick")
}
func (UnimplementedPreparationServiceServer) CompletePreparation(context.Context, *CompletePreparationRequest) (*CompletePreparationResponse, error) {
	return nil, unimplemented("CompletePreparation")
}

const preparationService = pkgName + "PreparationService"

var PreparationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: preparationService,
	HandlerType: (*PreparationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(preparationService, "GetChecklist", PreparationServiceServer.GetChecklist),
		rpc.Unary(preparationService, "Pick", PreparationServiceServer.Pick),
		rpc.Unary(preparationService, "CompletePreparation", PreparationServiceServer.CompletePreparation),
	},
	Metadata: "omnipos/backoffice/v1/preparation",
}

func RegisterPreparationServiceServer(s grpc.ServiceRegistrar, srv PreparationServiceServer) {
	s.RegisterService(&PreparationService_ServiceDesc, srv)
}

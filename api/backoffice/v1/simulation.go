package backofficev1

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

// SimulatePriceRequest takes the raw text typed in the simulator fields.
type SimulatePriceRequest struct {
	CostPrice     string `json:"cost_price"`
	MarginPercent string `json:"margin_percent"`
}

type SimulatePriceResponse struct {
	SalePrice        decimal.Decimal `json:"sale_price"`
	SalePriceDisplay string          `json:"sale_price_display"`
}

type SimulateMarginRequest struct {
	CostPrice string `json:"cost_price"`
	SalePrice string `json:"sale_price"`
}

type SimulateMarginResponse struct {
	// MarginPercent is empty when the cost price is zero.
	MarginPercent string `json:"margin_percent"`
	MarginDisplay string `json:"margin_display"`
}

type QuoteLineInput struct {
	ProductId string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type QuoteRequest struct {
	Title         string            `json:"title"`
	Lines         []*QuoteLineInput `json:"lines"`
	SaleType      string            `json:"sale_type"`
	DeliveryFee   decimal.Decimal   `json:"delivery_fee"`
	AdditionType  string            `json:"addition_type"`
	AdditionValue decimal.Decimal   `json:"addition_value"`
	DiscountType  string            `json:"discount_type"`
	DiscountValue decimal.Decimal   `json:"discount_value"`
}

type Quote struct {
	Title          string          `json:"title"`
	Lines          []*SaleItem     `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	AdditionAmount decimal.Decimal `json:"addition_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
	Cost           decimal.Decimal `json:"cost"`
	MarginDisplay  string          `json:"margin_display"`
	Text           string          `json:"text"`
}

type QuoteResponse struct {
	Quote *Quote `json:"quote"`
}

type ExportQuoteResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

type SimulationServiceServer interface {
	SimulatePrice(context.Context, *SimulatePriceRequest) (*SimulatePriceResponse, error)
	SimulateMargin(context.Context, *SimulateMarginRequest) (*SimulateMarginResponse, error)
	Quote(context.Context, *QuoteRequest) (*QuoteResponse, error)
	ExportQuote(context.Context, *QuoteRequest) (*ExportQuoteResponse, error)
}

type UnimplementedSimulationServiceServer struct{}

func (UnimplementedSimulationServiceServer) SimulatePrice(context.Context, *SimulatePriceRequest) (*SimulatePriceResponse, error) {
	return nil, unimplemented("SimulatePrice")
}
func (UnimplementedSimulationServiceServer) SimulateMargin(context.Context, *SimulateMarginRequest) (*SimulateMarginResponse, error) {
	return nil, unimplemented("SimulateMargin")
}
func (UnimplementedSimulationServiceServer) Quote(context.Context, *QuoteRequest) (*QuoteResponse, error) {
	return nil, unimplemented("Quote")
}
func (UnimplementedSimulationServiceServer) ExportQuote(context.Context, *QuoteRequest) (*ExportQuoteResponse, error) {
	return nil, unimplemented("ExportQuote")
}

const simulationService = pkgName + "SimulationService"

var SimulationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: simulationService,
	HandlerType: (*SimulationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(simulationService, "SimulatePrice", SimulationServiceServer.SimulatePrice),
		rpc.Unary(simulationService, "SimulateMargin", SimulationServiceServer.SimulateMargin),
		rpc.Unary(simulationService, "Quote", SimulationServiceServer.Quote),
		rpc.Unary(simulationService, "ExportQuote", SimulationServiceServer.ExportQuote),
	},
	Metadata: "omnipos/backoffice/v1/simulation",
}

func RegisterSimulationServiceServer(s grpc.ServiceRegistrar, srv SimulationServiceServer) {
	s.RegisterService(&SimulationService_ServiceDesc, srv)
}

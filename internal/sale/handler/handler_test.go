package handler

import (
	"context"
	"testing"
	"time"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/feed"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type stubSales struct {
	sale.UseCase
	set orderstatus.Status
}

func (s *stubSales) SetStatus(_ context.Context, _, id string, st orderstatus.Status) (*model.Sale, error) {
	s.set = st
	return &model.Sale{BaseModel: model.BaseModel{ID: id}, Status: st}, nil
}

type stubBoard struct {
	hub     *feed.Hub
	current feed.Snapshot
}

func (b *stubBoard) Current(context.Context, string) (*feed.Snapshot, error) {
	return &b.current, nil
}

func (b *stubBoard) Subscribe(merchantID string) (<-chan feed.Snapshot, func()) {
	return b.hub.Subscribe(merchantID)
}

type chanSender struct {
	ctx  context.Context
	sent chan *pb.PendingOrdersSnapshot
}

func (s *chanSender) Send(m *pb.PendingOrdersSnapshot) error {
	s.sent <- m
	return nil
}

func (s *chanSender) Context() context.Context { return s.ctx }

func merchantCtx(ctx context.Context) context.Context {
	return metadata.NewIncomingContext(ctx, metadata.Pairs("x-merchant-id", "m"))
}

func TestSetStatusByLabel(t *testing.T) {
	uc := &stubSales{}
	h := NewSaleHandler(uc, nil, "", logger.NewNop())
	ctx := merchantCtx(context.Background())

	res, err := h.SetStatus(ctx, &pb.SetStatusRequest{Id: "s1", StatusLabel: "Pago"})
	require.NoError(t, err)
	assert.Equal(t, "paid", res.Sale.Status)
	assert.Equal(t, "Pago", res.Sale.StatusLabel)

	_, err = h.SetStatus(ctx, &pb.SetStatusRequest{Id: "s1", StatusLabel: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, orderstatus.Pending, uc.set)

	_, err = h.SetStatus(ctx, &pb.SetStatusRequest{Id: "s1", Status: "lost"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.SetStatus(context.Background(), &pb.SetStatusRequest{Id: "s1", Status: "paid"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestWatchPendingOrders(t *testing.T) {
	hub := feed.NewHub()
	board := &stubBoard{hub: hub, current: feed.Snapshot{MerchantID: "m", Sales: []model.Sale{{Total: decimal.NewFromInt(10)}}}}
	h := NewSaleHandler(&stubSales{}, board, "", logger.NewNop())

	ctx, cancel := context.WithCancel(merchantCtx(context.Background()))
	stream := &chanSender{ctx: ctx, sent: make(chan *pb.PendingOrdersSnapshot, 4)}
	done := make(chan error, 1)
	go func() { done <- h.WatchPendingOrders(&pb.WatchPendingOrdersRequest{}, stream) }()

	first := <-stream.sent
	require.Len(t, first.Sales, 1)
	assert.Equal(t, "R$ 10,00", first.Sales[0].TotalDisplay)

	require.Eventually(t, func() bool { return hub.Subscribers("m") == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(feed.Snapshot{MerchantID: "m"})
	second := <-stream.sent
	assert.Empty(t, second.Sales)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, hub.Subscribers("m"))
}

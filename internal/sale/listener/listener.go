package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/feed"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Refresher interface {
	Refresh(ctx context.Context, merchantID string) (*feed.Snapshot, error)
}

// PendingOrdersListener rebuilds the pending-orders board of the merchant
// named in every sale event.
type PendingOrdersListener struct {
	consumer Reader
	feed     Refresher
	logger   logger.ZapLogger
}

func NewPendingOrdersListener(consumer Reader, feed Refresher, logger logger.ZapLogger) *PendingOrdersListener {
	return &PendingOrdersListener{
		consumer: consumer,
		feed:     feed,
		logger:   logger,
	}
}

func (l *PendingOrdersListener) Start(ctx context.Context) {
	l.logger.Info("starting pending orders kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping pending orders kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *PendingOrdersListener) processMessage(ctx context.Context, value []byte) {
	var evt event.SaleChanged
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("failed to unmarshal sale event", zap.Error(err))
		return
	}
	if evt.MerchantID == "" {
		return
	}

	snap, err := l.feed.Refresh(ctx, evt.MerchantID)
	if err != nil {
		l.logger.Error("failed to refresh pending orders",
			zap.String("merchant_id", evt.MerchantID),
			zap.String("sale_id", evt.SaleID),
			zap.Error(err),
		)
		return
	}
	l.logger.Debug("pending orders refreshed",
		zap.String("merchant_id", evt.MerchantID),
		zap.Int("orders", len(snap.Sales)))
}

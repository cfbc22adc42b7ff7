package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the consuming side of a Kafka consumer group.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type InventoryListener struct {
	consumer Reader
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer Reader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping inventory kafka listener")
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

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var evt event.SaleChanged
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("failed to unmarshal sale event", zap.Error(err))
		return
	}
	if evt.EventType != event.SaleCreated {
		return
	}

	l.logger.Info("deducting stock for sale", zap.String("sale_id", evt.SaleID), zap.Int("lines", len(evt.Stock)))
	if err := l.uc.DeductForSale(ctx, evt.MerchantID, evt.SaleID, evt.Stock); err != nil {
		l.logger.Error("failed to deduct stock",
			zap.String("sale_id", evt.SaleID),
			zap.Error(err),
		)
	}
}

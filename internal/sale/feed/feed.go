package feed

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
)

const snapshotTTL = 10 * time.Minute

// Lister loads the current pending orders of a merchant.
type Lister interface {
	ListPendingOrders(ctx context.Context, merchantID string) ([]model.Sale, error)
}

type Store interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Feed rebuilds snapshots from the database on every refresh. Change
// events are only a trigger, so redelivered or reordered events are
// harmless.
type Feed struct {
	lister Lister
	store  Store
	hub    *Hub
	logger logger.ZapLogger
	now    func() time.Time
}

// NewFeed builds a feed. store may be nil.
func NewFeed(lister Lister, store Store, hub *Hub, log logger.ZapLogger) *Feed {
	return &Feed{
		lister: lister,
		store:  store,
		hub:    hub,
		logger: log,
		now:    time.Now,
	}
}

func snapshotKey(merchantID string) string {
	return "pending-orders:" + merchantID
}

// Refresh re-fetches the pending orders, caches the snapshot and
// broadcasts it.
func (f *Feed) Refresh(ctx context.Context, merchantID string) (*Snapshot, error) {
	sales, err := f.lister.ListPendingOrders(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	s := Snapshot{MerchantID: merchantID, Sales: sales, Refreshed: f.now().UTC()}

	if f.store != nil {
		if err := f.store.SetJSON(ctx, snapshotKey(merchantID), s, snapshotTTL); err != nil {
			f.logger.Warn("failed to cache pending orders", zap.String("merchant_id", merchantID), zap.Error(err))
		}
	}
	f.hub.Publish(s)
	return &s, nil
}

// Current returns the cached snapshot, refreshing on a miss.
func (f *Feed) Current(ctx context.Context, merchantID string) (*Snapshot, error) {
	if f.store != nil {
		var s Snapshot
		found, err := f.store.GetJSON(ctx, snapshotKey(merchantID), &s)
		if err != nil {
			f.logger.Warn("failed to read pending orders cache", zap.String("merchant_id", merchantID), zap.Error(err))
		}
		if found {
			return &s, nil
		}
	}
	return f.Refresh(ctx, merchantID)
}

func (f *Feed) Subscribe(merchantID string) (<-chan Snapshot, func()) {
	return f.hub.Subscribe(merchantID)
}

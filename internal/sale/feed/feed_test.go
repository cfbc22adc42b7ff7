package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLister struct {
	calls int
	sales []model.Sale
}

func (l *countingLister) ListPendingOrders(context.Context, string) ([]model.Sale, error) {
	l.calls++
	return l.sales, nil
}

type memStore map[string][]byte

func (m memStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m memStore) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	m[key] = raw
	return err
}

func TestHubKeepsNewest(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("m")
	other, cancelOther := h.Subscribe("n")
	defer cancelOther()

	h.Publish(Snapshot{MerchantID: "m", Sales: make([]model.Sale, 1)})
	h.Publish(Snapshot{MerchantID: "m", Sales: make([]model.Sale, 2)})

	got := <-ch
	assert.Len(t, got.Sales, 2)
	select {
	case <-other:
		t.Fatal("snapshot leaked to another merchant")
	default:
	}

	assert.Equal(t, 1, h.Subscribers("m"))
	cancel()
	cancel()
	assert.Equal(t, 0, h.Subscribers("m"))
	_, open := <-ch
	assert.False(t, open)
}

func TestFeedRefreshAndCurrent(t *testing.T) {
	lister := &countingLister{sales: []model.Sale{{MerchantID: "m"}}}
	store := memStore{}
	f := NewFeed(lister, store, NewHub(), logger.NewNop())
	ctx := context.Background()

	ch, cancel := f.Subscribe("m")
	defer cancel()

	s, err := f.Current(ctx, "m")
	require.NoError(t, err)
	assert.Len(t, s.Sales, 1)
	assert.Equal(t, 1, lister.calls)
	assert.Contains(t, store, "pending-orders:m")
	assert.Len(t, (<-ch).Sales, 1)

	_, err = f.Current(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls, "served from cache")

	lister.sales = nil
	_, err = f.Refresh(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
	assert.Empty(t, (<-ch).Sales)
}

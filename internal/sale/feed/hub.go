// Package feed keeps the pending-orders board of each merchant and pushes
// fresh snapshots to live subscribers.
package feed

import (
	"sync"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

type Snapshot struct {
	MerchantID string       `json:"merchant_id"`
	Sales      []model.Sale `json:"sales"`
	Refreshed  time.Time    `json:"refreshed"`
}

// Hub fans snapshots out to subscribers of the same merchant. A slow
// subscriber only ever sees the newest snapshot; older ones are dropped.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Snapshot]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Snapshot]struct{})}
}

// Subscribe returns a channel of snapshots for merchantID and the function
// that unsubscribes it. The channel is closed on unsubscribe.
func (h *Hub) Subscribe(merchantID string) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	h.mu.Lock()
	if h.subs[merchantID] == nil {
		h.subs[merchantID] = make(map[chan Snapshot]struct{})
	}
	h.subs[merchantID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[merchantID], ch)
			if len(h.subs[merchantID]) == 0 {
				delete(h.subs, merchantID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish never blocks.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[s.MerchantID] {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// Subscribers counts live subscriptions of merchantID.
func (h *Hub) Subscribers(merchantID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[merchantID])
}

package eventbus

import (
	"context"
	"sync"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/ports"
)

// SubscriptionBuffer is the number of positions queued per subscriber. A
// subscriber that falls behind loses the oldest positions it has not read.
const SubscriptionBuffer = 16

// Subscription receives the positions of one courier until it is cancelled.
type Subscription struct {
	C         <-chan events.CourierPositionRecorded
	courierID string
	ch        chan events.CourierPositionRecorded
	hub       *TrackingHub
	once      sync.Once
}

// Cancel detaches the subscription and closes C. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// TrackingHub fans CourierPositionRecorded events out to live subscribers of
// that courier. Other events are ignored.
type TrackingHub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

var _ ports.EventPublisher = (*TrackingHub)(nil)

func NewTrackingHub() *TrackingHub {
	return &TrackingHub{subs: make(map[string]map[*Subscription]struct{})}
}

func (h *TrackingHub) Subscribe(courierID string) *Subscription {
	ch := make(chan events.CourierPositionRecorded, SubscriptionBuffer)
	sub := &Subscription{C: ch, courierID: courierID, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[courierID] == nil {
		h.subs[courierID] = make(map[*Subscription]struct{})
	}
	h.subs[courierID][sub] = struct{}{}
	return sub
}

// Subscribers returns the number of live subscriptions for a courier.
func (h *TrackingHub) Subscribers(courierID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[courierID])
}

func (h *TrackingHub) Publish(_ context.Context, evts ...events.Event) error {
	for _, evt := range evts {
		pos, ok := evt.(events.CourierPositionRecorded)
		if !ok {
			continue
		}
		h.broadcast(pos)
	}
	return nil
}

func (h *TrackingHub) broadcast(pos events.CourierPositionRecorded) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[pos.CourierID] {
		select {
		case sub.ch <- pos:
		default:
			// drop the oldest queued position to make room
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- pos:
			default:
			}
		}
	}
}

func (h *TrackingHub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[sub.courierID]
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.courierID)
	}
	close(sub.ch)
}

// Listen is Subscribe in channel form.
func (h *TrackingHub) Listen(courierID string) (<-chan events.CourierPositionRecorded, func()) {
	sub := h.Subscribe(courierID)
	return sub.C, sub.Cancel
}

package notifications

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultSubscriberBuffer = 16

// Subscription receives notifications published on a Hub
type Subscription struct {
	C         <-chan Notification
	ch        chan Notification
	stationID string
	eventID   int64
	hub       *Hub
}

// Close detaches the subscription from its hub
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub is an in-process publish/subscribe list. A subscriber whose buffer
// is full misses the message instead of blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	buffer  int
	dropped atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: defaultSubscriberBuffer,
	}
}

// Subscribe registers a subscriber scoped to a station and/or event
func (h *Hub) Subscribe(stationID string, eventID int64) *Subscription {
	ch := make(chan Notification, h.buffer)
	sub := &Subscription{C: ch, ch: ch, stationID: stationID, eventID: eventID, hub: h}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// Publish implements Notifier
func (h *Hub) Publish(_ context.Context, n Notification) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !n.Matches(sub.stationID, sub.eventID) {
			continue
		}
		select {
		case sub.ch <- n:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Subscribers returns the number of live subscriptions
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped on full buffers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

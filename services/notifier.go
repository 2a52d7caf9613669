package services

import (
	"sync"
	"time"
)

// Notifier is the hook booking/refund services use to push state changes to
// connected clients. The core depends only on this interface, never on the
// delivery transport.
type Notifier interface {
	Publish(event string, payload any)
}

// Event names emitted by the booking core.
const (
	EventBookingCreated   = "bookingCreated"
	EventBookingApproved  = "bookingApproved"
	EventBookingRejected  = "bookingRejected"
	EventBookingCompleted = "bookingCompleted"
	EventRefundIssued     = "refundIssued"
	EventRefundRequested  = "refundRequested"
	EventRefundRejected   = "refundRejected"
)

type Event struct {
	Name    string    `json:"name"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Hub is an in-process fan-out Notifier backing the SSE stream. Slow
// subscribers drop events rather than block publishers.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

func (h *Hub) Publish(event string, payload any) {
	ev := Event{Name: event, Payload: payload, At: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release it.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

var _ Notifier = (*Hub)(nil)

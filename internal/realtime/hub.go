// Package realtime fans seat events out to the clients watching a schedule.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

const subscriberBuffer = 32

// Subscription receives the events of one schedule for one client.
type Subscription struct {
	ScheduleID int
	ClientID   string
	events     chan domain.SeatEvent
	done       chan struct{}
	once       sync.Once
}

func (s *Subscription) Events() <-chan domain.SeatEvent {
	return s.events
}

// Done is closed when the subscription is removed from the hub.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Hub keeps the subscribers of every schedule topic on this instance.
type Hub struct {
	mu     sync.RWMutex
	topics map[int]map[string]*Subscription
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics: make(map[int]map[string]*Subscription),
		logger: logger,
	}
}

// Join subscribes the client to the schedule. Joining twice returns the existing subscription.
func (h *Hub) Join(scheduleID int, clientID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	topic := h.topics[scheduleID]
	if topic == nil {
		topic = make(map[string]*Subscription)
		h.topics[scheduleID] = topic
	}

	if sub, ok := topic[clientID]; ok {
		return sub
	}

	sub := &Subscription{
		ScheduleID: scheduleID,
		ClientID:   clientID,
		events:     make(chan domain.SeatEvent, subscriberBuffer),
		done:       make(chan struct{}),
	}
	topic[clientID] = sub

	return sub
}

// Leave unsubscribes the client. Leaving a topic the client is not in is a no-op.
func (h *Hub) Leave(scheduleID int, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topic := h.topics[scheduleID]
	sub, ok := topic[clientID]
	if !ok {
		return
	}

	delete(topic, clientID)
	if len(topic) == 0 {
		delete(h.topics, scheduleID)
	}

	sub.close()
}

// Deliver hands the event to every subscriber of its schedule without
// blocking. Subscribers whose buffer is full miss the event.
func (h *Hub) Deliver(event domain.SeatEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, sub := range h.topics[event.ScheduleID] {
		select {
		case sub.events <- event:
			delivered++
		default:
			h.logger.Warn("dropping seat event for slow subscriber",
				"schedule_id", event.ScheduleID, "client_id", sub.ClientID, "type", event.Type)
		}
	}

	return delivered
}

// Broadcast delivers locally. It lets the hub serve as the broadcaster of a single instance.
func (h *Hub) Broadcast(ctx context.Context, event domain.SeatEvent) error {
	h.Deliver(event)
	return nil
}

func (h *Hub) Subscribers(scheduleID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[scheduleID])
}

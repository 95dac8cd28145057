package mocks

import (
	"context"
	"sync"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

// MockBroadcaster records broadcast events. Err, when set, is returned from every call.
type MockBroadcaster struct {
	mu     sync.Mutex
	events []domain.SeatEvent
	Err    error
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, event domain.SeatEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return m.Err
}

func (m *MockBroadcaster) Events() []domain.SeatEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]domain.SeatEvent, len(m.events))
	copy(events, m.events)
	return events
}

func (m *MockBroadcaster) EventTypes() []domain.SeatEventType {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]domain.SeatEventType, len(m.events))
	for i, e := range m.events {
		types[i] = e.Type
	}
	return types
}

func (m *MockBroadcaster) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil
}

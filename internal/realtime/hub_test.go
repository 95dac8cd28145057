package realtime

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubJoinIsIdempotent(t *testing.T) {
	hub := newTestHub()

	first := hub.Join(1, "client")
	second := hub.Join(1, "client")

	assert.Same(t, first, second)
	assert.Equal(t, 1, hub.Subscribers(1))
}

func TestHubLeaveIsIdempotent(t *testing.T) {
	hub := newTestHub()

	sub := hub.Join(1, "client")
	hub.Leave(1, "client")
	hub.Leave(1, "client")
	hub.Leave(2, "unknown")

	assert.Zero(t, hub.Subscribers(1))

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription should be closed after leave")
	}
}

func TestHubDeliversOnlyToScheduleTopic(t *testing.T) {
	hub := newTestHub()

	a := hub.Join(1, "a")
	b := hub.Join(1, "b")
	other := hub.Join(2, "c")

	event := domain.SeatEvent{
		Type:       domain.EventSeatsLocked,
		ScheduleID: 1,
		SeatIDs:    []int{4},
		Timestamp:  time.Now(),
	}

	err := hub.Broadcast(context.Background(), event)
	require.NoError(t, err)

	for _, sub := range []*Subscription{a, b} {
		select {
		case got := <-sub.Events():
			assert.Equal(t, event.SeatIDs, got.SeatIDs)
		default:
			t.Fatalf("subscriber %s did not receive the event", sub.ClientID)
		}
	}

	select {
	case <-other.Events():
		t.Fatal("subscriber of another schedule received the event")
	default:
	}
}

func TestHubDropsEventsForSlowSubscribers(t *testing.T) {
	hub := newTestHub()

	slow := hub.Join(1, "slow")

	for i := 0; i < subscriberBuffer; i++ {
		assert.Equal(t, 1, hub.Deliver(domain.SeatEvent{ScheduleID: 1}))
	}

	done := make(chan int)
	go func() {
		done <- hub.Deliver(domain.SeatEvent{ScheduleID: 1})
	}()

	select {
	case delivered := <-done:
		assert.Zero(t, delivered)
	case <-time.After(time.Second):
		t.Fatal("deliver blocked on a full subscriber")
	}

	assert.Len(t, slow.Events(), subscriberBuffer)
}

package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "schedule_events:"

// RedisBroadcaster publishes seat events on Redis so that the hubs of all API
// instances receive them.
type RedisBroadcaster struct {
	client redis.UniversalClient
	hub    *Hub
	logger *slog.Logger
}

func NewRedisBroadcaster(client redis.UniversalClient, hub *Hub, logger *slog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client: client,
		hub:    hub,
		logger: logger,
	}
}

func (b *RedisBroadcaster) Broadcast(ctx context.Context, event domain.SeatEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return b.client.Publish(ctx, channelName(event.ScheduleID), payload).Err()
}

// Run relays published events into the local hub until ctx is done.
func (b *RedisBroadcaster) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to seat events: %w", err)
	}

	b.logger.Info("relaying seat events from redis")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			b.relay(msg)
		}
	}
}

func (b *RedisBroadcaster) relay(msg *redis.Message) {
	var event domain.SeatEvent

	err := json.Unmarshal([]byte(msg.Payload), &event)
	if err != nil {
		b.logger.Warn("discarding malformed seat event", "channel", msg.Channel, "error", err)
		return
	}

	if event.ScheduleID == 0 {
		id, err := strconv.Atoi(strings.TrimPrefix(msg.Channel, channelPrefix))
		if err != nil {
			b.logger.Warn("discarding seat event without schedule", "channel", msg.Channel)
			return
		}
		event.ScheduleID = id
	}

	b.hub.Deliver(event)
}

func channelName(scheduleID int) string {
	return channelPrefix + strconv.Itoa(scheduleID)
}

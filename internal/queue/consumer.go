package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	prefetchCount = 20
	maxBackoff    = 30 * time.Second
	requeueDelay  = 5 * time.Second
)

// Consumer feeds booking confirmations from RabbitMQ to a handler. Messages
// the handler fails on are requeued after a short pause; only payloads that
// cannot be decoded are dropped.
type Consumer struct {
	url          string
	queue        string
	handler      Handler
	logger       *slog.Logger
	requeueDelay time.Duration
}

func NewConsumer(url string, handler Handler, logger *slog.Logger) *Consumer {
	return &Consumer{
		url:          url,
		queue:        BookingConfirmedQueue,
		handler:      handler,
		logger:       logger,
		requeueDelay: requeueDelay,
	}
}

// Run consumes until ctx is done, reconnecting with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second

	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("failed to connect to rabbitmq", "error", err, "retry_in", backoff.String())

			if !sleep(ctx, backoff) {
				return nil
			}

			backoff = min(backoff*2, maxBackoff)
			continue
		}

		backoff = time.Second

		err = c.consume(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return nil
		}

		c.logger.Warn("booking consumer stopped, reconnecting", "error", err)

		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer ch.Close()

	err = ch.Qos(prefetchCount, 0, false)
	if err != nil {
		c.logger.Warn("failed to set qos", "error", err)
	}

	_, err = ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.logger.Info("consuming booking confirmations", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}

			c.process(ctx, d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	confirmation, err := decodeConfirmation(d.Body)
	if err != nil {
		c.logger.Error("dropping malformed booking confirmation", "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	err = c.handler(ctx, confirmation)
	if err != nil {
		c.logger.Error("failed to handle booking confirmation, requeueing",
			"booking_id", confirmation.BookingID, "redelivered", d.Redelivered, "error", err)

		// Keeps a failing handler from spinning on the same message.
		sleep(ctx, c.requeueDelay)
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

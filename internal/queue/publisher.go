package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes booking confirmations as persistent messages. The
// connection is re-established on the next publish after it drops.
type Publisher struct {
	mu      sync.Mutex
	url     string
	queue   string
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	p := &Publisher{
		url:    url,
		queue:  BookingConfirmedQueue,
		logger: logger,
	}

	err := p.ensureConnection()
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) ensureConnection() error {
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		p.conn.Close()
		return fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
	}

	p.channel = ch

	return nil
}

func (p *Publisher) NotifyBookingConfirmed(ctx context.Context, confirmation domain.BookingConfirmation) error {
	body, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ensureConnection()
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    confirmation.Reference,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	p.logger.Debug("published booking confirmation", "booking_id", confirmation.BookingID)

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}

	return p.conn.Close()
}

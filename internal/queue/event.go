// Package queue moves booking confirmations through RabbitMQ so that slow
// follow-up work, such as sending emails, stays out of the request path.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

const BookingConfirmedQueue = "booking.confirmed"

// Handler processes one booking confirmation.
type Handler func(ctx context.Context, confirmation domain.BookingConfirmation) error

func decodeConfirmation(body []byte) (domain.BookingConfirmation, error) {
	var confirmation domain.BookingConfirmation

	err := json.Unmarshal(body, &confirmation)
	if err != nil {
		return confirmation, fmt.Errorf("unmarshal booking confirmation: %w", err)
	}

	if confirmation.BookingID == 0 {
		return confirmation, fmt.Errorf("booking confirmation without booking id")
	}

	return confirmation, nil
}

// DirectNotifier runs the handler in process. It is used when no broker is configured.
type DirectNotifier struct {
	handler Handler
}

func NewDirectNotifier(handler Handler) *DirectNotifier {
	return &DirectNotifier{handler: handler}
}

func (n *DirectNotifier) NotifyBookingConfirmed(ctx context.Context, confirmation domain.BookingConfirmation) error {
	return n.handler(ctx, confirmation)
}

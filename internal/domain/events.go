package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SeatEventType string

const (
	EventSeatsBeingLocked SeatEventType = "seats-being-locked"
	EventSeatsLocked      SeatEventType = "seats-locked"
	EventSeatsUnlocked    SeatEventType = "seats-unlocked"
	EventSeatsBooked      SeatEventType = "seats-booked"
)

// SeatEvent is broadcast to everyone watching a schedule's seat map.
// SessionID carries the holder reference, never the session itself.
type SeatEvent struct {
	Type       SeatEventType `json:"type"`
	ScheduleID int           `json:"scheduleId"`
	SeatIDs    []int         `json:"seatIds"`
	SessionID  string        `json:"sessionId,omitempty"`
	BookingID  int           `json:"bookingId,omitempty"`
	ExpiresAt  *time.Time    `json:"expiresAt,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Broadcaster delivers seat events on a best effort basis.
type Broadcaster interface {
	Broadcast(ctx context.Context, event SeatEvent) error
}

// BookingConfirmation is the payload queued for the confirmation email.
// AccessToken is issued by the sender right before mailing and never leaves the process.
type BookingConfirmation struct {
	BookingID     int             `json:"bookingId"`
	Reference     string          `json:"reference"`
	AccessToken   string          `json:"-"`
	ScheduleID    int             `json:"scheduleId"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	DepartureTime time.Time       `json:"departureTime"`
	ContactEmail  string          `json:"contactEmail"`
	Passengers    []Passenger     `json:"passengers"`
	SeatLabels    []string        `json:"seatLabels"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// BookingNotifier hands confirmed bookings off to asynchronous processing.
type BookingNotifier interface {
	NotifyBookingConfirmed(ctx context.Context, confirmation BookingConfirmation) error
}

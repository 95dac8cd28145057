package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

type Passenger struct {
	SeatID   int    `json:"seatId"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Booking struct {
	ID           int
	Reference    string
	ScheduleID   int
	UserID       *int
	PaymentID    int
	ContactEmail string
	TotalPrice   decimal.Decimal
	Status       BookingStatus
	Passengers   []Passenger
	AccessToken  *Token
	CreatedAt    time.Time
	CanceledAt   *time.Time
}

func NewBooking(req CommitRequest, token *Token) Booking {
	return Booking{
		Reference:    uuid.New().String(),
		ScheduleID:   req.ScheduleID,
		UserID:       req.UserID,
		PaymentID:    req.Payment.PaymentID,
		ContactEmail: req.ContactEmail,
		TotalPrice:   req.Payment.Amount,
		Status:       BookingStatusConfirmed,
		Passengers:   req.Passengers,
		AccessToken:  token,
	}
}

func (b Booking) SeatIDs() []int {
	ids := make([]int, len(b.Passengers))
	for i, p := range b.Passengers {
		ids[i] = p.SeatID
	}

	return ids
}

// CommitRequest converts a live hold plus a confirmed payment into a booking.
type CommitRequest struct {
	ScheduleID   int
	SessionID    string
	SeatIDs      []int
	Passengers   []Passenger
	ContactEmail string
	UserID       *int
	Payment      PaymentConfirmation
}

type BookingSummary struct {
	BookingID     int
	Reference     string
	Origin        string
	Destination   string
	OperatorName  string
	DepartureTime time.Time
	SeatCount     int
	TotalPrice    decimal.Decimal
	Status        BookingStatus
	CreatedAt     time.Time
}

type BookingRepository interface {
	// InsertBookingIfSeatsFree persists the booking and marks its payment as
	// succeeded in one transaction. A seat that is already booked on the
	// schedule yields *SeatsUnavailableError. A non-nil beforeCommit runs inside
	// the transaction once every row is written; its error rolls it back.
	InsertBookingIfSeatsFree(ctx context.Context, booking *Booking, beforeCommit func(context.Context) error) error
	GetBookedSeats(ctx context.Context, scheduleID int) ([]int, error)
	GetById(ctx context.Context, id int) (*Booking, error)
	GetByPaymentId(ctx context.Context, paymentID int) (*Booking, error)
	// GetByReference matches tokenHash against both the token returned at
	// booking time and the one sent in the confirmation email.
	GetByReference(ctx context.Context, reference string, tokenHash []byte) (*Booking, error)
	SetMailToken(ctx context.Context, id int, tokenHash []byte) error
	Cancel(ctx context.Context, id int) (*Booking, error)
	ListBySchedule(ctx context.Context, scheduleID int, pagination Pagination) ([]Booking, *Metadata, error)
	ListSummariesByUser(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)
}

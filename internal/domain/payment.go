package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CheckoutDetails is what the holder asked to book when the payment was started.
type CheckoutDetails struct {
	SeatIDs      []int       `json:"seatIds"`
	Passengers   []Passenger `json:"passengers"`
	ContactEmail string      `json:"contactEmail"`
}

type Payment struct {
	ID                int
	UserID            *int
	ScheduleID        int
	HolderID          string
	ProviderReference *string
	Amount            decimal.Decimal
	Currency          string
	Status            PaymentStatus
	Checkout          CheckoutDetails
	ErrorMsg          *string
	PaymentDate       *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// PaymentConfirmation is the payment outcome presented to the coordinator at commit time.
type PaymentConfirmation struct {
	PaymentID int
	Reference string
	Status    PaymentStatus
	Amount    decimal.Decimal
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	AttachReference(ctx context.Context, id int, reference string) error
	GetByReference(ctx context.Context, reference string) (*Payment, error)
	UpdateStatus(ctx context.Context, reference string, status PaymentStatus, errMsg string) error
}

type CheckoutRequest struct {
	Payment  Payment
	Schedule Schedule
	Quote    Quote
}

type CheckoutSession struct {
	Reference string
	URL       string
	ExpiresAt time.Time
}

type PaymentEventType string

const (
	PaymentEventCompleted PaymentEventType = "completed"
	PaymentEventExpired   PaymentEventType = "expired"
	PaymentEventIgnored   PaymentEventType = "ignored"
)

type PaymentEvent struct {
	Type      PaymentEventType
	Reference string
	Status    PaymentStatus
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	ConfirmPayment(ctx context.Context, reference string) (PaymentStatus, error)
	ParseWebhook(payload []byte, signature string) (*PaymentEvent, error)
}

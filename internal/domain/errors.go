package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrEditConflict           = errors.New("edit conflict")
	ErrNotHeld                = errors.New("seat(s) are not held by the current session")
	ErrHoldExpired            = errors.New("your selections have expired, please select your seats again")
	ErrCommitInProgress       = errors.New("a booking for the held seats is already being processed")
	ErrPaymentNotConfirmed    = errors.New("payment has not been confirmed")
	ErrBookingAlreadyCanceled = errors.New("booking is already canceled")
)

// BookedHolderRef is reported as the holder of seats that belong to a committed booking.
const BookedHolderRef = "booked"

type SeatConflict struct {
	SeatID    int
	HolderRef string
}

// SeatsUnavailableError reports the requested seats that are held by another
// session or already booked.
type SeatsUnavailableError struct {
	ScheduleID int
	Conflicts  []SeatConflict
}

func (e *SeatsUnavailableError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		ids[i] = fmt.Sprint(c.SeatID)
	}

	return fmt.Sprintf("seat(s) %s are not available", strings.Join(ids, ", "))
}

func (e *SeatsUnavailableError) SeatIDs() []int {
	ids := make([]int, len(e.Conflicts))
	for i, c := range e.Conflicts {
		ids[i] = c.SeatID
	}

	return ids
}

// NotHeldError is returned when a session operates on seats it does not hold.
// HeldByOthers is diagnostic only.
type NotHeldError struct {
	ScheduleID   int
	SeatIDs      []int
	HeldByOthers []int
}

func (e *NotHeldError) Error() string {
	return fmt.Sprintf("seat(s) %v are not held by the current session", e.SeatIDs)
}

func (e *NotHeldError) Is(target error) bool {
	return target == ErrNotHeld
}

type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

func NewInvalidRequestError(format string, args ...any) *InvalidRequestError {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps storage failures. They are surfaced as is and never
// retried, since a commit may coincide with a captured payment.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

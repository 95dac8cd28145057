package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Hold is a time-bounded claim of one session on a set of seats of a schedule.
type Hold struct {
	ID         string
	ScheduleID int
	SeatIDs    []int
	SessionID  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func NewHold(scheduleID int, seatIDs []int, sessionID string, now time.Time, window time.Duration) Hold {
	return Hold{
		ID:         uuid.New().String(),
		ScheduleID: scheduleID,
		SeatIDs:    slices.Clone(seatIDs),
		SessionID:  sessionID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(window),
	}
}

func (h Hold) Live(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

func (h Hold) Covers(seatID int) bool {
	return slices.Contains(h.SeatIDs, seatID)
}

// HolderRef is the public reference of the hold's owner.
func (h Hold) HolderRef() string {
	return HolderRef(h.SessionID)
}

// HolderRef derives an opaque, stable reference for a session so that other
// clients can tell holders apart without learning the session identifier.
func HolderRef(sessionID string) string {
	sum := sha256.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:8])
}

// HoldStore is the authoritative, shared record of live holds. Every method is
// atomic with respect to the other methods for the same schedule.
type HoldStore interface {
	// Acquire stores hold, replacing the session's previous hold on the schedule.
	// It returns the replaced hold carrying only the seats this call freed, nil when
	// it freed none, or *SeatsUnavailableError when a seat is held by another live
	// hold or booked.
	Acquire(ctx context.Context, hold Hold) (*Hold, error)
	// Release removes seatIDs from the session's hold and returns what remains of it.
	Release(ctx context.Context, scheduleID int, sessionID string, seatIDs []int) (*Hold, error)
	Get(ctx context.Context, scheduleID int, sessionID string) (*Hold, error)
	// Pin marks the hold as being committed and keeps it live at least until the given time.
	Pin(ctx context.Context, scheduleID int, sessionID string, seatIDs []int, until time.Time) (*Hold, error)
	// Unpin reverts Pin, restoring the original expiry.
	Unpin(ctx context.Context, hold Hold) error
	// Promote drops a pinned hold and marks its seats as booked.
	Promote(ctx context.Context, hold Hold) error
	// Unbook makes booked seats holdable again after a cancellation.
	Unbook(ctx context.Context, scheduleID int, seatIDs []int) error
	// Holders maps every seat covered by a live hold to its session.
	Holders(ctx context.Context, scheduleID int) (map[int]string, error)
	// SweepExpired deletes expired holds. Each returned hold carries only the seats it freed.
	SweepExpired(ctx context.Context) ([]Hold, error)
}

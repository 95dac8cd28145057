package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Seat struct {
	ID         int
	Row        int
	Col        int
	Label      string
	Type       string
	ExtraPrice decimal.Decimal
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHeld      SeatStatus = "held"
	SeatBooked    SeatStatus = "booked"
)

// SeatState is the coordinator's view of a seat within one schedule.
type SeatState struct {
	Status    SeatStatus
	HolderRef string
}

type SeatRepository interface {
	// GetSeatsBySchedule returns the schedule's seat layout sorted by row and column.
	GetSeatsBySchedule(ctx context.Context, scheduleID int) ([]Seat, error)
	GetSeatsByScheduleAndSeatIds(ctx context.Context, scheduleID int, seatIDs []int) ([]Seat, error)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusDeparted  ScheduleStatus = "departed"
	ScheduleStatusCanceled  ScheduleStatus = "canceled"
)

type Schedule struct {
	ID            int
	RouteID       int
	Origin        string
	Destination   string
	OperatorName  string
	BusPlate      string
	DepartureTime time.Time
	ArrivalTime   time.Time
	BaseFare      decimal.Decimal
	Status        ScheduleStatus
	TotalSeats    int
	BookedSeats   int
}

func (s Schedule) Bookable(now time.Time) bool {
	return s.Status == ScheduleStatusScheduled && now.Before(s.DepartureTime)
}

type ScheduleFilters struct {
	Origin      string
	Destination string
	Date        time.Time
	Pagination  Pagination
}

type ScheduleRepository interface {
	Search(ctx context.Context, filters ScheduleFilters) ([]Schedule, *Metadata, error)
	GetById(ctx context.Context, id int) (*Schedule, error)
}

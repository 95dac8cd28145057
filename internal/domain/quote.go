package domain

import (
	"github.com/shopspring/decimal"
)

type QuoteLine struct {
	Seat  Seat
	Price decimal.Decimal
}

// Quote prices a set of seats on a schedule: base fare plus each seat's surcharge.
type Quote struct {
	ScheduleID int
	BaseFare   decimal.Decimal
	Lines      []QuoteLine
	Total      decimal.Decimal
}

func NewQuote(schedule Schedule, seats []Seat) Quote {
	lines := make([]QuoteLine, len(seats))
	total := decimal.Zero

	for i, seat := range seats {
		price := schedule.BaseFare.Add(seat.ExtraPrice)
		lines[i] = QuoteLine{Seat: seat, Price: price}
		total = total.Add(price)
	}

	return Quote{
		ScheduleID: schedule.ID,
		BaseFare:   schedule.BaseFare,
		Lines:      lines,
		Total:      total,
	}
}

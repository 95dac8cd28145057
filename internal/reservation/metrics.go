package reservation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/metinatakli/bus-booking-system/internal/reservation"

type coordinatorMetrics struct {
	holdsAcquired     metric.Int64Counter
	holdConflicts     metric.Int64Counter
	holdsExpired      metric.Int64Counter
	bookingsCommitted metric.Int64Counter
	commitsFailed     metric.Int64Counter
}

func newCoordinatorMetrics(meter metric.Meter) (*coordinatorMetrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	var (
		m   coordinatorMetrics
		err error
	)

	m.holdsAcquired, err = meter.Int64Counter("reservation.holds.acquired",
		metric.WithDescription("Number of successful seat holds"))
	if err != nil {
		return nil, err
	}

	m.holdConflicts, err = meter.Int64Counter("reservation.holds.conflicts",
		metric.WithDescription("Number of hold attempts rejected because seats were unavailable"))
	if err != nil {
		return nil, err
	}

	m.holdsExpired, err = meter.Int64Counter("reservation.holds.expired",
		metric.WithDescription("Number of holds removed by the expiry sweep"))
	if err != nil {
		return nil, err
	}

	m.bookingsCommitted, err = meter.Int64Counter("reservation.bookings.committed",
		metric.WithDescription("Number of holds converted into bookings"))
	if err != nil {
		return nil, err
	}

	m.commitsFailed, err = meter.Int64Counter("reservation.commits.failed",
		metric.WithDescription("Number of failed booking commits"))
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func scheduleAttr(scheduleID int) metric.AddOption {
	return metric.WithAttributes(attribute.Int("schedule.id", scheduleID))
}

func (m *coordinatorMetrics) commitFailed(ctx context.Context, scheduleID int, reason string) {
	m.commitsFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("schedule.id", scheduleID),
		attribute.String("reason", reason),
	))
}

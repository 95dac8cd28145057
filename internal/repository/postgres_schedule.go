package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

type PostgresScheduleRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScheduleRepository(db *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{
		db: db,
	}
}

const scheduleColumns = `
	sch.id,
	sch.route_id,
	r.origin,
	r.destination,
	o.name,
	b.plate,
	sch.departure_time,
	sch.arrival_time,
	sch.base_fare,
	sch.status,
	(SELECT COUNT(*) FROM seats se WHERE se.bus_id = sch.bus_id),
	(SELECT COUNT(*) FROM booking_seats bs WHERE bs.schedule_id = sch.id AND NOT bs.canceled)`

func (p *PostgresScheduleRepository) Search(
	ctx context.Context,
	filters domain.ScheduleFilters) ([]domain.Schedule, *domain.Metadata, error) {

	query := `SELECT COUNT(*) OVER(),` + scheduleColumns + `
		FROM schedules sch
		JOIN routes r ON sch.route_id = r.id
		JOIN buses b ON sch.bus_id = b.id
		JOIN operators o ON b.operator_id = o.id
		WHERE (r.origin ILIKE $1 OR $1 = '')
			AND (r.destination ILIKE $2 OR $2 = '')
			AND ($3::date IS NULL OR sch.departure_time::date = $3::date)
			AND sch.status = 'scheduled'
			AND sch.departure_time > NOW()
		ORDER BY sch.departure_time, sch.id
		LIMIT $4 OFFSET $5`

	var date *time.Time
	if !filters.Date.IsZero() {
		date = &filters.Date
	}

	rows, err := p.db.Query(
		ctx,
		query,
		filters.Origin,
		filters.Destination,
		date,
		filters.Pagination.Limit(),
		filters.Pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	schedules := make([]domain.Schedule, 0, filters.Pagination.PageSize)

	for rows.Next() {
		var schedule domain.Schedule

		err := rows.Scan(append([]any{&totalRecords}, scheduleDest(&schedule)...)...)
		if err != nil {
			return nil, nil, err
		}

		schedules = append(schedules, schedule)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Pagination.Page, filters.Pagination.PageSize)

	return schedules, metadata, nil
}

func (p *PostgresScheduleRepository) GetById(ctx context.Context, id int) (*domain.Schedule, error) {
	query := `SELECT` + scheduleColumns + `
		FROM schedules sch
		JOIN routes r ON sch.route_id = r.id
		JOIN buses b ON sch.bus_id = b.id
		JOIN operators o ON b.operator_id = o.id
		WHERE sch.id = $1`

	var schedule domain.Schedule

	err := p.db.QueryRow(ctx, query, id).Scan(scheduleDest(&schedule)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &schedule, nil
}

func scheduleDest(s *domain.Schedule) []any {
	return []any{
		&s.ID,
		&s.RouteID,
		&s.Origin,
		&s.Destination,
		&s.OperatorName,
		&s.BusPlate,
		&s.DepartureTime,
		&s.ArrivalTime,
		&s.BaseFare,
		&s.Status,
		&s.TotalSeats,
		&s.BookedSeats,
	}
}

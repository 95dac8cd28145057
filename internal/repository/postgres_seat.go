package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatsBySchedule(ctx context.Context, scheduleID int) ([]domain.Seat, error) {
	query := `
		SELECT 
			se.id, 
			se.seat_row, 
			se.seat_col, 
			se.label,
			se.seat_type, 
			se.extra_price
		FROM schedules sch
		JOIN seats se
			ON sch.bus_id = se.bus_id
		WHERE sch.id = $1
		ORDER BY se.seat_row, se.seat_col
	`

	return p.querySeats(ctx, query, scheduleID)
}

func (p *PostgresSeatRepository) GetSeatsByScheduleAndSeatIds(
	ctx context.Context,
	scheduleID int,
	seatIDs []int) ([]domain.Seat, error) {

	query := `
		SELECT 
			se.id, 
			se.seat_row, 
			se.seat_col, 
			se.label,
			se.seat_type, 
			se.extra_price
		FROM schedules sch
		JOIN seats se
			ON sch.bus_id = se.bus_id
		WHERE sch.id = $1 AND se.id = ANY($2)
		ORDER BY se.seat_row, se.seat_col
	`

	return p.querySeats(ctx, query, scheduleID, seatIDs)
}

func (p *PostgresSeatRepository) querySeats(ctx context.Context, query string, args ...any) ([]domain.Seat, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.Row,
			&seat.Col,
			&seat.Label,
			&seat.Type,
			&seat.ExtraPrice,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

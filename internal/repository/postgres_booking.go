package repository

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

const activeSeatIndex = "booking_seats_active_seat_idx"

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) InsertBookingIfSeatsFree(
	ctx context.Context,
	booking *domain.Booking,
	beforeCommit func(context.Context) error) error {

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE payments
			SET status = 'succeeded', payment_date = NOW(), updated_at = NOW()
			WHERE id = $1 AND status IN ('pending', 'succeeded')
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, booking.PaymentID).Scan(&booking.PaymentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		var tokenHash []byte
		if booking.AccessToken != nil {
			tokenHash = booking.AccessToken.Hash
		}

		query = `
			INSERT INTO bookings (
				reference,
				schedule_id,
				user_id,
				payment_id,
				contact_email,
				total_price,
				status,
				access_token_hash
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.ScheduleID,
			booking.UserID,
			booking.PaymentID,
			booking.ContactEmail,
			booking.TotalPrice,
			booking.Status,
			tokenHash).Scan(&booking.ID, &booking.CreatedAt)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Passengers))
		for _, passenger := range booking.Passengers {
			rows = append(rows, []any{
				booking.ID,
				booking.ScheduleID,
				passenger.SeatID,
				passenger.FullName,
				passenger.Email,
				passenger.Phone,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "schedule_id", "seat_id", "passenger_name", "passenger_email", "passenger_phone"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		if beforeCommit != nil {
			return beforeCommit(ctx)
		}

		return nil
	})

	if uniqueViolation(err, activeSeatIndex) {
		return p.seatsUnavailable(ctx, booking)
	}

	return err
}

// seatsUnavailable builds the conflict report after the insert lost a race
// against another booking of the same seats.
func (p *PostgresBookingRepository) seatsUnavailable(ctx context.Context, booking *domain.Booking) error {
	booked, err := p.GetBookedSeats(ctx, booking.ScheduleID)
	if err != nil {
		return err
	}

	conflicts := make([]domain.SeatConflict, 0)
	for _, seatID := range booking.SeatIDs() {
		if slices.Contains(booked, seatID) {
			conflicts = append(conflicts, domain.SeatConflict{SeatID: seatID, HolderRef: domain.BookedHolderRef})
		}
	}

	return &domain.SeatsUnavailableError{ScheduleID: booking.ScheduleID, Conflicts: conflicts}
}

func (p *PostgresBookingRepository) GetBookedSeats(ctx context.Context, scheduleID int) ([]int, error) {
	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE schedule_id = $1 AND NOT canceled
		ORDER BY seat_id
	`

	rows, err := p.db.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}

const bookingColumns = `
	b.id,
	b.reference,
	b.schedule_id,
	b.user_id,
	b.payment_id,
	b.contact_email,
	b.total_price,
	b.status,
	b.created_at,
	b.canceled_at,
	COALESCE((
		SELECT jsonb_agg(
			jsonb_build_object(
				'seatId', bs.seat_id,
				'fullName', bs.passenger_name,
				'email', bs.passenger_email,
				'phone', bs.passenger_phone
			) ORDER BY bs.seat_id)
		FROM booking_seats bs
		WHERE bs.booking_id = b.id
	), '[]')`

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	return p.getBooking(ctx, query, id)
}

func (p *PostgresBookingRepository) GetByPaymentId(ctx context.Context, paymentID int) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings b WHERE b.payment_id = $1`

	return p.getBooking(ctx, query, paymentID)
}

func (p *PostgresBookingRepository) GetByReference(
	ctx context.Context,
	reference string,
	tokenHash []byte) (*domain.Booking, error) {

	query := `SELECT` + bookingColumns + `
		FROM bookings b
		WHERE b.reference = $1 AND (b.access_token_hash = $2 OR b.mail_token_hash = $2)`

	return p.getBooking(ctx, query, reference, tokenHash)
}

func (p *PostgresBookingRepository) SetMailToken(ctx context.Context, id int, tokenHash []byte) error {
	tag, err := p.db.Exec(ctx, `UPDATE bookings SET mail_token_hash = $2 WHERE id = $1`, id, tokenHash)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresBookingRepository) Cancel(ctx context.Context, id int) (*domain.Booking, error) {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var status domain.BookingStatus

		err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if status == domain.BookingStatusCanceled {
			return domain.ErrBookingAlreadyCanceled
		}

		_, err = tx.Exec(ctx, `UPDATE bookings SET status = 'canceled', canceled_at = NOW() WHERE id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE booking_seats SET canceled = TRUE WHERE booking_id = $1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return p.GetById(ctx, id)
}

func (p *PostgresBookingRepository) ListBySchedule(
	ctx context.Context,
	scheduleID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	query := `SELECT COUNT(*) OVER(),` + bookingColumns + `
		FROM bookings b
		WHERE b.schedule_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, scheduleID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	bookings := make([]domain.Booking, 0, pagination.PageSize)

	for rows.Next() {
		booking, err := scanBooking(rows, &totalRecords)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, *booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) ListSummariesByUser(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.reference,
			r.origin,
			r.destination,
			o.name,
			sch.departure_time,
			(SELECT COUNT(*) FROM booking_seats bs WHERE bs.booking_id = b.id),
			b.total_price,
			b.status,
			b.created_at
		FROM bookings b
		JOIN schedules sch ON b.schedule_id = sch.id
		JOIN routes r ON sch.route_id = r.id
		JOIN buses bu ON sch.bus_id = bu.id
		JOIN operators o ON bu.operator_id = o.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&summary.BookingID,
			&summary.Reference,
			&summary.Origin,
			&summary.Destination,
			&summary.OperatorName,
			&summary.DepartureTime,
			&summary.SeatCount,
			&summary.TotalPrice,
			&summary.Status,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresBookingRepository) getBooking(ctx context.Context, query string, args ...any) (*domain.Booking, error) {
	booking, err := scanBooking(p.db.QueryRow(ctx, query, args...), nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return booking, nil
}

// scanBooking reads bookingColumns, preceded by the window count when totalRecords is set.
func scanBooking(row pgx.Row, totalRecords *int) (*domain.Booking, error) {
	var booking domain.Booking
	var passengersJson json.RawMessage

	dest := []any{
		&booking.ID,
		&booking.Reference,
		&booking.ScheduleID,
		&booking.UserID,
		&booking.PaymentID,
		&booking.ContactEmail,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.CanceledAt,
		&passengersJson,
	}
	if totalRecords != nil {
		dest = append([]any{totalRecords}, dest...)
	}

	err := row.Scan(dest...)
	if err != nil {
		return nil, err
	}

	if len(passengersJson) > 0 {
		if err := json.Unmarshal(passengersJson, &booking.Passengers); err != nil {
			return nil, err
		}
	}

	return &booking, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			user_id,
			schedule_id,
			holder_id,
			amount, 
			currency,
			status,
			checkout_details
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		payment.UserID,
		payment.ScheduleID,
		payment.HolderID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.Checkout,
	).Scan(&payment.ID, &payment.CreatedAt)

	return err
}

func (p *PostgresPaymentRepository) AttachReference(ctx context.Context, id int, reference string) error {
	query := `UPDATE payments
		SET provider_reference = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := p.db.Exec(ctx, query, reference, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresPaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	query := `
		SELECT
			id,
			user_id,
			schedule_id,
			holder_id,
			provider_reference,
			amount,
			currency,
			status,
			checkout_details,
			error_message,
			payment_date,
			created_at,
			updated_at
		FROM payments
		WHERE provider_reference = $1
	`

	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, reference).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.ScheduleID,
		&payment.HolderID,
		&payment.ProviderReference,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.Checkout,
		&payment.ErrorMsg,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}

// UpdateStatus never moves a payment out of succeeded, since a booking may hang off it.
func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	reference string,
	status domain.PaymentStatus,
	errMsg string) error {

	query := `UPDATE payments
		SET status = $1, error_message = NULLIF($2, ''), updated_at = NOW()
		WHERE provider_reference = $3 AND status <> 'succeeded'
	`

	_, err := p.db.Exec(ctx, query, status, errMsg, reference)
	return err
}

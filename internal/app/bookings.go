package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

// CreateBooking confirms the payment of a checkout with the provider and books
// the seats recorded on it. Repeating the call for the same payment returns
// the booking that was already made.
func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request, scheduleId int) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	payment, err := app.paymentRepo.GetByReference(r.Context(), input.PaymentReference)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("payment not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if payment.ScheduleID != scheduleId || payment.HolderID != app.holderId(r) {
		logger.Warn("booking attempt for a payment of another session", "payment_id", payment.ID)
		app.notFoundResponseWithErr(w, r, errors.New("payment not found"))
		return
	}

	existing, err := app.existingBooking(r.Context(), payment.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if existing != nil {
		app.writeBooking(w, r, http.StatusOK, existing)
		return
	}

	status, err := app.paymentProvider.ConfirmPayment(r.Context(), input.PaymentReference)
	if err != nil {
		logger.Error("failed to confirm payment", "reference", input.PaymentReference, "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	booking, created, err := app.commitBooking(r.Context(), payment, status)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}

	app.writeBooking(w, r, code, booking)
}

// commitBooking books the seats of a paid checkout. It reports created=false
// when the payment had already been turned into a booking, for example by the
// provider's webhook.
func (app *Application) commitBooking(
	ctx context.Context,
	payment *domain.Payment,
	status domain.PaymentStatus) (*domain.Booking, bool, error) {

	logger := app.logger.With("payment_id", payment.ID, "schedule_id", payment.ScheduleID)

	reference := ""
	if payment.ProviderReference != nil {
		reference = *payment.ProviderReference
	}

	booking, err := app.coordinator.Commit(ctx, domain.CommitRequest{
		ScheduleID:   payment.ScheduleID,
		SessionID:    payment.HolderID,
		SeatIDs:      payment.Checkout.SeatIDs,
		Passengers:   payment.Checkout.Passengers,
		ContactEmail: payment.Checkout.ContactEmail,
		UserID:       payment.UserID,
		Payment: domain.PaymentConfirmation{
			PaymentID: payment.ID,
			Reference: reference,
			Status:    status,
			Amount:    payment.Amount,
		},
	})
	if err != nil {
		existing, lookupErr := app.existingBooking(context.WithoutCancel(ctx), payment.ID)
		if lookupErr == nil && existing != nil {
			return existing, false, nil
		}

		if status == domain.PaymentStatusSucceeded && bookingRejected(err) {
			// refunds are handled outside of this service
			logger.Error("payment captured but booking was rejected", "reference", reference, "error", err)

			updateErr := app.paymentRepo.UpdateStatus(context.WithoutCancel(ctx), reference,
				domain.PaymentStatusFailed, fmt.Sprintf("booking rejected after payment: %v", err))
			if updateErr != nil {
				logger.Error("failed to record rejected booking on payment", "error", updateErr)
			}
		}

		return nil, false, err
	}

	logger.Info("booking committed", "booking_id", booking.ID, "seat_ids", booking.SeatIDs())

	app.background(ctx, func(ctx context.Context) {
		app.notifyBookingConfirmed(ctx, booking)
	})

	return booking, true, nil
}

// bookingRejected reports whether the seats of a checkout can no longer be
// booked, as opposed to a transient failure worth retrying.
func bookingRejected(err error) bool {
	var (
		unavailable *domain.SeatsUnavailableError
		invalid     *domain.InvalidRequestError
	)

	return errors.As(err, &unavailable) ||
		errors.As(err, &invalid) ||
		errors.Is(err, domain.ErrHoldExpired) ||
		errors.Is(err, domain.ErrNotHeld)
}

func (app *Application) existingBooking(ctx context.Context, paymentId int) (*domain.Booking, error) {
	booking, err := app.bookingRepo.GetByPaymentId(ctx, paymentId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return booking, nil
}

// GetBookingByReference lets guests look up a booking with the access token
// they received when it was made.
func (app *Application) GetBookingByReference(
	w http.ResponseWriter,
	r *http.Request,
	reference string,
	params api.GetBookingByReferenceParams) {

	if params.Token == "" {
		app.notFoundResponse(w, r)
		return
	}

	booking, err := app.bookingRepo.GetByReference(r.Context(), reference, domain.HashToken(params.Token))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	booking.AccessToken = nil

	app.writeBooking(w, r, http.StatusOK, booking)
}

func (app *Application) writeBooking(w http.ResponseWriter, r *http.Request, status int, booking *domain.Booking) {
	err := app.writeJSON(w, status, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	resp := api.BookingResponse{
		Id:           booking.ID,
		Reference:    booking.Reference,
		ScheduleId:   booking.ScheduleID,
		Status:       api.BookingStatus(booking.Status),
		ContactEmail: booking.ContactEmail,
		TotalPrice:   money(booking.TotalPrice),
		Passengers:   toApiPassengers(booking.Passengers),
		CreatedAt:    booking.CreatedAt,
		CanceledAt:   booking.CanceledAt,
	}

	if booking.AccessToken != nil {
		token := booking.AccessToken.Plaintext
		resp.AccessToken = &token
	}

	return resp
}

package app

import (
	"context"
	"fmt"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/metinatakli/bus-booking-system/internal/mailer"
)

// notifyBookingConfirmed hands a committed booking off for follow-up work. It
// runs after the response is written, so failures are only logged.
func (app *Application) notifyBookingConfirmed(ctx context.Context, booking *domain.Booking) {
	logger := app.logger.With("booking_id", booking.ID, "schedule_id", booking.ScheduleID)

	confirmation, err := app.bookingConfirmation(ctx, booking)
	if err != nil {
		logger.Error("failed to build booking confirmation", "error", err)
		return
	}

	err = app.notifier.NotifyBookingConfirmed(ctx, confirmation)
	if err != nil {
		logger.Error("failed to dispatch booking confirmation", "error", err)
		return
	}

	logger.Info("booking confirmation dispatched")
}

func (app *Application) bookingConfirmation(ctx context.Context, booking *domain.Booking) (domain.BookingConfirmation, error) {
	schedule, err := app.scheduleRepo.GetById(ctx, booking.ScheduleID)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}

	seats, err := app.seatRepo.GetSeatsByScheduleAndSeatIds(ctx, booking.ScheduleID, booking.SeatIDs())
	if err != nil {
		return domain.BookingConfirmation{}, err
	}

	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label
	}

	confirmation := domain.BookingConfirmation{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		ScheduleID:    booking.ScheduleID,
		Origin:        schedule.Origin,
		Destination:   schedule.Destination,
		DepartureTime: schedule.DepartureTime,
		ContactEmail:  booking.ContactEmail,
		Passengers:    booking.Passengers,
		SeatLabels:    labels,
		TotalPrice:    booking.TotalPrice,
	}

	return confirmation, nil
}

// sendBookingConfirmation mails the ticket to the booking's contact address,
// together with a lookup token issued for this email only.
func (app *Application) sendBookingConfirmation(ctx context.Context, confirmation domain.BookingConfirmation) error {
	token, err := domain.GenerateToken(domain.BookingAccessScope)
	if err != nil {
		return err
	}

	err = app.bookingRepo.SetMailToken(ctx, confirmation.BookingID, token.Hash)
	if err != nil {
		return fmt.Errorf("failed to store mail token: %w", err)
	}

	confirmation.AccessToken = token.Plaintext

	err = app.mailer.Send(confirmation.ContactEmail, mailer.BookingConfirmedTemplate, confirmation)
	if err != nil {
		return err
	}

	app.logger.Info("booking confirmation email sent", "booking_id", confirmation.BookingID)

	return nil
}

package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

func (app *Application) GetScheduleOccupancy(w http.ResponseWriter, r *http.Request, scheduleId int) {
	_, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return
	}

	states, err := app.coordinator.SeatStates(r.Context(), scheduleId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.OccupancyResponse{
		ScheduleId: scheduleId,
		TotalSeats: len(states),
	}

	for _, state := range states {
		switch state.Status {
		case domain.SeatBooked:
			resp.Booked++
		case domain.SeatHeld:
			resp.Held++
		default:
			resp.Available++
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListBookings(w http.ResponseWriter, r *http.Request, params api.ListBookingsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := toPagination(params.Page, params.PageSize)

	bookings, metadata, err := app.bookingRepo.ListBySchedule(r.Context(), params.ScheduleId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: make([]api.BookingResponse, len(bookings)),
		Metadata: toApiMetadata(metadata),
	}

	for i := range bookings {
		resp.Bookings[i] = toBookingResponse(&bookings[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking cancels a booking and releases its seats to other customers.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	booking, err := app.coordinator.Cancel(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrBookingAlreadyCanceled):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.contextGetLogger(r).Info("booking canceled",
		"booking_id", booking.ID, "schedule_id", booking.ScheduleID, "user_id", app.contextGetUserId(r))

	app.writeBooking(w, r, http.StatusOK, booking)
}

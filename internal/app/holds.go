package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

func (app *Application) GetHold(w http.ResponseWriter, r *http.Request, scheduleId int) {
	schedule, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return
	}

	hold, err := app.coordinator.CurrentHold(r.Context(), scheduleId, app.holderId(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("there are no seats held by the current session"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeHold(w, r, http.StatusOK, schedule, hold)
}

func (app *Application) PutHold(w http.ResponseWriter, r *http.Request, scheduleId int) {
	logger := app.contextGetLogger(r)

	var input api.HoldRequest

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

	schedule, ok := app.getBookableSchedule(w, r, scheduleId)
	if !ok {
		return
	}

	hold, err := app.coordinator.AttemptHold(r.Context(), scheduleId, input.SeatIds, app.holderId(r))
	if err != nil {
		var unavailable *domain.SeatsUnavailableError
		if errors.As(err, &unavailable) {
			logger.Info("seats unavailable", "schedule_id", scheduleId, "seat_ids", unavailable.SeatIDs())
		}

		app.reservationErrorResponse(w, r, err)
		return
	}

	logger.Info("seats held", "schedule_id", scheduleId, "hold_id", hold.ID, "seat_ids", hold.SeatIDs)

	app.writeHold(w, r, http.StatusOK, schedule, hold)
}

func (app *Application) DeleteHold(w http.ResponseWriter, r *http.Request, scheduleId int) {
	var input api.HoldRequest

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

	schedule, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return
	}

	remaining, err := app.coordinator.Release(r.Context(), scheduleId, input.SeatIds, app.holderId(r))
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	if remaining == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	app.writeHold(w, r, http.StatusOK, schedule, remaining)
}

func (app *Application) writeHold(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	schedule *domain.Schedule,
	hold *domain.Hold) {

	quote, err := app.quote(r.Context(), schedule, hold.SeatIDs)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.HoldResponse{
		HoldId:     hold.ID,
		ScheduleId: hold.ScheduleID,
		SeatIds:    hold.SeatIDs,
		HolderRef:  hold.HolderRef(),
		ExpiresAt:  hold.ExpiresAt,
		ExpiresIn:  max(int(time.Until(hold.ExpiresAt).Seconds()), 0),
		TotalPrice: money(quote.Total),
	}

	err = app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) quote(ctx context.Context, schedule *domain.Schedule, seatIDs []int) (domain.Quote, error) {
	seats, err := app.seatRepo.GetSeatsByScheduleAndSeatIds(ctx, schedule.ID, seatIDs)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.NewQuote(*schedule, seats), nil
}

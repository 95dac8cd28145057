package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

func (app *Application) SearchSchedules(w http.ResponseWriter, r *http.Request, params api.SearchSchedulesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toScheduleFilters(params)

	schedules, metadata, err := app.scheduleRepo.Search(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScheduleListResponse{
		Schedules: toScheduleSummaries(schedules),
		Metadata:  toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toScheduleFilters(params api.SearchSchedulesParams) domain.ScheduleFilters {
	filters := domain.ScheduleFilters{
		Pagination: toPagination(params.Page, params.PageSize),
	}

	if params.Origin != nil {
		filters.Origin = *params.Origin
	}
	if params.Destination != nil {
		filters.Destination = *params.Destination
	}
	if params.Date != nil {
		filters.Date = params.Date.Time
	}

	return filters
}

func toScheduleSummaries(schedules []domain.Schedule) []api.ScheduleSummary {
	summaries := make([]api.ScheduleSummary, len(schedules))

	for i, s := range schedules {
		summaries[i] = api.ScheduleSummary{
			Id:             s.ID,
			Origin:         s.Origin,
			Destination:    s.Destination,
			OperatorName:   s.OperatorName,
			DepartureTime:  s.DepartureTime,
			ArrivalTime:    s.ArrivalTime,
			BaseFare:       money(s.BaseFare),
			AvailableSeats: s.TotalSeats - s.BookedSeats,
		}
	}

	return summaries
}

func (app *Application) GetSchedule(w http.ResponseWriter, r *http.Request, scheduleId int) {
	schedule, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return
	}

	resp := api.ScheduleDetail{
		Id:             schedule.ID,
		Origin:         schedule.Origin,
		Destination:    schedule.Destination,
		OperatorName:   schedule.OperatorName,
		BusPlate:       schedule.BusPlate,
		DepartureTime:  schedule.DepartureTime,
		ArrivalTime:    schedule.ArrivalTime,
		BaseFare:       money(schedule.BaseFare),
		Status:         string(schedule.Status),
		TotalSeats:     schedule.TotalSeats,
		AvailableSeats: schedule.TotalSeats - schedule.BookedSeats,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetSeatMap renders the schedule's seats with their live state. Seats held by
// the caller are flagged so the client can tell its own selection apart.
func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request, scheduleId int) {
	schedule, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return
	}

	seats, err := app.seatRepo.GetSeatsBySchedule(r.Context(), scheduleId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	states, err := app.coordinator.SeatStates(r.Context(), scheduleId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	holderId := app.holderId(r)
	myRef := domain.HolderRef(holderId)

	resp := api.SeatMapResponse{
		ScheduleId: scheduleId,
		HolderRef:  myRef,
		Seats:      make([]api.SeatMapSeat, len(seats)),
	}

	hold, err := app.coordinator.CurrentHold(r.Context(), scheduleId, holderId)
	switch {
	case err == nil:
		resp.HoldExpiresAt = &hold.ExpiresAt
	case errors.Is(err, domain.ErrRecordNotFound):
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	for i, seat := range seats {
		state := states[seat.ID]
		if state.Status == "" {
			state.Status = domain.SeatAvailable
		}

		apiSeat := api.SeatMapSeat{
			Id:         seat.ID,
			Row:        seat.Row,
			Col:        seat.Col,
			Label:      seat.Label,
			Type:       seat.Type,
			ExtraPrice: money(seat.ExtraPrice),
			Price:      money(schedule.BaseFare.Add(seat.ExtraPrice)),
			Status:     api.SeatStatus(state.Status),
		}

		if state.HolderRef != "" {
			ref := state.HolderRef
			apiSeat.HolderRef = &ref
			apiSeat.Mine = state.Status == domain.SeatHeld && ref == myRef
		}

		resp.Seats[i] = apiSeat
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) getScheduleOr404(w http.ResponseWriter, r *http.Request, scheduleId int) (*domain.Schedule, bool) {
	schedule, err := app.scheduleRepo.GetById(r.Context(), scheduleId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	return schedule, true
}

// getBookableSchedule also rejects schedules that can no longer be sold.
func (app *Application) getBookableSchedule(w http.ResponseWriter, r *http.Request, scheduleId int) (*domain.Schedule, bool) {
	schedule, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return nil, false
	}

	if !schedule.Bookable(time.Now()) {
		app.editConflictResponseWithErr(w, r, errors.New("this departure is no longer open for booking"))
		return nil, false
	}

	return schedule, true
}

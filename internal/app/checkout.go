package app

import (
	"errors"
	"net/http"
	"slices"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

// CreateCheckoutSession starts the payment of the seats the session holds. The
// passengers are stored with the payment and booked once it is confirmed.
func (app *Application) CreateCheckoutSession(w http.ResponseWriter, r *http.Request, scheduleId int) {
	logger := app.contextGetLogger(r)

	var input api.CheckoutRequest

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

	holderId := app.holderId(r)

	hold, err := app.coordinator.CurrentHold(r.Context(), scheduleId, holderId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.reservationErrorResponse(w, r, domain.ErrHoldExpired)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	passengers := toDomainPassengers(input.Passengers)

	err = passengersMatchHold(hold, passengers)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	quote, err := app.quote(r.Context(), schedule, hold.SeatIDs)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	payment := domain.Payment{
		UserID:     app.optionalUserId(r),
		ScheduleID: scheduleId,
		HolderID:   holderId,
		Amount:     quote.Total,
		Currency:   app.config.Currency,
		Status:     domain.PaymentStatusPending,
		Checkout: domain.CheckoutDetails{
			SeatIDs:      hold.SeatIDs,
			Passengers:   passengers,
			ContactEmail: input.ContactEmail,
		},
	}

	err = app.paymentRepo.Create(r.Context(), &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(r.Context(), domain.CheckoutRequest{
		Payment:  payment,
		Schedule: *schedule,
		Quote:    quote,
	})
	if err != nil {
		logger.Error("failed to create checkout session", "payment_id", payment.ID, "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.paymentRepo.AttachReference(r.Context(), payment.ID, checkoutSession.Reference)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("checkout session created",
		"schedule_id", scheduleId, "payment_id", payment.ID, "reference", checkoutSession.Reference)

	resp := api.CheckoutResponse{
		PaymentId:         payment.ID,
		CheckoutReference: checkoutSession.Reference,
		CheckoutUrl:       checkoutSession.URL,
		Amount:            money(payment.Amount),
		Currency:          payment.Currency,
		HoldExpiresAt:     hold.ExpiresAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// passengersMatchHold requires exactly one passenger for every held seat.
func passengersMatchHold(hold *domain.Hold, passengers []domain.Passenger) error {
	if len(passengers) != len(hold.SeatIDs) {
		return domain.NewInvalidRequestError("exactly one passenger is required for each of the %d held seats", len(hold.SeatIDs))
	}

	seen := make(map[int]bool, len(passengers))
	for _, p := range passengers {
		if !hold.Covers(p.SeatID) {
			return domain.NewInvalidRequestError("seat %d is not held by the current session", p.SeatID)
		}
		if seen[p.SeatID] {
			return domain.NewInvalidRequestError("seat %d is assigned to more than one passenger", p.SeatID)
		}
		seen[p.SeatID] = true
	}

	return nil
}

func toDomainPassengers(passengers []api.Passenger) []domain.Passenger {
	result := make([]domain.Passenger, len(passengers))

	for i, p := range passengers {
		result[i] = domain.Passenger{
			SeatID:   p.SeatId,
			FullName: p.FullName,
			Email:    p.Email,
			Phone:    p.Phone,
		}
	}

	slices.SortFunc(result, func(a, b domain.Passenger) int { return a.SeatID - b.SeatID })

	return result
}

func toApiPassengers(passengers []domain.Passenger) []api.Passenger {
	result := make([]api.Passenger, len(passengers))

	for i, p := range passengers {
		result[i] = api.Passenger{
			SeatId:   p.SeatID,
			FullName: p.FullName,
			Email:    p.Email,
			Phone:    p.Phone,
		}
	}

	return result
}

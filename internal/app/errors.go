package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	appvalidator "github.com/metinatakli/bus-booking-system/internal/validator"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) notFoundResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// paramErrorResponse handles path and query parameters the router could not bind.
func (app *Application) paramErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var invalidParam *api.InvalidParamFormatError
	if errors.As(err, &invalidParam) {
		app.badRequestResponse(w, r, fmt.Errorf("invalid %s parameter", invalidParam.ParamName))
		return
	}

	app.badRequestResponse(w, r, err)
}

func (app *Application) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	message := "Unable to update the record due to an edit conflict, please try again"
	app.errorResponse(w, r, http.StatusConflict, message)
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "Invalid authentication credentials"
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	message := "You must be authenticated to access this resource"
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	message := "You are not allowed to perform this action"
	app.errorResponse(w, r, http.StatusForbidden, message)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	apiErrors := make([]api.ValidationError, len(validationErrors))
	for i, fieldErr := range validationErrors {
		apiErrors[i] = api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		}
	}

	resp := api.ValidationErrorResponse{
		Message:          "One or more fields have invalid values",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: apiErrors,
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) seatsUnavailableResponse(
	w http.ResponseWriter,
	r *http.Request,
	unavailable *domain.SeatsUnavailableError) {

	conflicts := make([]api.SeatConflict, len(unavailable.Conflicts))
	for i, c := range unavailable.Conflicts {
		conflicts[i] = api.SeatConflict{SeatId: c.SeatID, HolderRef: c.HolderRef}
	}

	resp := api.SeatsUnavailableResponse{
		Message:   unavailable.Error(),
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
		Conflicts: conflicts,
	}

	err := app.writeJSON(w, http.StatusConflict, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// reservationErrorResponse maps the errors of the reservation coordinator to
// HTTP responses.
func (app *Application) reservationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unavailable *domain.SeatsUnavailableError
		invalid     *domain.InvalidRequestError
	)

	switch {
	case errors.As(err, &unavailable):
		app.seatsUnavailableResponse(w, r, unavailable)
	// an expired hold also matches ErrNotHeld
	case errors.Is(err, domain.ErrHoldExpired):
		app.errorResponse(w, r, http.StatusGone, domain.ErrHoldExpired.Error())
	case errors.Is(err, domain.ErrNotHeld):
		app.editConflictResponseWithErr(w, r, err)
	case errors.Is(err, domain.ErrCommitInProgress):
		app.editConflictResponseWithErr(w, r, err)
	case errors.As(err, &invalid):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, invalid.Reason)
	case errors.Is(err, domain.ErrPaymentNotConfirmed):
		app.errorResponse(w, r, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

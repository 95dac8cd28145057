package app

import (
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

const maxWebhookBodyBytes = 65536

// StripeWebhookHandler books the seats of completed checkouts whose customer
// never came back to CreateBooking, and records failed or expired payments.
// A non-2xx response makes the provider deliver the event again.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.errorResponse(w, r, http.StatusServiceUnavailable, "failed to read request body")
		return
	}

	event, err := app.paymentProvider.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		logger.Warn("rejected webhook event", "error", err)
		app.badRequestResponse(w, r, errors.New("invalid webhook event"))
		return
	}

	logger = logger.With("event_type", event.Type, "reference", event.Reference)

	switch event.Type {
	case domain.PaymentEventCompleted:
		app.handleCheckoutCompleted(w, r, event)

	case domain.PaymentEventExpired:
		err = app.paymentRepo.UpdateStatus(r.Context(), event.Reference, domain.PaymentStatusCanceled, "")
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}

		logger.Info("checkout session expired")
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (app *Application) handleCheckoutCompleted(w http.ResponseWriter, r *http.Request, event *domain.PaymentEvent) {
	logger := app.contextGetLogger(r).With("reference", event.Reference)

	payment, err := app.paymentRepo.GetByReference(r.Context(), event.Reference)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("webhook for an unknown payment")
			w.WriteHeader(http.StatusOK)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	existing, err := app.existingBooking(r.Context(), payment.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if existing != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch event.Status {
	case domain.PaymentStatusSucceeded:
	case domain.PaymentStatusFailed:
		err = app.paymentRepo.UpdateStatus(r.Context(), event.Reference, domain.PaymentStatusFailed, "payment failed")
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		logger.Info("payment failed")
		w.WriteHeader(http.StatusOK)
		return
	default:
		// async payment methods complete later with another event
		w.WriteHeader(http.StatusOK)
		return
	}

	_, _, err = app.commitBooking(r.Context(), payment, event.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCommitInProgress):
			app.editConflictResponseWithErr(w, r, err)
		case bookingRejected(err):
			// recorded on the payment, retrying cannot help
			w.WriteHeader(http.StatusOK)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusOK)
}

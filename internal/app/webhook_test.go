package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/metinatakli/bus-booking-system/internal/mocks"
	"github.com/stretchr/testify/mock"
)

func (s *BookingsTestSuite) sendWebhook(event any) int {
	w, r := executeRequest(s.T(), http.MethodPost, "/webhook", event)
	r.Header.Set("Stripe-Signature", "t=1,v1=test")

	s.app.StripeWebhookHandler(w, r)
	s.app.wg.Wait()

	return w.Code
}

func webhookEvent(eventType domain.PaymentEventType) map[string]string {
	return map[string]string{"type": string(eventType), "reference": testPaymentReference}
}

func (s *BookingsTestSuite) TestWebhookRejectsInvalidPayload() {
	code := s.sendWebhook("not an event")

	s.Equal(http.StatusBadRequest, code)
	s.paymentRepo.AssertNotCalled(s.T(), "GetByReference", mock.Anything, mock.Anything)
}

func (s *BookingsTestSuite) TestWebhookIgnoresUnknownEvents() {
	code := s.sendWebhook(map[string]string{"type": "customer.created"})

	s.Equal(http.StatusOK, code)
	s.paymentRepo.AssertNotCalled(s.T(), "GetByReference", mock.Anything, mock.Anything)
}

func (s *BookingsTestSuite) TestWebhookCheckoutExpired() {
	tests := []struct {
		name       string
		updateErr  error
		wantStatus int
	}{
		{name: "known payment", updateErr: nil, wantStatus: http.StatusOK},
		{name: "unknown payment", updateErr: domain.ErrRecordNotFound, wantStatus: http.StatusOK},
		{name: "storage failure", updateErr: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.paymentRepo.On("UpdateStatus", mock.Anything, testPaymentReference, domain.PaymentStatusCanceled, "").
				Return(tt.updateErr)

			code := s.sendWebhook(webhookEvent(domain.PaymentEventExpired))

			s.Equal(tt.wantStatus, code)
			s.paymentRepo.AssertExpectations(s.T())
		})
	}
}

func (s *BookingsTestSuite) TestWebhookCheckoutCompleted() {
	s.hold(1, 2)
	s.expectPayment(s.pendingPayment(1, 2))
	s.expectNoBooking()
	s.expectInsert()

	code := s.sendWebhook(webhookEvent(domain.PaymentEventCompleted))

	s.Equal(http.StatusOK, code)
	s.bookingRepo.AssertCalled(s.T(), "InsertBookingIfSeatsFree", mock.Anything, mock.Anything)
	s.notifier.AssertNumberOfCalls(s.T(), "NotifyBookingConfirmed", 1)

	_, err := s.app.coordinator.CurrentHold(context.Background(), testScheduleId, testHolderId)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *BookingsTestSuite) TestWebhookCheckoutCompletedTwice() {
	s.expectPayment(s.pendingPayment(1))
	s.bookingRepo.On("GetByPaymentId", mock.Anything, testPaymentId).
		Return(&domain.Booking{ID: testBookingId, ScheduleID: testScheduleId}, nil)

	code := s.sendWebhook(webhookEvent(domain.PaymentEventCompleted))

	s.Equal(http.StatusOK, code)
	s.bookingRepo.AssertNotCalled(s.T(), "InsertBookingIfSeatsFree", mock.Anything, mock.Anything)
}

func (s *BookingsTestSuite) TestWebhookCheckoutCompletedForUnknownPayment() {
	s.paymentRepo.On("GetByReference", mock.Anything, testPaymentReference).Return(nil, domain.ErrRecordNotFound)

	code := s.sendWebhook(webhookEvent(domain.PaymentEventCompleted))

	s.Equal(http.StatusOK, code)
}

func (s *BookingsTestSuite) TestWebhookCheckoutCompletedAfterHoldExpired() {
	s.expectPayment(s.pendingPayment(1))
	s.expectNoBooking()
	s.paymentRepo.On("UpdateStatus", mock.Anything, testPaymentReference, domain.PaymentStatusFailed, mock.Anything).
		Return(nil)

	code := s.sendWebhook(webhookEvent(domain.PaymentEventCompleted))

	// redelivery cannot bring the hold back
	s.Equal(http.StatusOK, code)
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *BookingsTestSuite) TestWebhookCheckoutCompletedStorageFailure() {
	s.hold(1)
	s.expectPayment(s.pendingPayment(1))
	s.expectNoBooking()
	s.bookingRepo.On("InsertBookingIfSeatsFree", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	code := s.sendWebhook(webhookEvent(domain.PaymentEventCompleted))

	s.Equal(http.StatusInternalServerError, code)
	s.paymentRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingsTestSuite) TestWebhookPaymentFailed() {
	provider := new(mocks.MockPaymentProvider)
	provider.On("ParseWebhook", mock.Anything, "t=1,v1=test").Return(&domain.PaymentEvent{
		Type:      domain.PaymentEventCompleted,
		Reference: testPaymentReference,
		Status:    domain.PaymentStatusFailed,
	}, nil)
	s.app.paymentProvider = provider

	s.expectPayment(s.pendingPayment(1))
	s.expectNoBooking()
	s.paymentRepo.On("UpdateStatus", mock.Anything, testPaymentReference, domain.PaymentStatusFailed, "payment failed").
		Return(nil)

	code := s.sendWebhook(webhookEvent(domain.PaymentEventCompleted))

	s.Equal(http.StatusOK, code)
	s.paymentRepo.AssertExpectations(s.T())
	s.bookingRepo.AssertNotCalled(s.T(), "InsertBookingIfSeatsFree", mock.Anything, mock.Anything)
}

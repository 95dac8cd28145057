package mocks

import (
	"context"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingNotifier struct {
	mock.Mock
}

func (m *MockBookingNotifier) NotifyBookingConfirmed(ctx context.Context, confirmation domain.BookingConfirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

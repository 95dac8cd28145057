package mocks

import (
	"context"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetSeatsBySchedule(ctx context.Context, scheduleID int) ([]domain.Seat, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) GetSeatsByScheduleAndSeatIds(
	ctx context.Context,
	scheduleID int,
	seatIDs []int) ([]domain.Seat, error) {

	args := m.Called(ctx, scheduleID, seatIDs)
	if rf, ok := args.Get(0).(func(context.Context, int, []int) []domain.Seat); ok {
		return rf(ctx, scheduleID, seatIDs), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

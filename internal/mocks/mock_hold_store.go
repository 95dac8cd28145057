package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHoldStore struct {
	mock.Mock
	domain.HoldStore
}

func (m *MockHoldStore) Pin(
	ctx context.Context,
	scheduleID int,
	sessionID string,
	seatIDs []int,
	until time.Time) (*domain.Hold, error) {

	args := m.Called(ctx, scheduleID, sessionID, seatIDs, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hold), args.Error(1)
}

func (m *MockHoldStore) Get(ctx context.Context, scheduleID int, sessionID string) (*domain.Hold, error) {
	args := m.Called(ctx, scheduleID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hold), args.Error(1)
}

func (m *MockHoldStore) Unpin(ctx context.Context, hold domain.Hold) error {
	args := m.Called(ctx, hold)
	return args.Error(0)
}

func (m *MockHoldStore) Promote(ctx context.Context, hold domain.Hold) error {
	args := m.Called(ctx, hold)
	return args.Error(0)
}

func (m *MockHoldStore) Unbook(ctx context.Context, scheduleID int, seatIDs []int) error {
	args := m.Called(ctx, scheduleID, seatIDs)
	return args.Error(0)
}

func (m *MockHoldStore) SweepExpired(ctx context.Context) ([]domain.Hold, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

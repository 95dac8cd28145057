package mocks

import (
	"context"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) AttachReference(ctx context.Context, id int, reference string) error {
	args := m.Called(ctx, id, reference)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, reference string, status domain.PaymentStatus, errMsg string) error {
	args := m.Called(ctx, reference, status, errMsg)
	return args.Error(0)
}

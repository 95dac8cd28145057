package mocks

import (
	"context"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

type MockScheduleRepo struct {
	domain.ScheduleRepository
	SearchFunc  func(ctx context.Context, filters domain.ScheduleFilters) ([]domain.Schedule, *domain.Metadata, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.Schedule, error)
}

func (m *MockScheduleRepo) Search(ctx context.Context, filters domain.ScheduleFilters) ([]domain.Schedule, *domain.Metadata, error) {
	return m.SearchFunc(ctx, filters)
}

func (m *MockScheduleRepo) GetById(ctx context.Context, id int) (*domain.Schedule, error) {
	return m.GetByIdFunc(ctx, id)
}

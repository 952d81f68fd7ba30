package mocks

import (
	"context"

	models "student-records-api/app/models/mongodb"

	"github.com/stretchr/testify/mock"
)

type MockSimulationRepo struct {
	mock.Mock
}

func (m *MockSimulationRepo) Insert(ctx context.Context, sim models.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockSimulationRepo) ListByUser(ctx context.Context, userID int64, limit int64) ([]models.Simulation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Simulation), args.Error(1)
}

func (m *MockSimulationRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

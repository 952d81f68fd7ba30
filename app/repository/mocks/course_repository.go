package mocks

import (
	"context"

	models "student-records-api/app/models/postgresql"

	"github.com/stretchr/testify/mock"
)

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, course models.Course) (int64, error) {
	args := m.Called(ctx, course)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepo) ListAvailable(ctx context.Context) ([]models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseRepo) ListWithStatistics(ctx context.Context) ([]models.CourseStatsRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CourseStatsRow), args.Error(1)
}

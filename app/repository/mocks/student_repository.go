package mocks

import (
	"context"

	models "student-records-api/app/models/postgresql"
	"student-records-api/app/service/grading"

	"github.com/stretchr/testify/mock"
)

type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) Create(ctx context.Context, student models.Student) (int64, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepo) GetByDNI(ctx context.Context, dni string) (*models.Student, error) {
	args := m.Called(ctx, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepo) List(ctx context.Context, limit, offset int) ([]models.Student, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStudentRepo) Update(ctx context.Context, id int64, patch models.StudentPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStudentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepo) GetHistoryRows(ctx context.Context, id int64) ([]grading.HistoryRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]grading.HistoryRow), args.Error(1)
}

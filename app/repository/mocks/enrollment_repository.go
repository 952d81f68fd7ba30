package mocks

import (
	"context"

	models "student-records-api/app/models/postgresql"

	"github.com/stretchr/testify/mock"
)

type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Create(ctx context.Context, enrollment models.Enrollment) (int64, error) {
	args := m.Called(ctx, enrollment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepo) AddGrade(ctx context.Context, grade models.Grade) (int64, error) {
	args := m.Called(ctx, grade)
	return args.Get(0).(int64), args.Error(1)
}

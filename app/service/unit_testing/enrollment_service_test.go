package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "student-records-api/app/models/postgresql"
	"student-records-api/app/repository/mocks"
	service "student-records-api/app/service/postgresql"
	"student-records-api/database"
)

func setupEnrollmentServiceTest() (*service.EnrollmentService, *mocks.MockEnrollmentRepo) {
	mockEnrollmentRepo := new(mocks.MockEnrollmentRepo)
	return service.NewEnrollmentService(mockEnrollmentRepo), mockEnrollmentRepo
}

func TestCreateEnrollment(t *testing.T) {
	body := map[string]any{"student_id": 1, "course_id": 2, "term": "I", "year": 2024}

	t.Run("Success", func(t *testing.T) {
		svc, mockEnrollmentRepo := setupEnrollmentServiceTest()
		app := setupApp()

		mockEnrollmentRepo.On("Create", mock.Anything, models.Enrollment{StudentID: 1, CourseID: 2, Term: "I", Year: 2024}).
			Return(int64(10), nil)
		app.Post("/enrollments", svc.CreateEnrollment)

		resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments", body))

		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, float64(10), decodeBody(t, resp)["enrollment_id"])
	})

	t.Run("Error: missing term", func(t *testing.T) {
		svc, _ := setupEnrollmentServiceTest()
		app := setupApp()
		app.Post("/enrollments", svc.CreateEnrollment)

		resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments", map[string]any{"student_id": 1, "course_id": 2, "year": 2024}))

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Error: already enrolled", func(t *testing.T) {
		svc, mockEnrollmentRepo := setupEnrollmentServiceTest()
		app := setupApp()

		mockEnrollmentRepo.On("Create", mock.Anything, mock.Anything).Return(int64(0), database.ErrDuplicate)
		app.Post("/enrollments", svc.CreateEnrollment)

		resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments", body))

		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("Error: unknown student or course", func(t *testing.T) {
		svc, mockEnrollmentRepo := setupEnrollmentServiceTest()
		app := setupApp()

		mockEnrollmentRepo.On("Create", mock.Anything, mock.Anything).Return(int64(0), database.ErrInvalidReference)
		app.Post("/enrollments", svc.CreateEnrollment)

		resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments", body))

		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestRecordGrade(t *testing.T) {
	t.Run("Success: weight defaults to one", func(t *testing.T) {
		svc, mockEnrollmentRepo := setupEnrollmentServiceTest()
		app := setupApp()

		mockEnrollmentRepo.On("AddGrade", mock.Anything, mock.MatchedBy(func(g models.Grade) bool {
			return g.EnrollmentID == 3 && g.Weight == 1 && g.Score == 15.5 && g.EvaluatedOn != nil
		})).Return(int64(40), nil)
		app.Post("/enrollments/:id/grades", svc.RecordGrade)

		body := map[string]any{"evaluation_type": "Final", "score": 15.5, "evaluated_on": "2024-07-10"}
		resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments/3/grades", body))

		assert.Equal(t, 201, resp.StatusCode)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	cases := []struct {
		name string
		body map[string]any
	}{
		{"score above twenty", map[string]any{"evaluation_type": "Final", "score": 21}},
		{"negative weight", map[string]any{"evaluation_type": "Final", "score": 12, "weight": -0.1}},
		{"missing type", map[string]any{"score": 12}},
		{"bad date", map[string]any{"evaluation_type": "Final", "score": 12, "evaluated_on": "10-07-2024"}},
	}
	for _, tc := range cases {
		t.Run("Error: "+tc.name, func(t *testing.T) {
			svc, mockEnrollmentRepo := setupEnrollmentServiceTest()
			app := setupApp()
			app.Post("/enrollments/:id/grades", svc.RecordGrade)

			resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments/3/grades", tc.body))

			assert.Equal(t, 400, resp.StatusCode)
			mockEnrollmentRepo.AssertNotCalled(t, "AddGrade", mock.Anything, mock.Anything)
		})
	}

	t.Run("Error: unknown enrollment", func(t *testing.T) {
		svc, mockEnrollmentRepo := setupEnrollmentServiceTest()
		app := setupApp()

		mockEnrollmentRepo.On("AddGrade", mock.Anything, mock.Anything).Return(int64(0), database.ErrInvalidReference)
		app.Post("/enrollments/:id/grades", svc.RecordGrade)

		resp, _ := app.Test(jsonRequest(t, "POST", "/enrollments/404/grades", map[string]any{"evaluation_type": "Final", "score": 12}))

		assert.Equal(t, 404, resp.StatusCode)
	})
}

package service_test

import (
	"database/sql"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	models "student-records-api/app/models/postgresql"
	"student-records-api/app/repository/mocks"
	service "student-records-api/app/service/postgresql"
	"student-records-api/database"
)

func setupCourseServiceTest() (*service.CourseService, *mocks.MockCourseRepo) {
	mockCourseRepo := new(mocks.MockCourseRepo)
	return service.NewCourseService(mockCourseRepo), mockCourseRepo
}

func TestGetAvailableCourses(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mockCourseRepo := setupCourseServiceTest()
		app := setupApp()

		mockCourseRepo.On("ListAvailable", mock.Anything).Return([]models.Course{
			{ID: 1, Code: "BD401", Name: "Databases", Credits: 4},
		}, nil)
		app.Get("/courses", svc.GetAvailableCourses)

		resp, _ := app.Test(httptest.NewRequest("GET", "/courses", nil))

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, float64(1), decodeBody(t, resp)["total"])
	})

	t.Run("Error: Database Failure", func(t *testing.T) {
		svc, mockCourseRepo := setupCourseServiceTest()
		app := setupApp()

		mockCourseRepo.On("ListAvailable", mock.Anything).Return(nil, errors.New("db error"))
		app.Get("/courses", svc.GetAvailableCourses)

		resp, _ := app.Test(httptest.NewRequest("GET", "/courses", nil))

		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestGetCourseByID(t *testing.T) {
	svc, mockCourseRepo := setupCourseServiceTest()
	app := setupApp()
	app.Get("/courses/:id", svc.GetCourseByID)

	mockCourseRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Course{ID: 1, Code: "MAT101"}, nil)
	mockCourseRepo.On("GetByID", mock.Anything, int64(2)).Return(nil, sql.ErrNoRows)

	resp, _ := app.Test(httptest.NewRequest("GET", "/courses/1", nil))
	assert.Equal(t, 200, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/courses/2", nil))
	assert.Equal(t, 404, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/courses/-1", nil))
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateCourse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mockCourseRepo := setupCourseServiceTest()
		app := setupApp()

		mockCourseRepo.On("Create", mock.Anything, models.Course{Code: "IA601", Name: "Artificial Intelligence", Credits: 4}).
			Return(int64(6), nil)
		app.Post("/courses", svc.CreateCourse)

		body := map[string]any{"course_code": "IA601", "name": "Artificial Intelligence", "credits": 4}
		resp, _ := app.Test(jsonRequest(t, "POST", "/courses", body))

		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, float64(6), decodeBody(t, resp)["course_id"])
		mockCourseRepo.AssertExpectations(t)
	})

	t.Run("Error: credits must be positive", func(t *testing.T) {
		svc, _ := setupCourseServiceTest()
		app := setupApp()
		app.Post("/courses", svc.CreateCourse)

		body := map[string]any{"course_code": "IA601", "name": "AI", "credits": 0}
		resp, _ := app.Test(jsonRequest(t, "POST", "/courses", body))

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Error: duplicate code", func(t *testing.T) {
		svc, mockCourseRepo := setupCourseServiceTest()
		app := setupApp()

		mockCourseRepo.On("Create", mock.Anything, mock.Anything).Return(int64(0), database.ErrDuplicate)
		app.Post("/courses", svc.CreateCourse)

		body := map[string]any{"course_code": "MAT101", "name": "Math", "credits": 4}
		resp, _ := app.Test(jsonRequest(t, "POST", "/courses", body))

		assert.Equal(t, 409, resp.StatusCode)
	})
}

func TestGetCourseStatistics(t *testing.T) {
	svc, mockCourseRepo := setupCourseServiceTest()
	app := setupApp()

	average := 14.3333
	mockCourseRepo.On("ListWithStatistics", mock.Anything).Return([]models.CourseStatsRow{
		{Course: models.Course{ID: 1, Code: "BD401", Name: "Databases"}, TotalStudents: 3, TotalEvaluations: 9, OverallAverage: &average},
		{Course: models.Course{ID: 2, Code: "WEB501", Name: "Web Development"}},
	}, nil)
	app.Get("/courses/statistics", svc.GetCourseStatistics)

	resp, _ := app.Test(httptest.NewRequest("GET", "/courses/statistics", nil))
	require.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp)
	courses := body["courses"].([]any)
	require.Len(t, courses, 2)

	first := courses[0].(map[string]any)["statistics"].(map[string]any)
	assert.Equal(t, 14.33, first["overall_average"])
	assert.Equal(t, float64(3), first["total_students_enrolled"])

	second := courses[1].(map[string]any)["statistics"].(map[string]any)
	assert.Equal(t, float64(0), second["overall_average"])
}

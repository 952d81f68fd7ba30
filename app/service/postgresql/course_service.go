package service

import (
	"database/sql"
	"errors"
	"strings"

	models "student-records-api/app/models/postgresql"
	repository "student-records-api/app/repository/postgresql"
	"student-records-api/app/service/grading"
	"student-records-api/database"
	"student-records-api/utils"

	"github.com/gofiber/fiber/v2"
)

type CourseService struct {
	repo repository.CourseRepository
}

func NewCourseService(repo repository.CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) GetAvailableCourses(c *fiber.Ctx) error {
	courses, err := s.repo.ListAvailable(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"courses": courses,
		"total":   len(courses),
	})
}

func (s *CourseService) GetCourseByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	course, err := s.repo.GetByID(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	return c.JSON(fiber.Map{"success": true, "course": course})
}

func (s *CourseService) CreateCourse(c *fiber.Ctx) error {
	var req models.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if blank(req.Code) || blank(req.Name) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "course_code and name are required")
	}
	if req.Credits <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "credits must be greater than 0")
	}

	id, err := s.repo.Create(c.Context(), models.Course{
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Credits:     req.Credits,
		Description: req.Description,
	})
	if errors.Is(err, database.ErrDuplicate) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A course with that code already exists")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Course created successfully",
		"course_id": id,
	})
}

// GetCourseStatistics reports enrollment and grade aggregates per course.
// Courses without grades report an overall average of 0.
func (s *CourseService) GetCourseStatistics(c *fiber.Ctx) error {
	rows, err := s.repo.ListWithStatistics(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}

	stats := make([]models.CourseWithStatistics, 0, len(rows))
	for _, row := range rows {
		var average float64
		if row.OverallAverage != nil {
			average = grading.Round2(*row.OverallAverage)
		}
		stats = append(stats, models.CourseWithStatistics{
			CourseID:    row.ID,
			Code:        row.Code,
			Name:        row.Name,
			Credits:     row.Credits,
			Description: row.Description,
			Statistics: models.CourseStatistics{
				TotalStudents:    row.TotalStudents,
				TotalEvaluations: row.TotalEvaluations,
				OverallAverage:   average,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"courses":       stats,
		"total_courses": len(stats),
	})
}

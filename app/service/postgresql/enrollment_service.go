package service

import (
	"errors"
	"strings"

	models "student-records-api/app/models/postgresql"
	repository "student-records-api/app/repository/postgresql"
	"student-records-api/app/service/grading"
	"student-records-api/database"
	"student-records-api/utils"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentService struct {
	repo repository.EnrollmentRepository
}

func NewEnrollmentService(repo repository.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{repo: repo}
}

func (s *EnrollmentService) CreateEnrollment(c *fiber.Ctx) error {
	var req models.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.StudentID <= 0 || req.CourseID <= 0 || blank(req.Term) || req.Year <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "student_id, course_id, term and year are required")
	}

	id, err := s.repo.Create(c.Context(), models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Term:      strings.TrimSpace(req.Term),
		Year:      req.Year,
	})
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Student is already enrolled in this course for that term")
	case errors.Is(err, database.ErrInvalidReference):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student or course not found")
	case err != nil:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"message":       "Student enrolled successfully",
		"enrollment_id": id,
	})
}

// RecordGrade stores one evaluation for an enrollment. Weight defaults to 1.
func (s *EnrollmentService) RecordGrade(c *fiber.Ctx) error {
	enrollmentID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	var req models.RecordGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if blank(req.EvaluationType) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "evaluation_type is required")
	}
	if req.Score < 0 || req.Score > grading.DefaultScale {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "score must be between 0 and 20")
	}
	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}
	if weight < 0 || weight > 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "weight must be between 0 and 1")
	}
	evaluatedOn, err := parseDate(req.EvaluatedOn)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := s.repo.AddGrade(c.Context(), models.Grade{
		EnrollmentID:   enrollmentID,
		EvaluationType: strings.TrimSpace(req.EvaluationType),
		Score:          req.Score,
		Weight:         weight,
		EvaluatedOn:    evaluatedOn,
	})
	if errors.Is(err, database.ErrInvalidReference) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Enrollment not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record grade")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Grade recorded successfully",
		"grade_id": id,
	})
}

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

type StudentService struct {
	repo repository.StudentRepository
}

func NewStudentService(repo repository.StudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

func (s *StudentService) CreateStudent(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if blank(req.Code) || blank(req.DNI) || blank(req.FirstName) || blank(req.LastName) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "code, dni, first_name and last_name are required")
	}
	if !validDNI(req.DNI) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "dni must have exactly 8 digits")
	}
	enrolledOn, err := parseDate(req.EnrolledOn)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	student := models.Student{
		Code:       strings.TrimSpace(req.Code),
		DNI:        req.DNI,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      req.Email,
		Phone:      req.Phone,
		EnrolledOn: enrolledOn,
	}

	id, err := s.repo.Create(c.Context(), student)
	if errors.Is(err, database.ErrDuplicate) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A student with that code or DNI already exists")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Student registered successfully",
		"student_id": id,
	})
}

func (s *StudentService) GetAllStudents(c *fiber.Ctx) error {
	var query models.PaginationQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "limit and offset must be integers")
	}
	query.Normalize()

	students, err := s.repo.List(c.Context(), query.Limit, query.Offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"students": students,
		"total":    len(students),
		"limit":    query.Limit,
		"offset":   query.Offset,
	})
}

func (s *StudentService) GetStudentByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	student, err := s.repo.GetByID(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return c.JSON(fiber.Map{"success": true, "student": student})
}

func (s *StudentService) GetStudentByDNI(c *fiber.Ctx) error {
	dni := c.Params("dni")
	if !validDNI(dni) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "dni must have exactly 8 digits")
	}

	student, err := s.repo.GetByDNI(c.Context(), dni)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return c.JSON(fiber.Map{"success": true, "student": student})
}

// UpdateStudent applies a partial update. Only the fields present in the body
// are written.
func (s *StudentService) UpdateStudent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	patch := req.StudentPatch
	for _, field := range []*string{patch.Code, patch.FirstName, patch.LastName} {
		if field != nil && blank(*field) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "code, first_name and last_name cannot be blank")
		}
	}
	if patch.DNI != nil && !validDNI(*patch.DNI) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "dni must have exactly 8 digits")
	}
	if patch.EnrolledOn, err = parseDate(req.EnrolledOn); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	if patch.Empty() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update")
	}

	err = s.repo.Update(c.Context(), id, patch)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	case errors.Is(err, repository.ErrEmptyPatch):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update")
	case errors.Is(err, database.ErrDuplicate):
		return utils.ErrorResponse(c, fiber.StatusConflict, "A student with that code or DNI already exists")
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Student updated successfully"})
}

func (s *StudentService) DeleteStudent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	err = s.repo.Delete(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete student")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Student deleted successfully"})
}

// GetStudentHistory returns the student's enrollments with their evaluations.
func (s *StudentService) GetStudentHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	rows, err := s.repo.GetHistoryRows(c.Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch history")
	}

	summary, err := grading.AggregateHistory(rows)
	if errors.Is(err, grading.ErrNoHistory) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build history")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"student":       summary.Student,
		"history":       summary.Enrollments,
		"total_courses": summary.TotalCourses,
	})
}

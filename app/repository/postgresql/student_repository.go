package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	models "student-records-api/app/models/postgresql"
	"student-records-api/app/service/grading"
	"student-records-api/database"
)

// ErrEmptyPatch is returned by Update when the patch sets no field.
var ErrEmptyPatch = errors.New("no fields to update")

type StudentRepository interface {
	Create(ctx context.Context, student models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByDNI(ctx context.Context, dni string) (*models.Student, error)
	List(ctx context.Context, limit, offset int) ([]models.Student, error)
	Update(ctx context.Context, id int64, patch models.StudentPatch) error
	Delete(ctx context.Context, id int64) error
	GetHistoryRows(ctx context.Context, id int64) ([]grading.HistoryRow, error)
}

type studentRepository struct {
	db *database.DB
}

func NewStudentRepository(db *database.DB) StudentRepository {
	return &studentRepository{db: db}
}

const studentColumns = `id, code, dni, first_name, last_name, email, phone, enrolled_on, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.DNI,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.Phone,
		&s.EnrolledOn,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) Create(ctx context.Context, s models.Student) (int64, error) {
	query := `
		INSERT INTO students (code, dni, first_name, last_name, email, phone, enrolled_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	id, err := r.db.Insert(ctx, query,
		s.Code,
		s.DNI,
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		s.EnrolledOn,
	)
	return id, database.Classify(err)
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

func (r *studentRepository) GetByDNI(ctx context.Context, dni string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE dni = $1`
	return scanStudent(r.db.QueryRow(ctx, query, dni))
}

func (r *studentRepository) List(ctx context.Context, limit, offset int) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY last_name, first_name LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Update writes only the columns set in patch. Column names come from this
// function, never from the request.
func (r *studentRepository) Update(ctx context.Context, id int64, patch models.StudentPatch) error {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Code != nil {
		set("code", *patch.Code)
	}
	if patch.DNI != nil {
		set("dni", *patch.DNI)
	}
	if patch.FirstName != nil {
		set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.EnrolledOn != nil {
		set("enrolled_on", *patch.EnrolledOn)
	}

	if len(sets) == 0 {
		return ErrEmptyPatch
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE students SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	affected, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return database.Classify(err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetHistoryRows runs the four-table outer join behind the history endpoint.
// A student with no enrollments still yields one row with a nil course.
func (r *studentRepository) GetHistoryRows(ctx context.Context, id int64) ([]grading.HistoryRow, error) {
	query := `
		SELECT
			s.id, s.code, s.first_name, s.last_name, s.dni,
			c.id, c.course_code, c.name, c.credits,
			e.term, e.year, e.enrolled_at,
			g.evaluation_type, g.score, g.weight, g.evaluated_on
		FROM students s
		LEFT JOIN enrollments e ON s.id = e.student_id
		LEFT JOIN courses c ON e.course_id = c.id
		LEFT JOIN grades g ON e.id = g.enrollment_id
		WHERE s.id = $1
		ORDER BY e.year DESC, e.term DESC, c.name, g.evaluated_on`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []grading.HistoryRow
	for rows.Next() {
		var h grading.HistoryRow
		err := rows.Scan(
			&h.StudentID, &h.StudentCode, &h.FirstName, &h.LastName, &h.DNI,
			&h.CourseID, &h.CourseCode, &h.CourseName, &h.Credits,
			&h.Term, &h.Year, &h.EnrolledAt,
			&h.EvaluationType, &h.Score, &h.Weight, &h.EvaluatedOn,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

package repository

import (
	"context"

	models "student-records-api/app/models/postgresql"
	"student-records-api/database"
)

type CourseRepository interface {
	Create(ctx context.Context, course models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListAvailable(ctx context.Context) ([]models.Course, error)
	ListWithStatistics(ctx context.Context) ([]models.CourseStatsRow, error)
}

type courseRepository struct {
	db *database.DB
}

func NewCourseRepository(db *database.DB) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, course_code, name, credits, description, created_at`

func (r *courseRepository) Create(ctx context.Context, c models.Course) (int64, error) {
	query := `INSERT INTO courses (course_code, name, credits, description) VALUES ($1, $2, $3, $4)`
	id, err := r.db.Insert(ctx, query, c.Code, c.Name, c.Credits, c.Description)
	return id, database.Classify(err)
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var c models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) ListAvailable(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListWithStatistics joins courses with their enrollments and grades and
// aggregates them per course.
func (r *courseRepository) ListWithStatistics(ctx context.Context) ([]models.CourseStatsRow, error) {
	query := `
		SELECT
			c.id, c.course_code, c.name, c.credits, c.description, c.created_at,
			COUNT(DISTINCT e.student_id) AS total_students,
			COUNT(DISTINCT g.id) AS total_evaluations,
			AVG(g.score) AS overall_average
		FROM courses c
		LEFT JOIN enrollments e ON c.id = e.course_id
		LEFT JOIN grades g ON e.id = g.enrollment_id
		GROUP BY c.id, c.course_code, c.name, c.credits, c.description, c.created_at
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.CourseStatsRow{}
	for rows.Next() {
		var s models.CourseStatsRow
		err := rows.Scan(
			&s.ID, &s.Code, &s.Name, &s.Credits, &s.Description, &s.CreatedAt,
			&s.TotalStudents,
			&s.TotalEvaluations,
			&s.OverallAverage,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

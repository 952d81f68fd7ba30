package repository

import (
	"context"

	models "student-records-api/app/models/postgresql"
	"student-records-api/database"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment models.Enrollment) (int64, error)
	AddGrade(ctx context.Context, grade models.Grade) (int64, error)
}

type enrollmentRepository struct {
	db *database.DB
}

func NewEnrollmentRepository(db *database.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, e models.Enrollment) (int64, error) {
	query := `INSERT INTO enrollments (student_id, course_id, term, year) VALUES ($1, $2, $3, $4)`
	id, err := r.db.Insert(ctx, query, e.StudentID, e.CourseID, e.Term, e.Year)
	return id, database.Classify(err)
}

func (r *enrollmentRepository) AddGrade(ctx context.Context, g models.Grade) (int64, error) {
	query := `
		INSERT INTO grades (enrollment_id, evaluation_type, score, weight, evaluated_on)
		VALUES ($1, $2, $3, $4, $5)`
	id, err := r.db.Insert(ctx, query, g.EnrollmentID, g.EvaluationType, g.Score, g.Weight, g.EvaluatedOn)
	return id, database.Classify(err)
}

package models

import "time"

type Enrollment struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	CourseID   int64     `json:"course_id"`
	Term       string    `json:"term"`
	Year       int       `json:"year"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type CreateEnrollmentRequest struct {
	StudentID int64  `json:"student_id"`
	CourseID  int64  `json:"course_id"`
	Term      string `json:"term"`
	Year      int    `json:"year"`
}

type Grade struct {
	ID             int64      `json:"id"`
	EnrollmentID   int64      `json:"enrollment_id"`
	EvaluationType string     `json:"evaluation_type"`
	Score          float64    `json:"score"`
	Weight         float64    `json:"weight"`
	EvaluatedOn    *time.Time `json:"evaluated_on"`
}

// RecordGradeRequest is the body of POST /enrollments/:id/grades. Weight
// defaults to 1 and EvaluatedOn uses YYYY-MM-DD.
type RecordGradeRequest struct {
	EvaluationType string   `json:"evaluation_type"`
	Score          float64  `json:"score"`
	Weight         *float64 `json:"weight"`
	EvaluatedOn    *string  `json:"evaluated_on"`
}

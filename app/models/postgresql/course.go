package models

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Code        string    `json:"course_code"`
	Name        string    `json:"name"`
	Credits     int       `json:"credits"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateCourseRequest struct {
	Code        string  `json:"course_code"`
	Name        string  `json:"name"`
	Credits     int     `json:"credits"`
	Description *string `json:"description"`
}

// CourseStatsRow is one row of the course/enrollment/grade aggregate query.
type CourseStatsRow struct {
	Course
	TotalStudents    int
	TotalEvaluations int
	// OverallAverage is nil when the course has no grades yet.
	OverallAverage *float64
}

type CourseStatistics struct {
	TotalStudents    int     `json:"total_students_enrolled"`
	TotalEvaluations int     `json:"total_evaluations"`
	OverallAverage   float64 `json:"overall_average"`
}

type CourseWithStatistics struct {
	CourseID    int64            `json:"course_id"`
	Code        string           `json:"course_code"`
	Name        string           `json:"name"`
	Credits     int              `json:"credits"`
	Description *string          `json:"description"`
	Statistics  CourseStatistics `json:"statistics"`
}

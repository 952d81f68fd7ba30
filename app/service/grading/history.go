package grading

import "time"

const (
	enrolledAtLayout  = "2006-01-02 15:04:05"
	evaluatedOnLayout = "2006-01-02"
)

// HistoryRow is one row of the student × enrollment × course × grade outer
// join. Every field past the student block is nil when the join found nothing.
type HistoryRow struct {
	StudentID   int64
	StudentCode string
	FirstName   string
	LastName    string
	DNI         string

	CourseID   *int64
	CourseCode *string
	CourseName *string
	Credits    *int
	Term       *string
	Year       *int
	EnrolledAt *time.Time

	EvaluationType *string
	Score          *float64
	Weight         *float64
	EvaluatedOn    *time.Time
}

// StudentHeader identifies the student a history belongs to.
type StudentHeader struct {
	ID        int64  `json:"student_id"`
	Code      string `json:"code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DNI       string `json:"dni"`
}

// Evaluation is one graded assessment inside an enrollment.
type Evaluation struct {
	Type   string  `json:"evaluation_type"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Date   *string `json:"evaluated_on"`
}

// EnrollmentRecord is a student's registration in one course for one term/year.
type EnrollmentRecord struct {
	CourseID    int64        `json:"course_id"`
	CourseCode  string       `json:"course_code"`
	CourseName  string       `json:"name"`
	Credits     int          `json:"credits"`
	Term        string       `json:"term"`
	Year        int          `json:"year"`
	EnrolledAt  *string      `json:"enrolled_at"`
	Evaluations []Evaluation `json:"evaluations"`
}

// HistorySummary is the nested form of a student's academic history.
type HistorySummary struct {
	Student      StudentHeader      `json:"student"`
	Enrollments  []EnrollmentRecord `json:"history"`
	TotalCourses int                `json:"total_courses"`
}

type enrollmentKey struct {
	courseID int64
	term     string
	year     int
}

// AggregateHistory groups joined rows by (course, term, year). Groups keep the
// order in which they were first seen and evaluations keep row order.
func AggregateHistory(rows []HistoryRow) (*HistorySummary, error) {
	if len(rows) == 0 {
		return nil, ErrNoHistory
	}

	first := rows[0]
	summary := &HistorySummary{
		Student: StudentHeader{
			ID:        first.StudentID,
			Code:      first.StudentCode,
			FirstName: first.FirstName,
			LastName:  first.LastName,
			DNI:       first.DNI,
		},
		Enrollments: []EnrollmentRecord{},
	}

	index := make(map[enrollmentKey]int)
	for _, row := range rows {
		if row.CourseID == nil {
			continue
		}

		key := enrollmentKey{
			courseID: *row.CourseID,
			term:     deref(row.Term),
			year:     deref(row.Year),
		}

		pos, seen := index[key]
		if !seen {
			summary.Enrollments = append(summary.Enrollments, EnrollmentRecord{
				CourseID:    key.courseID,
				CourseCode:  deref(row.CourseCode),
				CourseName:  deref(row.CourseName),
				Credits:     deref(row.Credits),
				Term:        key.term,
				Year:        key.year,
				EnrolledAt:  formatTime(row.EnrolledAt, enrolledAtLayout),
				Evaluations: []Evaluation{},
			})
			pos = len(summary.Enrollments) - 1
			index[key] = pos
		}

		if row.Score == nil {
			continue
		}

		weight := DefaultWeight
		if row.Weight != nil {
			weight = *row.Weight
		}
		summary.Enrollments[pos].Evaluations = append(summary.Enrollments[pos].Evaluations, Evaluation{
			Type:   deref(row.EvaluationType),
			Score:  *row.Score,
			Weight: weight,
			Date:   formatTime(row.EvaluatedOn, evaluatedOnLayout),
		})
	}

	summary.TotalCourses = len(summary.Enrollments)
	return summary, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func formatTime(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}

package grading

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func studentRow() HistoryRow {
	return HistoryRow{
		StudentID:   7,
		StudentCode: "A001",
		FirstName:   "Juan",
		LastName:    "Perez",
		DNI:         "12345678",
	}
}

func courseRow(courseID int64, term string, year int) HistoryRow {
	row := studentRow()
	row.CourseID = ptr(courseID)
	row.CourseCode = ptr("MAT101")
	row.CourseName = ptr("Basic Mathematics")
	row.Credits = ptr(4)
	row.Term = ptr(term)
	row.Year = ptr(year)
	row.EnrolledAt = ptr(time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC))
	return row
}

func withGrade(row HistoryRow, kind string, score, weight float64, day int) HistoryRow {
	row.EvaluationType = ptr(kind)
	row.Score = ptr(score)
	row.Weight = ptr(weight)
	row.EvaluatedOn = ptr(time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC))
	return row
}

func TestAggregateHistory(t *testing.T) {
	t.Run("Error: no rows", func(t *testing.T) {
		summary, err := AggregateHistory(nil)
		assert.Nil(t, summary)
		assert.True(t, errors.Is(err, ErrNoHistory))
	})

	t.Run("Student without enrollments keeps only the header", func(t *testing.T) {
		summary, err := AggregateHistory([]HistoryRow{studentRow()})
		require.NoError(t, err)

		assert.Equal(t, StudentHeader{ID: 7, Code: "A001", FirstName: "Juan", LastName: "Perez", DNI: "12345678"}, summary.Student)
		assert.Empty(t, summary.Enrollments)
		assert.NotNil(t, summary.Enrollments)
		assert.Equal(t, 0, summary.TotalCourses)
	})

	t.Run("Rows with the same course, term and year merge", func(t *testing.T) {
		rows := []HistoryRow{
			withGrade(courseRow(1, "I", 2024), "Midterm", 14, 0.4, 10),
			withGrade(courseRow(1, "I", 2024), "Final", 17, 0.6, 20),
		}

		summary, err := AggregateHistory(rows)
		require.NoError(t, err)
		require.Len(t, summary.Enrollments, 1)

		enrollment := summary.Enrollments[0]
		assert.Equal(t, int64(1), enrollment.CourseID)
		assert.Equal(t, "I", enrollment.Term)
		assert.Equal(t, 2024, enrollment.Year)
		require.NotNil(t, enrollment.EnrolledAt)
		assert.Equal(t, "2024-03-01 08:30:00", *enrollment.EnrolledAt)
		require.Len(t, enrollment.Evaluations, 2)
		assert.Equal(t, "Midterm", enrollment.Evaluations[0].Type)
		assert.Equal(t, 14.0, enrollment.Evaluations[0].Score)
		assert.Equal(t, "Final", enrollment.Evaluations[1].Type)
		assert.Equal(t, 0.6, enrollment.Evaluations[1].Weight)
		require.NotNil(t, enrollment.Evaluations[1].Date)
		assert.Equal(t, "2024-04-20", *enrollment.Evaluations[1].Date)
	})

	t.Run("Groups keep first-seen order", func(t *testing.T) {
		rows := []HistoryRow{
			withGrade(courseRow(2, "II", 2024), "Final", 12, 1, 1),
			withGrade(courseRow(1, "I", 2024), "Final", 18, 1, 2),
			withGrade(courseRow(2, "II", 2023), "Final", 11, 1, 3),
			withGrade(courseRow(2, "II", 2024), "Retake", 15, 1, 4),
		}

		summary, err := AggregateHistory(rows)
		require.NoError(t, err)
		require.Len(t, summary.Enrollments, 3)
		assert.Equal(t, 3, summary.TotalCourses)

		assert.Equal(t, int64(2), summary.Enrollments[0].CourseID)
		assert.Equal(t, 2024, summary.Enrollments[0].Year)
		assert.Len(t, summary.Enrollments[0].Evaluations, 2)
		assert.Equal(t, "Retake", summary.Enrollments[0].Evaluations[1].Type)
		assert.Equal(t, int64(1), summary.Enrollments[1].CourseID)
		assert.Equal(t, 2023, summary.Enrollments[2].Year)
	})

	t.Run("Enrollment without grades has an empty list", func(t *testing.T) {
		row := courseRow(3, "I", 2025)
		row.EnrolledAt = nil

		summary, err := AggregateHistory([]HistoryRow{row})
		require.NoError(t, err)
		require.Len(t, summary.Enrollments, 1)
		assert.Nil(t, summary.Enrollments[0].EnrolledAt)
		assert.Empty(t, summary.Enrollments[0].Evaluations)
		assert.NotNil(t, summary.Enrollments[0].Evaluations)
	})

	t.Run("Missing weight and date fall back", func(t *testing.T) {
		row := withGrade(courseRow(1, "I", 2024), "Quiz", 9, 0, 1)
		row.Weight = nil
		row.EvaluatedOn = nil

		summary, err := AggregateHistory([]HistoryRow{row})
		require.NoError(t, err)
		evaluation := summary.Enrollments[0].Evaluations[0]
		assert.Equal(t, 1.0, evaluation.Weight)
		assert.Nil(t, evaluation.Date)
	})

	t.Run("Identical input gives identical output", func(t *testing.T) {
		rows := []HistoryRow{
			withGrade(courseRow(1, "I", 2024), "Midterm", 14, 0.4, 10),
			studentRow(),
		}
		a, err := AggregateHistory(rows)
		require.NoError(t, err)
		b, err := AggregateHistory(rows)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

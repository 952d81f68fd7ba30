package models

import (
	"time"

	"student-records-api/app/service/grading"
)

// Simulation is a logged run of the weighted grade simulator.
type Simulation struct {
	ID        string          `bson:"_id" json:"id"`
	UserID    int64           `bson:"user_id" json:"user_id"`
	Entries   []grading.Entry `bson:"entries" json:"entries"`
	Scale     int             `bson:"scale" json:"scale"`
	Report    grading.Report  `bson:"report" json:"report"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
}

type SimulationList struct {
	Total       int          `json:"total"`
	Simulations []Simulation `json:"simulations"`
}

// SimulationRequest is the body of POST /grades/simulate. Scale and
// PassingScore fall back to the vigesimal defaults.
type SimulationRequest struct {
	Grades       []GradeInput `json:"grades"`
	Scale        *int         `json:"scale"`
	PassingScore *float64     `json:"passing_score"`
}

// GradeInput is one submitted grade. A missing weight counts as
// grading.DefaultWeight and a missing label as grading.DefaultLabel.
type GradeInput struct {
	Label  *string  `json:"label"`
	Score  float64  `json:"score"`
	Weight *float64 `json:"weight"`
}

// Entries converts the submitted grades into evaluator entries.
func (r SimulationRequest) Entries() []grading.Entry {
	entries := make([]grading.Entry, 0, len(r.Grades))
	for _, g := range r.Grades {
		entry := grading.Entry{
			Label:  grading.DefaultLabel,
			Score:  g.Score,
			Weight: grading.DefaultWeight,
		}
		if g.Label != nil {
			entry.Label = *g.Label
		}
		if g.Weight != nil {
			entry.Weight = *g.Weight
		}
		entries = append(entries, entry)
	}
	return entries
}

type SimpleSimulationRequest struct {
	Scores []float64 `json:"scores"`
}

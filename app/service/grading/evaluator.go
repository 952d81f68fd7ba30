// Package grading holds the grade computations behind the calculation and
// history endpoints. Everything here is a pure function over its input.
package grading

import (
	"fmt"
	"math"
)

const (
	// DefaultScale is the Peruvian vigesimal scale (0-20).
	DefaultScale = 20
	// DefaultPassingScore is the minimum weighted average that passes on the default scale.
	DefaultPassingScore = 10.5
	// DefaultWeight applies to entries that carry no weight. It mirrors the
	// column default of grades.weight.
	DefaultWeight = 1.0
	// DefaultLabel names entries submitted without a label.
	DefaultLabel = "Untitled"

	weightTolerance = 0.01
)

// Category is the qualitative band a weighted average falls into.
type Category string

const (
	CategoryFailed    Category = "Failed"
	CategoryPassed    Category = "Passed"
	CategoryGood      Category = "Good"
	CategoryVeryGood  Category = "Very Good"
	CategoryExcellent Category = "Excellent"
)

// Entry is one weighted grade submitted for evaluation.
type Entry struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// EntryDetail is an Entry together with its share of the weighted average.
type EntryDetail struct {
	Label               string  `json:"label"`
	Score               float64 `json:"score"`
	Weight              float64 `json:"weight"`
	Contribution        float64 `json:"contribution"`
	ContributionPercent float64 `json:"contribution_percent"`
}

// Statistics describes the dispersion of the raw scores.
type Statistics struct {
	Count     int     `json:"count"`
	MaxScore  float64 `json:"max_score"`
	MinScore  float64 `json:"min_score"`
	StdDev    float64 `json:"std_dev"`
	WeightSum float64 `json:"weight_sum"`
}

// Report is the result of Evaluate.
type Report struct {
	SimpleAverage   float64       `json:"simple_average"`
	WeightedAverage float64       `json:"weighted_average"`
	FinalGrade      int           `json:"final_grade"`
	Passed          bool          `json:"passed"`
	Category        Category      `json:"category"`
	Scale           int           `json:"scale"`
	PassingScore    float64       `json:"passing_score"`
	Statistics      Statistics    `json:"statistics"`
	Entries         []EntryDetail `json:"entries"`
}

// Evaluate validates entries against scale and computes the weighted grade
// report. All aggregate math runs on unrounded values; rounding is applied
// only to the reported figures.
func Evaluate(entries []Entry, scale int, passingScore float64) (*Report, error) {
	if scale <= 0 {
		return nil, validationf("scale must be positive (got %d)", scale)
	}
	if len(entries) == 0 {
		return nil, validationf("at least one grade entry is required")
	}

	var weightSum, weightedSum, scoreSum float64
	for _, e := range entries {
		if e.Score < 0 || e.Score > float64(scale) {
			return nil, validationf("score %g is outside the valid range (0-%d)", e.Score, scale)
		}
		if e.Weight < 0 || e.Weight > 1 {
			return nil, validationf("weight %g must be between 0 and 1", e.Weight)
		}
		weightSum += e.Weight
		weightedSum += e.Score * e.Weight
		scoreSum += e.Score
	}

	if math.Abs(weightSum-1.0) > weightTolerance {
		return nil, validationf("weights must add up to 1.0 (got %g)", weightSum)
	}

	count := float64(len(entries))
	simple := scoreSum / count
	weighted := weightedSum / weightSum
	passed := weighted >= passingScore

	var variance float64
	maxScore, minScore := entries[0].Score, entries[0].Score
	for _, e := range entries {
		d := e.Score - simple
		variance += d * d
		maxScore = math.Max(maxScore, e.Score)
		minScore = math.Min(minScore, e.Score)
	}
	variance /= count

	details := make([]EntryDetail, 0, len(entries))
	for _, e := range entries {
		contribution := e.Score * e.Weight
		// a zero weighted average means every weighted score is zero
		var percent float64
		if weighted != 0 {
			percent = Round2(contribution / weighted * 100)
		}
		details = append(details, EntryDetail{
			Label:               e.Label,
			Score:               e.Score,
			Weight:              e.Weight,
			Contribution:        Round2(contribution),
			ContributionPercent: percent,
		})
	}

	return &Report{
		SimpleAverage:   Round2(simple),
		WeightedAverage: Round2(weighted),
		FinalGrade:      int(math.Round(weighted)),
		Passed:          passed,
		Category:        categorize(weighted, scale, passingScore, passed),
		Scale:           scale,
		PassingScore:    passingScore,
		Statistics: Statistics{
			Count:     len(entries),
			MaxScore:  maxScore,
			MinScore:  minScore,
			StdDev:    Round2(math.Sqrt(variance)),
			WeightSum: Round2(weightSum),
		},
		Entries: details,
	}, nil
}

// categorize applies the vigesimal bands; other scales only pass or fail.
func categorize(weighted float64, scale int, passingScore float64, passed bool) Category {
	if scale != DefaultScale {
		if passed {
			return CategoryPassed
		}
		return CategoryFailed
	}

	switch {
	case weighted < passingScore:
		return CategoryFailed
	case weighted < 13:
		return CategoryPassed
	case weighted < 16:
		return CategoryGood
	case weighted < 18:
		return CategoryVeryGood
	default:
		return CategoryExcellent
	}
}

// SimpleReport is the result of SimpleAverage.
type SimpleReport struct {
	Average float64 `json:"average"`
	Passed  bool    `json:"passed"`
	Count   int     `json:"count"`
}

// SimpleAverage is the unweighted variant used by the quick simulation
// endpoint: a plain mean checked against DefaultPassingScore.
func SimpleAverage(scores []float64) (*SimpleReport, error) {
	if len(scores) == 0 {
		return nil, validationf("scores must be a non-empty list")
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))

	return &SimpleReport{
		Average: Round2(avg),
		Passed:  avg >= DefaultPassingScore,
		Count:   len(scores),
	}, nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

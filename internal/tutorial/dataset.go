package tutorial

import (
	"context"
	"slices"
)

// Marks is one row of the student marks table: the two semester grades a
// student earned in one school year.
type Marks struct {
	StudentID string  `json:"student_id" yaml:"student_id" mapstructure:"student_id" validate:"required"`
	Year      string  `json:"year" yaml:"year" mapstructure:"year" validate:"required"`
	Semester1 float64 `json:"semester1" yaml:"semester1" mapstructure:"semester1" validate:"gte=0,lte=100"`
	Semester2 float64 `json:"semester2" yaml:"semester2" mapstructure:"semester2" validate:"gte=0,lte=100"`
}

// Average is a student's mean grade over the two semesters of a year.
type Average struct {
	StudentID string  `json:"student_id"`
	Year      string  `json:"year"`
	Mean      float64 `json:"mean"`
}

// AverageOf computes the semester average of one row.
func AverageOf(_ context.Context, m Marks) (Average, error) {
	return Average{
		StudentID: m.StudentID,
		Year:      m.Year,
		Mean:      (m.Semester1 + m.Semester2) / 2,
	}, nil
}

// MeanOf is the sort key for averages.
func MeanOf(a Average) float64 { return a.Mean }

// NegMeanOf orders averages from the highest mean down.
func NegMeanOf(a Average) float64 { return -a.Mean }

// FahrenheitToCentigrade converts a temperature to degrees Celsius. The
// arithmetic is plain IEEE-754, so 57.2°F gives 14.000000000000002.
func FahrenheitToCentigrade(temperature float64) float64 {
	return (temperature - 32) * 5 / 9
}

// ToCentigrade adapts FahrenheitToCentigrade to a collection map.
func ToCentigrade(_ context.Context, temperature float64) (float64, error) {
	return FahrenheitToCentigrade(temperature), nil
}

// AtLeast returns a predicate that keeps values >= threshold.
func AtLeast(threshold float64) func(float64) bool {
	return func(v float64) bool { return v >= threshold }
}

// InYear returns a predicate that keeps averages of the given school year.
func InYear(year string) func(Average) bool {
	return func(a Average) bool { return a.Year == year }
}

// Above returns a predicate that keeps averages strictly above threshold.
func Above(threshold float64) func(Average) bool {
	return func(a Average) bool { return a.Mean > threshold }
}

// DefaultNumbers is the integer list used by the basics scenario.
func DefaultNumbers() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
}

// DefaultTemperatures are Fahrenheit readings for the temperature scenario.
func DefaultTemperatures() []float64 {
	return []float64{59, 57.2, 53.6, 55.4, 51.8, 53.6, 55.4}
}

var defaultMarks = []Marks{
	{"si1", "year1", 62.08, 62.4},
	{"si1", "year2", 75.94, 76.75},
	{"si2", "year1", 68.26, 72.95},
	{"si2", "year2", 85.49, 75.8},
	{"si3", "year1", 75.08, 79.84},
	{"si3", "year2", 54.98, 87.72},
	{"si4", "year1", 50.03, 66.85},
	{"si4", "year2", 71.26, 69.77},
	{"si5", "year1", 52.74, 76.27},
	{"si5", "year2", 50.39, 68.58},
	{"si6", "year1", 74.86, 60.8},
	{"si6", "year2", 58.29, 62.38},
	{"si7", "year1", 63.95, 74.51},
	{"si7", "year2", 66.69, 56.92},
}

// DefaultMarks is the student marks table for the students scenario.
func DefaultMarks() []Marks {
	return slices.Clone(defaultMarks)
}

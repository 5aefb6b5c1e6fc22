package tutorial

import (
	"context"
	"time"

	"github.com/kbukum/rddkit/logger"
	"github.com/kbukum/rddkit/observability"
	"github.com/kbukum/rddkit/rdd"
)

// BasicsReport shows collection construction and materialization.
type BasicsReport struct {
	Collected          []int  `json:"collected"`
	First              int    `json:"first"`
	TakeTwo            []int  `json:"take_two"`
	Sum                int    `json:"sum"`
	DefaultPartitions  int    `json:"default_partitions"`
	ExplicitPartitions int    `json:"explicit_partitions"`
	EmptyPartitions    int    `json:"empty_partitions"`
	EmptyCount         int    `json:"empty_count"`
	EmptyFirstError    string `json:"empty_first_error"`
	EmptyRDDPartitions int    `json:"empty_rdd_partitions"`
}

// TemperaturesReport shows a map followed by a filter.
type TemperaturesReport struct {
	Partitions int       `json:"partitions"`
	Fahrenheit []float64 `json:"fahrenheit"`
	Celsius    []float64 `json:"celsius"`
	MinCelsius float64   `json:"min_celsius"`
	AtLeast    []float64 `json:"at_least"`
}

// StudentsReport shows averaging, filtering, sorting and ordered selection.
type StudentsReport struct {
	Sample         []Marks   `json:"sample"`
	Averages       []Average `json:"averages"`
	Year           string    `json:"year"`
	YearAverages   []Average `json:"year_averages"`
	Ranked         []Average `json:"ranked"`
	Top            []Average `json:"top"`
	Bottom         []Average `json:"bottom"`
	Threshold      float64   `json:"threshold"`
	AboveThreshold []Average `json:"above_threshold"`
	Lineage        string    `json:"lineage"`
}

// Report collects the output of every scenario that ran.
type Report struct {
	Basics       *BasicsReport       `json:"basics,omitempty"`
	Temperatures *TemperaturesReport `json:"temperatures,omitempty"`
	Students     *StudentsReport     `json:"students,omitempty"`
}

// StepObserver is told about every finished scenario.
type StepObserver func(scenario string, records int, d time.Duration, err error)

// Runner runs scenarios on an execution context.
type Runner struct {
	sc      *rdd.Context
	data    Dataset
	log     *logger.Logger
	observe StepObserver
}

// NewRunner creates a Runner. observe may be nil.
func NewRunner(sc *rdd.Context, data Dataset, log *logger.Logger, observe StepObserver) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{sc: sc, data: data, log: log.WithComponent("tutorial"), observe: observe}
}

// Run executes the named scenarios in order and stops at the first failure.
// Each scenario gets a span that parents the spans of its stages.
func (r *Runner) Run(ctx context.Context, scenarios []string) (*Report, error) {
	report := &Report{}
	for _, name := range scenarios {
		if err := r.step(ctx, name, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (r *Runner) step(ctx context.Context, name string, report *Report) error {
	ctx, span := observability.StartSpan(ctx, "tutorial."+name)
	defer span.End()

	start := time.Now()
	records, err := r.runOne(ctx, name, report)
	d := time.Since(start)
	if r.observe != nil {
		r.observe(name, records, d, err)
	}
	fields := logger.Fields(logger.FieldScenario, name, logger.FieldRecords, records)
	if err != nil {
		observability.SetSpanError(ctx, err)
		r.log.WithContext(ctx).WithError(err).Error("scenario failed", fields)
		return err
	}
	r.log.WithContext(ctx).Info("scenario finished", logger.MergeWithDuration(fields, d))
	return nil
}

func (r *Runner) runOne(ctx context.Context, name string, report *Report) (int, error) {
	switch name {
	case ScenarioBasics:
		b, err := r.Basics(ctx)
		if err != nil {
			return 0, err
		}
		report.Basics = b
		return len(b.Collected), nil
	case ScenarioTemperatures:
		t, err := r.Temperatures(ctx)
		if err != nil {
			return 0, err
		}
		report.Temperatures = t
		return len(t.Celsius), nil
	case ScenarioStudents:
		s, err := r.Students(ctx)
		if err != nil {
			return 0, err
		}
		report.Students = s
		return len(s.Averages), nil
	}
	return 0, unknownScenario(name)
}

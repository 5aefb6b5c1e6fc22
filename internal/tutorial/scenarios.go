package tutorial

import (
	"context"
	"fmt"

	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/rdd"
)

func unknownScenario(name string) error {
	return errors.InvalidArgument("scenario", fmt.Sprintf("unknown scenario %q", name)).
		WithDetails(map[string]any{"scenario": name, "known": Scenarios})
}

func add(a, b int) int { return a + b }

// Basics parallelizes the number list and reads it back in several ways.
func (r *Runner) Basics(ctx context.Context) (*BasicsReport, error) {
	nums, err := rdd.Parallelize(ctx, r.sc, r.data.Numbers, 0)
	if err != nil {
		return nil, err
	}
	rep := &BasicsReport{
		Collected:         nums.Collect(),
		DefaultPartitions: nums.NumPartitions(),
	}
	if rep.First, err = nums.First(); err != nil {
		return nil, err
	}
	if rep.TakeTwo, err = nums.Take(2); err != nil {
		return nil, err
	}
	if rep.Sum, err = rdd.Reduce(ctx, nums, add); err != nil {
		return nil, err
	}

	split, err := rdd.Parallelize(ctx, r.sc, r.data.Numbers, r.data.NumbersPartitions)
	if err != nil {
		return nil, err
	}
	rep.ExplicitPartitions = split.NumPartitions()

	empty, err := rdd.Parallelize(ctx, r.sc, []int{}, r.data.NumbersPartitions)
	if err != nil {
		return nil, err
	}
	rep.EmptyPartitions = empty.NumPartitions()
	rep.EmptyCount = empty.Count()
	if _, err := empty.First(); err != nil {
		rep.EmptyFirstError = string(errors.Wrap(err).Code)
	}

	none, err := rdd.Empty[int](ctx, r.sc)
	if err != nil {
		return nil, err
	}
	rep.EmptyRDDPartitions = none.NumPartitions()
	return rep, nil
}

// Temperatures converts the Fahrenheit readings and keeps the warm ones.
func (r *Runner) Temperatures(ctx context.Context) (*TemperaturesReport, error) {
	temps, err := rdd.Parallelize(ctx, r.sc, r.data.Temperatures, r.data.TemperaturePartitions)
	if err != nil {
		return nil, err
	}
	celsius, err := rdd.Map(ctx, temps, ToCentigrade)
	if err != nil {
		return nil, err
	}
	warm, err := rdd.Filter(ctx, celsius, AtLeast(*r.data.MinCelsius))
	if err != nil {
		return nil, err
	}
	return &TemperaturesReport{
		Partitions: temps.NumPartitions(),
		Fahrenheit: temps.Collect(),
		Celsius:    celsius.Collect(),
		MinCelsius: *r.data.MinCelsius,
		AtLeast:    warm.Collect(),
	}, nil
}

// Students averages the marks table and ranks one school year.
func (r *Runner) Students(ctx context.Context) (*StudentsReport, error) {
	marks, err := rdd.Parallelize(ctx, r.sc, r.data.Marks, r.data.MarksPartitions)
	if err != nil {
		return nil, err
	}
	rep := &StudentsReport{Year: r.data.Year, Threshold: *r.data.HonorsThreshold}
	if rep.Sample, err = marks.Take(2); err != nil {
		return nil, err
	}

	averages, err := rdd.Map(ctx, marks, AverageOf)
	if err != nil {
		return nil, err
	}
	rep.Averages = averages.Collect()

	year, err := rdd.Filter(ctx, averages, InYear(r.data.Year))
	if err != nil {
		return nil, err
	}
	rep.YearAverages = year.Collect()

	ranked, err := rdd.SortBy(ctx, year, NegMeanOf)
	if err != nil {
		return nil, err
	}
	rep.Ranked = ranked.Collect()
	rep.Lineage = ranked.DebugString()

	if rep.Top, err = rdd.TakeOrdered(ctx, year, *r.data.TopN, NegMeanOf); err != nil {
		return nil, err
	}
	if rep.Bottom, err = rdd.TakeOrdered(ctx, year, *r.data.TopN, MeanOf); err != nil {
		return nil, err
	}

	above, err := rdd.Filter(ctx, year, Above(rep.Threshold))
	if err != nil {
		return nil, err
	}
	rep.AboveThreshold = above.Collect()
	return rep, nil
}

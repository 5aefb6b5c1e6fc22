// Package pipeline provides composable, pull-based iterators over a single
// partition of records.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous one on demand,
// so a chain of Map and Filter stages visits every record once and never
// materializes intermediate slices. The rdd package evaluates each partition
// of a collection through one of these chains.
//
// # Operators
//
//   - Map: transform each value
//   - FlatMap: transform each value into zero or more values
//   - Filter: keep values matching a predicate
//   - Enumerate: pair each value with its position
//   - Limit: stop after n values
//   - Reduce: accumulate all values into one result
//   - Concat: join pipelines sequentially
//
// # Usage
//
//	src := pipeline.FromSlice([]float64{59, 57.2, 53.6})
//	celsius := pipeline.Map(src, func(_ context.Context, f float64) (float64, error) {
//	    return (f - 32) * 5 / 9, nil
//	})
//	warm := pipeline.Filter(celsius, func(c float64) bool { return c >= 13 })
//	results, err := pipeline.Collect(ctx, warm)
package pipeline

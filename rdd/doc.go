// Package rdd is a local, in-process collection engine with a Spark RDD
// style API.
//
// A program creates one Context and builds collections from it:
//
//	sc, err := rdd.NewContext(rdd.Config{AppName: "demo", Master: "local[2]"})
//	nums, err := rdd.Parallelize(ctx, sc, []int{1, 2, 3, 4}, 0)
//	sq, err := rdd.Map(ctx, nums, func(_ context.Context, n int) (int, error) { return n * n, nil })
//	even, err := rdd.Filter(ctx, sq, func(n int) bool { return n%2 == 0 })
//	top, err := rdd.TakeOrdered(ctx, even, 1, func(n int) int { return -n })
//
// Evaluation is eager: every stage runs when it is called, partition by
// partition on the calling goroutine, and returns a new immutable
// Collection. Partitions only shape how elements are grouped (see Glom);
// they never change results.
//
// Errors are *errors.AppError values: INVALID_ARGUMENT for bad counts,
// EMPTY_COLLECTION from First, STAGE_FAILED when a user function returns
// an error or panics, CANCELED when ctx is done and CONTEXT_STOPPED after
// Context.Stop. A failed stage never returns a partial result.
package rdd

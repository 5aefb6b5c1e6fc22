package rdd

import (
	"context"

	"github.com/kbukum/rddkit/validation"
)

// Parallelize builds a collection from data split into numPartitions
// partitions. Zero means the context default. data is copied.
//
// Partition i holds data[i*n/p : (i+1)*n/p], so elements stay in order and
// an empty input still yields p (empty) partitions.
func Parallelize[T any](ctx context.Context, sc *Context, data []T, numPartitions int) (*Collection[T], error) {
	if err := validation.NonNegative("num_partitions", numPartitions); err != nil {
		return nil, err
	}
	if numPartitions == 0 {
		numPartitions = sc.DefaultParallelism()
	}
	return execute(ctx, sc, OpParallelize, nil, func(context.Context) (*Collection[T], stageResult, error) {
		c := newCollection(sc, OpParallelize, nil, slicePartitions(data, numPartitions))
		return c, c.result(), nil
	})
}

// Empty returns a collection with no partitions and no elements.
func Empty[T any](ctx context.Context, sc *Context) (*Collection[T], error) {
	return execute(ctx, sc, OpEmpty, nil, func(context.Context) (*Collection[T], stageResult, error) {
		c := newCollection[T](sc, OpEmpty, nil, [][]T{})
		return c, c.result(), nil
	})
}

// slicePartitions copies data into p positional slices.
func slicePartitions[T any](data []T, p int) [][]T {
	n := len(data)
	parts := make([][]T, p)
	for i := range p {
		start, end := i*n/p, (i+1)*n/p
		parts[i] = append(make([]T, 0, end-start), data[start:end]...)
	}
	return parts
}

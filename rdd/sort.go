package rdd

import (
	"cmp"
	"context"
	"slices"

	"github.com/kbukum/rddkit/pipeline"
	"github.com/kbukum/rddkit/validation"
)

type sortOptions struct {
	descending bool
	partitions int
}

// SortOption configures SortBy.
type SortOption func(*sortOptions)

// Descending sorts from the largest key to the smallest. Elements with
// equal keys keep their original relative order.
func Descending() SortOption {
	return func(o *sortOptions) { o.descending = true }
}

// WithPartitions sets the partition count of the sorted collection.
// Zero, the default, keeps the input's partition count.
func WithPartitions(n int) SortOption {
	return func(o *sortOptions) { o.partitions = n }
}

type keyed[T any, K cmp.Ordered] struct {
	key K
	val T
}

// SortBy returns the elements ordered by key, ascending unless Descending
// is given. The sort is stable. key is called exactly once per element.
//
// For a descending order on numeric keys, negating the key is equivalent
// to passing Descending.
func SortBy[T any, K cmp.Ordered](ctx context.Context, c *Collection[T], key func(T) K, opts ...SortOption) (*Collection[T], error) {
	if err := validation.NotNilFunc("key", key == nil); err != nil {
		return nil, err
	}
	var o sortOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := validation.NonNegative("partitions", o.partitions); err != nil {
		return nil, err
	}
	if o.partitions == 0 {
		o.partitions = c.NumPartitions()
	}

	return execute(ctx, c.sc, OpSortBy, c.lineage, func(ctx context.Context) (*Collection[T], stageResult, error) {
		items, err := keyAll(ctx, c, key)
		if err != nil {
			return nil, stageResult{}, err
		}
		slices.SortStableFunc(items, func(a, b keyed[T, K]) int {
			if o.descending {
				return cmp.Compare(b.key, a.key)
			}
			return cmp.Compare(a.key, b.key)
		})

		vals := make([]T, len(items))
		for i, it := range items {
			vals[i] = it.val
		}
		nc := newCollection(c.sc, OpSortBy, c.lineage, slicePartitions(vals, o.partitions))
		return nc, nc.result(), nil
	})
}

// keyAll pairs every element of c with its key, in collection order.
func keyAll[T any, K cmp.Ordered](ctx context.Context, c *Collection[T], key func(T) K) ([]keyed[T, K], error) {
	return pipeline.Collect(ctx, pipeline.Map(c.elements(), func(_ context.Context, v T) (keyed[T, K], error) {
		return keyed[T, K]{key: key(v), val: v}, nil
	}))
}

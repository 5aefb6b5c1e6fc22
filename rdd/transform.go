package rdd

import (
	"context"

	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/pipeline"
	"github.com/kbukum/rddkit/validation"
)

// Map returns a collection holding fn applied to every element, in the same
// order and partition layout. If fn fails (or panics) for any element the
// stage fails with STAGE_FAILED and no collection is returned.
func Map[T, U any](ctx context.Context, c *Collection[T], fn func(context.Context, T) (U, error)) (*Collection[U], error) {
	if err := validation.NotNilFunc("fn", fn == nil); err != nil {
		return nil, err
	}
	return derive(ctx, c, OpMap, func(p *pipeline.Pipeline[T]) *pipeline.Pipeline[U] {
		return pipeline.Map(p, fn)
	})
}

// FlatMap returns a collection holding the concatenation of fn applied to
// every element, in order. Each partition yields into the same partition.
func FlatMap[T, U any](ctx context.Context, c *Collection[T], fn func(context.Context, T) ([]U, error)) (*Collection[U], error) {
	if err := validation.NotNilFunc("fn", fn == nil); err != nil {
		return nil, err
	}
	return derive(ctx, c, OpFlatMap, func(p *pipeline.Pipeline[T]) *pipeline.Pipeline[U] {
		return pipeline.FlatMap(p, fn)
	})
}

// Filter returns the elements for which pred is true, in their original
// relative order. The partition count is preserved; partitions may end up
// empty.
func Filter[T any](ctx context.Context, c *Collection[T], pred func(T) bool) (*Collection[T], error) {
	if err := validation.NotNilFunc("pred", pred == nil); err != nil {
		return nil, err
	}
	return derive(ctx, c, OpFilter, func(p *pipeline.Pipeline[T]) *pipeline.Pipeline[T] {
		return pipeline.Filter(p, pred)
	})
}

type folded[T any] struct {
	val T
	ok  bool
}

// Reduce combines the elements in collection order with fn, which should be
// associative. An empty collection fails with EMPTY_COLLECTION.
func Reduce[T any](ctx context.Context, c *Collection[T], fn func(T, T) T) (T, error) {
	if err := validation.NotNilFunc("fn", fn == nil); err != nil {
		var zero T
		return zero, err
	}
	return execute(ctx, c.sc, OpReduce, c.lineage, func(ctx context.Context) (T, stageResult, error) {
		var zero T
		acc := pipeline.Reduce(c.elements(), folded[T]{}, func(a folded[T], v T) folded[T] {
			if !a.ok {
				return folded[T]{val: v, ok: true}
			}
			return folded[T]{val: fn(a.val, v), ok: true}
		})
		out, err := pipeline.Collect(ctx, acc)
		if err != nil {
			return zero, stageResult{}, err
		}
		if len(out) == 0 || !out[0].ok {
			return zero, stageResult{}, errors.EmptyCollection(OpReduce)
		}
		return out[0].val, stageResult{partitions: 1, records: 1}, nil
	})
}

package rdd

import (
	"cmp"
	"container/heap"
	"context"
	"slices"

	"github.com/kbukum/rddkit/pipeline"
	"github.com/kbukum/rddkit/validation"
)

// ranked is an element with its key and its position in the collection.
type ranked[T any, K cmp.Ordered] struct {
	key   K
	index int
	val   T
}

// rankHeap keeps the n best elements seen so far. before defines the
// result order; the root is the element that would come last, so it is
// the one evicted when a better element arrives.
type rankHeap[T any, K cmp.Ordered] struct {
	items  []ranked[T, K]
	before func(a, b ranked[T, K]) bool
}

func (h *rankHeap[T, K]) Len() int           { return len(h.items) }
func (h *rankHeap[T, K]) Less(i, j int) bool { return h.before(h.items[j], h.items[i]) }
func (h *rankHeap[T, K]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *rankHeap[T, K]) Push(x any) {
	h.items = append(h.items, x.(ranked[T, K]))
}

func (h *rankHeap[T, K]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// ascending orders by key, then by original position.
func ascending[T any, K cmp.Ordered](a, b ranked[T, K]) bool {
	if c := cmp.Compare(a.key, b.key); c != 0 {
		return c < 0
	}
	return a.index < b.index
}

// descending orders by key from largest, then by original position.
func descending[T any, K cmp.Ordered](a, b ranked[T, K]) bool {
	if c := cmp.Compare(a.key, b.key); c != 0 {
		return c > 0
	}
	return a.index < b.index
}

// TakeOrdered returns the n elements with the smallest keys, in ascending
// key order. Elements with equal keys keep their original relative order.
// When n exceeds the count the whole collection is returned sorted.
//
// For the n largest, negate a numeric key or use Top.
func TakeOrdered[T any, K cmp.Ordered](ctx context.Context, c *Collection[T], n int, key func(T) K) ([]T, error) {
	return selectN(ctx, c, OpTakeOrdered, n, key, ascending[T, K])
}

// Top returns the n elements with the largest keys, in descending key
// order. Elements with equal keys keep their original relative order.
func Top[T any, K cmp.Ordered](ctx context.Context, c *Collection[T], n int, key func(T) K) ([]T, error) {
	return selectN(ctx, c, OpTop, n, key, descending[T, K])
}

// selectN scans the collection once, holding at most n elements.
func selectN[T any, K cmp.Ordered](ctx context.Context, c *Collection[T], op string, n int, key func(T) K, before func(a, b ranked[T, K]) bool) ([]T, error) {
	if err := validation.NonNegative("n", n); err != nil {
		return nil, err
	}
	if err := validation.NotNilFunc("key", key == nil); err != nil {
		return nil, err
	}

	return execute(ctx, c.sc, op, c.lineage, func(ctx context.Context) ([]T, stageResult, error) {
		h := &rankHeap[T, K]{
			items:  make([]ranked[T, K], 0, min(n, c.Count())),
			before: before,
		}
		if n > 0 {
			err := pipeline.ForEach(ctx, pipeline.Enumerate(c.elements(), 0), func(_ context.Context, v pipeline.Indexed[T]) error {
				r := ranked[T, K]{key: key(v.Value), index: v.Index, val: v.Value}
				switch {
				case h.Len() < n:
					heap.Push(h, r)
				case before(r, h.items[0]):
					h.items[0] = r
					heap.Fix(h, 0)
				}
				return nil
			})
			if err != nil {
				return nil, stageResult{}, err
			}
		}

		slices.SortFunc(h.items, func(a, b ranked[T, K]) int {
			if before(a, b) {
				return -1
			}
			if before(b, a) {
				return 1
			}
			return 0
		})
		out := make([]T, len(h.items))
		for i, r := range h.items {
			out[i] = r.val
		}
		return out, stageResult{partitions: 1, records: len(out)}, nil
	})
}

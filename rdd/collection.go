package rdd

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/pipeline"
	"github.com/kbukum/rddkit/validation"
)

// Collection is an immutable, ordered, partitioned sequence of elements.
// Stages never modify their input; each returns a new Collection that
// records where it came from.
type Collection[T any] struct {
	sc         *Context
	lineage    *Lineage
	partitions [][]T
}

func newCollection[T any](sc *Context, op string, parent *Lineage, partitions [][]T) *Collection[T] {
	return &Collection[T]{
		sc: sc,
		lineage: &Lineage{
			ID:         uuid.NewString(),
			Op:         op,
			Partitions: len(partitions),
			Parent:     parent,
		},
		partitions: partitions,
	}
}

// Context returns the context the collection belongs to.
func (c *Collection[T]) Context() *Context { return c.sc }

// ID returns the unique id of the collection.
func (c *Collection[T]) ID() string { return c.lineage.ID }

// Op returns the name of the stage that produced the collection.
func (c *Collection[T]) Op() string { return c.lineage.Op }

// Lineage returns the stage chain that produced the collection.
func (c *Collection[T]) Lineage() *Lineage { return c.lineage }

// DebugString describes the collection and its ancestors.
func (c *Collection[T]) DebugString() string { return c.lineage.String() }

// NumPartitions returns the partition count.
func (c *Collection[T]) NumPartitions() int { return len(c.partitions) }

// Count returns the number of elements.
func (c *Collection[T]) Count() int {
	n := 0
	for _, p := range c.partitions {
		n += len(p)
	}
	return n
}

// IsEmpty reports whether the collection has no elements.
func (c *Collection[T]) IsEmpty() bool { return c.Count() == 0 }

// Collect returns a copy of every element in order. It materializes the
// whole collection and is meant for small results and debugging.
func (c *Collection[T]) Collect() []T {
	out := make([]T, 0, c.Count())
	for _, p := range c.partitions {
		out = append(out, p...)
	}
	return out
}

// First returns the first element.
func (c *Collection[T]) First() (T, error) {
	for _, p := range c.partitions {
		if len(p) > 0 {
			return p[0], nil
		}
	}
	var zero T
	return zero, errors.EmptyCollection("first")
}

// Take returns the first n elements, or all of them when n exceeds the
// count.
func (c *Collection[T]) Take(n int) ([]T, error) {
	if err := validation.NonNegative("n", n); err != nil {
		return nil, err
	}
	out, err := pipeline.Collect(context.Background(), pipeline.Limit(c.elements(), n))
	if err != nil {
		return nil, errors.Internal(err)
	}
	return out, nil
}

// elements streams every element in collection order.
func (c *Collection[T]) elements() *pipeline.Pipeline[T] {
	parts := make([]*pipeline.Pipeline[T], len(c.partitions))
	for i, p := range c.partitions {
		parts[i] = pipeline.FromSlice(p)
	}
	return pipeline.Concat(parts...)
}

// Glom returns a copy of the elements grouped by partition.
func (c *Collection[T]) Glom() [][]T {
	out := make([][]T, len(c.partitions))
	for i, p := range c.partitions {
		out[i] = append(make([]T, 0, len(p)), p...)
	}
	return out
}

package rdd

import (
	"fmt"
	"strings"
)

// Lineage is one node of the chain of stages that produced a collection.
type Lineage struct {
	ID         string
	Op         string
	Partitions int
	Parent     *Lineage
}

// Depth returns the number of ancestors of the node.
func (l *Lineage) Depth() int {
	d := 0
	for p := l.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// String renders the chain, newest stage first, one indented line per
// ancestor:
//
//	(2) filter [3f2c…]
//	 |  (2) map [91ab…]
//	 |  (2) parallelize [07de…]
func (l *Lineage) String() string {
	var b strings.Builder
	for n, depth := l, 0; n != nil; n, depth = n.Parent, depth+1 {
		if depth > 0 {
			b.WriteString("\n")
			b.WriteString(" | ")
			b.WriteString(strings.Repeat("  ", depth-1))
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "(%d) %s [%s]", n.Partitions, n.Op, shortID(n.ID))
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

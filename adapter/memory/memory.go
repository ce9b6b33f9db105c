// Package memory provides an in-memory, slice backed implementation of the
// collection ports. It is the reference implementation the contracts are
// developed against, and it doubles as a test fixture for view packages.
package memory

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"go.llib.dev/seqkit/port/collection"
)

// NewCollection returns a slice backed collection holding the given elements.
func NewCollection[T any](vs ...T) *Collection[T] {
	return &Collection[T]{vs: vs}
}

// Collection is a slice backed ordered collection.
// Positions are int offsets; the end index equals the current length.
//
// Appending keeps previously issued positions valid,
// which makes the recompute-on-access semantics of lazy views observable.
type Collection[T any] struct {
	vs []T
}

var (
	_ collection.Indexed[any, int]       = (*Collection[any])(nil)
	_ collection.Bidirectional[any, int] = (*Collection[any])(nil)
	_ collection.Sizer                   = (*Collection[any])(nil)
	_ collection.Slicer[any]             = (*Collection[any])(nil)
)

// Append adds elements to the end of the collection.
func (c *Collection[T]) Append(vs ...T) {
	c.vs = append(c.vs, vs...)
}

// Set replaces the element stored at the given position.
func (c *Collection[T]) Set(i int, v T) {
	if i < 0 || len(c.vs) <= i {
		panic(fmt.Sprintf("memory: Collection.Set: position %d is out of the valid range [0, %d)", i, len(c.vs)))
	}
	c.vs[i] = v
}

func (c *Collection[T]) StartIndex() int { return 0 }

func (c *Collection[T]) EndIndex() int { return len(c.vs) }

func (c *Collection[T]) IndexAfter(i int) int {
	if i < 0 || len(c.vs) <= i {
		panic(fmt.Sprintf("memory: Collection.IndexAfter: position %d is out of the valid range [0, %d)", i, len(c.vs)))
	}
	return i + 1
}

func (c *Collection[T]) IndexBefore(i int) int {
	if i <= 0 || len(c.vs) < i {
		panic(fmt.Sprintf("memory: Collection.IndexBefore: position %d has no predecessor within [0, %d]", i, len(c.vs)))
	}
	return i - 1
}

func (c *Collection[T]) Lookup(i int) T {
	return c.vs[i]
}

func (c *Collection[T]) Compare(a, b int) int {
	return cmp.Compare(a, b)
}

// Iter yields the elements in position order.
// Each range starts a fresh traversal over the collection's current content.
func (c *Collection[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.vs {
			if !yield(v) {
				return
			}
		}
	}
}

func (c *Collection[T]) Len() int { return len(c.vs) }

// Slice returns a copy of the collection's content.
func (c *Collection[T]) Slice() []T { return slices.Clone(c.vs) }

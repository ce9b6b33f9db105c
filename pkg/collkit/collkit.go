// Package collkit provides lazy views over collection port implementations.
//
// The views are value-like adapters: they own nothing but a reference to
// their base collection and a predicate, and they never mutate the base.
// Navigation, ordering and element access all delegate to the base
// collection, so a view composes transparently with anything that accepts
// the collection ports, including another view.
package collkit

import (
	"fmt"
	"iter"

	"go.llib.dev/seqkit/pkg/seqkit"
	"go.llib.dev/seqkit/port/collection"
)

// Index is an opaque position within a drop-while view.
// It wraps a base collection position and carries no logic of its own;
// ordering and equality are delegated to the base collection through
// DropWhileView.Compare.
type Index[P any] struct {
	base P
}

// Base returns the wrapped base collection position.
func (i Index[P]) Base() P { return i.base }

// DropWhile returns a lazily evaluated view over the base collection that
// hides the longest prefix of elements satisfying the predicate.
//
// The view recomputes its logical start position from scratch every time the
// start boundary is queried, which keeps it correct over a mutating base at
// the cost of a linear scan; see StartIndex for the performance caveat.
//
// Backward stepping is available when the base collection also implements
// collection.Bidirectional; see IndexBefore.
func DropWhile[T, P any](base collection.Indexed[T, P], pred func(T) bool) *DropWhileView[T, P] {
	return &DropWhileView[T, P]{base: base, pred: pred}
}

// DropWhileView is a lazy, possibly multi-pass view over a base collection
// that starts at the first element for which the predicate fails.
//
// A view holds no computed state: it is safe to keep around across mutations
// of the base, and every boundary query reflects the base's current content.
type DropWhileView[T, P any] struct {
	base collection.Indexed[T, P]
	pred func(T) bool
}

// StartIndex scans forward from the base collection's start index and returns
// the position of the first element for which the predicate returns false,
// or the end index when the predicate holds for every element.
//
// Performance caveat: this is not O(1) but proportional to the length of the
// matching prefix, and the result is deliberately not cached, so every
// operation derived from the start boundary inherits the same cost.
// The predicate may be invoked again on each query.
func (v *DropWhileView[T, P]) StartIndex() Index[P] {
	var (
		cur = v.base.StartIndex()
		end = v.base.EndIndex()
	)
	for v.base.Compare(cur, end) != 0 {
		if !v.pred(v.base.Lookup(cur)) {
			break
		}
		cur = v.base.IndexAfter(cur)
	}
	return Index[P]{base: cur}
}

// EndIndex wraps the base collection's end index.
func (v *DropWhileView[T, P]) EndIndex() Index[P] {
	return Index[P]{base: v.base.EndIndex()}
}

// IndexAfter returns the position that immediately follows i.
//
// Stepping past the end index is a contract violation and panics.
func (v *DropWhileView[T, P]) IndexAfter(i Index[P]) Index[P] {
	if v.base.Compare(i.base, v.base.EndIndex()) == 0 {
		panic("collkit: DropWhileView.IndexAfter: stepping past the end index")
	}
	return Index[P]{base: v.base.IndexAfter(i.base)}
}

// IndexBefore returns the position that immediately precedes i.
//
// It requires the base collection to support backward stepping
// (collection.Bidirectional); over a forward-only base the call is a
// contract violation and panics.
//
// Stepping before the view's logical start is undefined and panics as well.
// The bound check recomputes the start position, so this call carries the
// same linear scan caveat as StartIndex.
func (v *DropWhileView[T, P]) IndexBefore(i Index[P]) Index[P] {
	bd, ok := v.base.(collection.Bidirectional[T, P])
	if !ok {
		panic(fmt.Sprintf("collkit: DropWhileView.IndexBefore: base collection %T does not support backward stepping", v.base))
	}
	if v.Compare(i, v.StartIndex()) <= 0 {
		panic("collkit: DropWhileView.IndexBefore: stepping before the start index")
	}
	return Index[P]{base: bd.IndexBefore(i.base)}
}

// Lookup returns the element stored at the given position,
// delegating directly to the base collection.
func (v *DropWhileView[T, P]) Lookup(i Index[P]) T {
	return v.base.Lookup(i.base)
}

// Compare delegates the position ordering to the base collection.
func (v *DropWhileView[T, P]) Compare(a, b Index[P]) int {
	return v.base.Compare(a.base, b.base)
}

// Iter yields the view's elements through a fresh drop-while traversal of a
// fresh base iteration. It ignores any previously computed start index, and
// is re-rangeable whenever the base's Iter is.
func (v *DropWhileView[T, P]) Iter() iter.Seq[T] {
	return seqkit.DropWhile(v.base.Iter(), v.pred)
}

// Package collection defines the capability ports of index-addressable collections.
//
// A position (P) is an opaque handle identifying a location within a
// collection. Positions are values: they can be stored, compared and stepped,
// but they only carry meaning together with the collection that issued them.
// The ordering of positions is defined by the collection's Compare method,
// and every view or adapter composed on top of a collection must delegate
// ordering decisions to it rather than invent its own.
package collection

import "iter"

// Indexed is the capability set of a forward traversable, position-indexed collection.
//
// The half-open position range [StartIndex, EndIndex) addresses the elements.
// EndIndex is the position one past the last element; it addresses no element
// and must only be used as a boundary.
type Indexed[T, P any] interface {
	// StartIndex returns the position of the first element,
	// or a position equal to EndIndex when the collection is empty.
	StartIndex() P
	// EndIndex returns the position one past the last element.
	EndIndex() P
	// IndexAfter returns the position that immediately follows i.
	//
	// Calling it with EndIndex is a contract violation and panics.
	IndexAfter(i P) P
	// Lookup returns the element stored at the given position.
	Lookup(i P) T
	// Compare defines the total order of positions:
	//   -1 when a addresses an earlier location than b,
	//    0 when they address the same location,
	//   +1 when a addresses a later location than b.
	Compare(a, b P) int

	Iterable[T]
}

// Bidirectional is an Indexed collection that also supports backward stepping.
type Bidirectional[T, P any] interface {
	Indexed[T, P]
	// IndexBefore returns the position that immediately precedes i.
	//
	// Calling it with StartIndex is a contract violation and panics.
	IndexBefore(i P) P
}

// Iterable can yield its elements through an iter.Seq.
type Iterable[T any] interface {
	Iter() iter.Seq[T]
}

// Sizer can tell how many elements it holds.
type Sizer interface {
	Len() int
}

// Slicer returns the contents as a slice of T.
type Slicer[T any] interface {
	Slice() []T
}

// Package seqkit provides lazy prefix adapters over iter.Seq based sequences.
//
// # Summary
//
// The package's centre piece is DropWhile, a composable view that skips the
// longest prefix of a sequence for which a predicate holds, then yields every
// remaining element, including later elements the predicate would reject.
// TakeWhile is its complement. Both are lazy: no element is pulled from the
// base sequence until the result is ranged over.
//
// The predicate is expected to be a pure function.
// It is consulted at most once per element of the skipped prefix,
// plus once for the first element that fails it, and never again afterwards.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
package seqkit

import (
	"iter"
	"slices"
	"sync/atomic"

	"go.llib.dev/seqkit/internal/errorutil"
)

// ErrSeq is an iterator that can tell if a currently returned value has an issue or not.
type ErrSeq[T any] = iter.Seq2[T, error]

// SingleUseSeq is an iter.Seq[T] that can only be iterated once.
// After iteration, it is expected to yield no more values.
// Sequences returned by this package are re-rangeable
// if and only if their base sequence is re-rangeable.
type SingleUseSeq[T any] = iter.Seq[T]

// DropWhile returns a lazy sequence that skips elements from the front of the
// base sequence while the predicate returns true, and yields every element
// from the first failing one onwards.
//
// The predicate is never consulted again after it first returns false,
// so a later element that would also satisfy it is still yielded.
// When the predicate holds for every element of the base, the result is empty.
//
// Each range over the returned sequence restarts the skip logic over a fresh
// traversal of the base, which makes the result re-rangeable whenever the
// base sequence is.
func DropWhile[T any](i iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	if i == nil {
		return nil
	}
	return func(yield func(T) bool) {
		var failed bool
		for v := range i {
			if !failed {
				if pred(v) {
					continue
				}
				failed = true
			}
			if !yield(v) {
				return
			}
		}
	}
}

// DropWhile2 is the iter.Seq2 variant of DropWhile.
func DropWhile2[K, V any](i iter.Seq2[K, V], pred func(K, V) bool) iter.Seq2[K, V] {
	if i == nil {
		return nil
	}
	return func(yield func(K, V) bool) {
		var failed bool
		for k, v := range i {
			if !failed {
				if pred(k, v) {
					continue
				}
				failed = true
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// DropWhileErr applies the drop-while logic on the values of an error-aware
// sequence. Error entries pass through unchanged without consulting the
// predicate, and they do not flip the predicate latch.
func DropWhileErr[T any](i ErrSeq[T], pred func(T) bool) ErrSeq[T] {
	if i == nil {
		return nil
	}
	return func(yield func(T, error) bool) {
		var failed bool
		for v, err := range i {
			if err != nil {
				var zero T
				if !yield(zero, err) {
					return
				}
				continue
			}
			if !failed {
				if pred(v) {
					continue
				}
				failed = true
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// TakeWhile returns a lazy sequence that yields elements from the front of the
// base sequence while the predicate returns true, and stops at the first
// element that fails it. That failing element is not yielded and the base is
// not traversed past it.
func TakeWhile[T any](i iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	if i == nil {
		return nil
	}
	return func(yield func(T) bool) {
		for v := range i {
			if !pred(v) {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// TakeWhile2 is the iter.Seq2 variant of TakeWhile.
func TakeWhile2[K, V any](i iter.Seq2[K, V], pred func(K, V) bool) iter.Seq2[K, V] {
	if i == nil {
		return nil
	}
	return func(yield func(K, V) bool) {
		for k, v := range i {
			if !pred(k, v) {
				return
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Slice turns a slice into an iter.Seq.
func Slice[T any](vs []T) iter.Seq[T] {
	return slices.Values(vs)
}

// Collect ranges over the sequence and gathers its values into a slice.
func Collect[T any](i iter.Seq[T]) []T {
	if i == nil {
		return nil
	}
	var vs = make([]T, 0)
	for v := range i {
		vs = append(vs, v)
	}
	return vs
}

// CollectErr ranges over an error-aware sequence,
// gathering values and errors separately.
func CollectErr[T any](i ErrSeq[T]) ([]T, error) {
	if i == nil {
		return nil, nil
	}
	var (
		vs   []T
		errs []error
	)
	for v, err := range i {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vs = append(vs, v)
	}
	return vs, errorutil.Merge(errs...)
}

// KV represents a key-value pair of an iter.Seq2.
type KV[K, V any] struct {
	K K
	V V
}

// Collect2 gathers an iter.Seq2 into a slice of key-value pairs.
func Collect2[K, V any](i iter.Seq2[K, V]) []KV[K, V] {
	if i == nil {
		return nil
	}
	var kvs []KV[K, V]
	for k, v := range i {
		kvs = append(kvs, KV[K, V]{K: k, V: v})
	}
	return kvs
}

// Empty iterator is used to represent a nil result with the Null object pattern.
func Empty[T any]() iter.Seq[T] {
	return func(yield func(T) bool) {}
}

// Empty2 iterator is used to represent a nil result with the Null object pattern.
func Empty2[K, V any]() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {}
}

// IntRange returns an iterator that will range between the specified `begin` and the `end` int.
func IntRange(begin, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; begin+i < end+1; i++ {
			if !yield(begin + i) {
				break
			}
		}
	}
}

// Once guards a sequence against repeated traversal.
func Once[T any](i iter.Seq[T]) SingleUseSeq[T] {
	var done int32
	return func(yield func(T) bool) {
		if !atomic.CompareAndSwapInt32(&done, 0, 1) {
			return
		}
		for v := range i {
			if !yield(v) {
				return
			}
		}
	}
}

// Once2 guards an iter.Seq2 against repeated traversal.
func Once2[K, V any](i iter.Seq2[K, V]) iter.Seq2[K, V] {
	var done int32
	return func(yield func(K, V) bool) {
		if !atomic.CompareAndSwapInt32(&done, 0, 1) {
			return
		}
		for k, v := range i {
			if !yield(k, v) {
				return
			}
		}
	}
}

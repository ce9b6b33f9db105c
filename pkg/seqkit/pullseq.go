package seqkit

import (
	"io"
	"iter"

	"go.llib.dev/seqkit/internal/errorutil"
)

// PullIter define a separate object that encapsulates accessing and traversing an aggregate object.
// Clients use an iterator to access and traverse an aggregate without knowing its representation (data structures).
// Interface design inspirited by https://golang.org/pkg/encoding/json/#Decoder
type PullIter[V any] interface {
	// Next will ensure that Value returns the next item when executed.
	// If the next value is not retrievable, Next should return false and ensure Err() will return the error cause.
	Next() bool
	// Value returns the current value in the iterator.
	// The action should be repeatable without side effects.
	Value() V
	// Closer is required to make it able to cancel iterators where resources are being used behind the scene
	// for all other cases where the underling io is handled on a higher level, it should simply return nil
	io.Closer
	// Err return the error cause.
	Err() error
}

// DropWhilePull wraps a pull iterator with the drop-while logic.
//
// The returned iterator owns the base iterator and consumes it monotonically:
// on the first Next call it pulls and discards elements while the predicate
// holds, stops at the first element that fails it, and from then on delegates
// every Next call directly to the base. Once the predicate failed once,
// it is never invoked again.
func DropWhilePull[V any](i PullIter[V], pred func(V) bool) PullIter[V] {
	return &dropWhilePull[V]{iter: i, pred: pred}
}

type dropWhilePull[V any] struct {
	iter PullIter[V]
	pred func(V) bool

	// failed remembers that the predicate already returned false once.
	// It is never reset.
	failed bool
}

func (i *dropWhilePull[V]) Next() bool {
	if i.failed {
		return i.iter.Next()
	}
	for i.iter.Next() {
		if i.pred(i.iter.Value()) {
			continue
		}
		i.failed = true
		return true
	}
	return false
}

func (i *dropWhilePull[V]) Value() V {
	return i.iter.Value()
}

func (i *dropWhilePull[V]) Err() error {
	return i.iter.Err()
}

func (i *dropWhilePull[V]) Close() error {
	return i.iter.Close()
}

// ToPullIter adapts an error-aware sequence into a pull iterator.
func ToPullIter[T any](itr ErrSeq[T]) PullIter[T] {
	next, stop := iter.Pull2(itr)
	return &pullIter[T]{next: next, stop: stop}
}

// FromPullIter adapts a pull iterator into a single use error-aware sequence.
func FromPullIter[T any](itr PullIter[T]) ErrSeq[T] {
	return Once2(func(yield func(T, error) bool) {
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value(), nil) {
				return
			}
		}
		var zero T
		if err := itr.Err(); err != nil {
			if !yield(zero, err) {
				return
			}
		}
		if err := itr.Close(); err != nil {
			if !yield(zero, err) {
				return
			}
		}
	})
}

// CollectPullIter drains a pull iterator and releases it.
func CollectPullIter[T any](itr PullIter[T]) ([]T, error) {
	if itr == nil {
		return nil, nil
	}
	defer itr.Close()
	var vs []T
	for itr.Next() {
		vs = append(vs, itr.Value())
	}
	var errs []error
	if err := itr.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := itr.Close(); err != nil {
		errs = append(errs, err)
	}
	return vs, errorutil.Merge(errs...)
}

// FromPull will turn a pull based next function into an iter.Seq.
func FromPull[T any](next func() (T, bool), stops ...func()) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, stop := range stops {
			defer stop()
		}
		for {
			v, ok := next()
			if !ok {
				break
			}
			if !yield(v) {
				return
			}
		}
	}
}

type pullIter[T any] struct {
	next func() (T, error, bool)
	stop func()
	val  T
	err  error
	done bool
}

func (i *pullIter[T]) Next() bool {
	if i.done {
		return false
	}
	v, err, ok := i.next()
	if !ok {
		return false
	}
	i.val = v
	i.err = err
	return true
}

func (i *pullIter[T]) Close() error {
	if i.done {
		return nil
	}
	i.done = true
	i.stop()
	return nil
}

func (i *pullIter[T]) Err() error {
	return i.err
}

func (i *pullIter[T]) Value() T {
	return i.val
}

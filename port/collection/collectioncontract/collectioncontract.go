// Package collectioncontract validates collection port implementations
// against the behavioral expectations their consumers rely on.
package collectioncontract

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/seqkit/port/collection"
	"go.llib.dev/seqkit/port/contract"
)

// Subject groups what the Indexed contract needs from an implementation.
type Subject[T, P any] struct {
	// MakeCollection returns a collection holding the given elements in the given order.
	MakeCollection func(tb testing.TB, vs []T) collection.Indexed[T, P]
	// MakeElement returns a new element value.
	MakeElement func(tb testing.TB) T
}

// Indexed is the contract of the collection.Indexed port.
func Indexed[T, P any](mk contract.Make[Subject[T, P]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T, P] {
		return mk(t)
	})

	elements := testcase.Let(s, func(t *testcase.T) []T {
		var (
			sub = subject.Get(t)
			vs  []T
		)
		for range t.Random.IntB(3, 7) {
			vs = append(vs, sub.MakeElement(t))
		}
		return vs
	})

	col := testcase.Let(s, func(t *testcase.T) collection.Indexed[T, P] {
		return subject.Get(t).MakeCollection(t, elements.Get(t))
	})

	s.Then("walking from the start index to the end index visits every element in order", func(t *testcase.T) {
		var (
			c   = col.Get(t)
			got []T
		)
		for i := c.StartIndex(); c.Compare(i, c.EndIndex()) != 0; i = c.IndexAfter(i) {
			got = append(got, c.Lookup(i))
		}
		assert.Equal(t, elements.Get(t), got)
	})

	s.Then("Iter yields the same elements as the index walk", func(t *testcase.T) {
		var (
			c   = col.Get(t)
			got []T
		)
		for v := range c.Iter() {
			got = append(got, v)
		}
		assert.Equal(t, elements.Get(t), got)
	})

	s.Then("positions compare along the walk order", func(t *testcase.T) {
		c := col.Get(t)
		prev := c.StartIndex()
		for c.Compare(prev, c.EndIndex()) != 0 {
			next := c.IndexAfter(prev)
			assert.Equal(t, -1, c.Compare(prev, next))
			assert.Equal(t, 1, c.Compare(next, prev))
			assert.Equal(t, 0, c.Compare(prev, prev))
			prev = next
		}
	})

	s.Then("the end index compares greater than every element position", func(t *testcase.T) {
		c := col.Get(t)
		for i := c.StartIndex(); c.Compare(i, c.EndIndex()) != 0; i = c.IndexAfter(i) {
			assert.Equal(t, -1, c.Compare(i, c.EndIndex()))
		}
		assert.Equal(t, 0, c.Compare(c.EndIndex(), c.EndIndex()))
	})

	s.Then("an empty collection has its start index equal to its end index", func(t *testcase.T) {
		c := subject.Get(t).MakeCollection(t, nil)
		assert.Equal(t, 0, c.Compare(c.StartIndex(), c.EndIndex()))
	})

	s.Then("stepping past the end index panics", func(t *testcase.T) {
		c := col.Get(t)
		assert.Panic(t, func() {
			c.IndexAfter(c.EndIndex())
		})
	})

	s.Then("repeated start index queries agree", func(t *testcase.T) {
		c := col.Get(t)
		assert.Equal(t, 0, c.Compare(c.StartIndex(), c.StartIndex()))
	})

	s.Then("Len reports the number of elements when the collection implements Sizer", func(t *testcase.T) {
		c := col.Get(t)
		sizer, ok := c.(collection.Sizer)
		if !ok {
			t.Skip("collection does not implement collection.Sizer")
		}
		assert.Equal(t, len(elements.Get(t)), sizer.Len())
	})

	return s.AsSuite("collection.Indexed")
}

// BidirectionalSubject groups what the Bidirectional contract needs from an implementation.
type BidirectionalSubject[T, P any] struct {
	// MakeCollection returns a collection holding the given elements in the given order.
	MakeCollection func(tb testing.TB, vs []T) collection.Bidirectional[T, P]
	// MakeElement returns a new element value.
	MakeElement func(tb testing.TB) T
}

// Bidirectional is the contract of the collection.Bidirectional port.
// It includes the Indexed contract.
func Bidirectional[T, P any](mk contract.Make[BidirectionalSubject[T, P]]) contract.Contract {
	s := testcase.NewSpec(nil)

	testcase.RunSuite(s, Indexed[T, P](func(tb testing.TB) Subject[T, P] {
		sub := mk(tb)
		return Subject[T, P]{
			MakeCollection: func(tb testing.TB, vs []T) collection.Indexed[T, P] {
				return sub.MakeCollection(tb, vs)
			},
			MakeElement: sub.MakeElement,
		}
	}))

	subject := testcase.Let(s, func(t *testcase.T) BidirectionalSubject[T, P] {
		return mk(t)
	})

	elements := testcase.Let(s, func(t *testcase.T) []T {
		var (
			sub = subject.Get(t)
			vs  []T
		)
		for range t.Random.IntB(3, 7) {
			vs = append(vs, sub.MakeElement(t))
		}
		return vs
	})

	col := testcase.Let(s, func(t *testcase.T) collection.Bidirectional[T, P] {
		return subject.Get(t).MakeCollection(t, elements.Get(t))
	})

	s.Then("IndexBefore inverts IndexAfter", func(t *testcase.T) {
		c := col.Get(t)
		for i := c.StartIndex(); c.Compare(i, c.EndIndex()) != 0; i = c.IndexAfter(i) {
			next := c.IndexAfter(i)
			assert.Equal(t, 0, c.Compare(i, c.IndexBefore(next)))
		}
	})

	s.Then("walking backwards from the end index visits every element in reverse order", func(t *testcase.T) {
		var (
			c   = col.Get(t)
			got []T
		)
		for i := c.EndIndex(); c.Compare(i, c.StartIndex()) != 0; {
			i = c.IndexBefore(i)
			got = append(got, c.Lookup(i))
		}
		exp := elements.Get(t)
		for n := range len(exp) {
			assert.Equal(t, exp[len(exp)-1-n], got[n])
		}
	})

	s.Then("stepping before the start index panics", func(t *testcase.T) {
		c := col.Get(t)
		assert.Panic(t, func() {
			c.IndexBefore(c.StartIndex())
		})
	})

	return s.AsSuite("collection.Bidirectional")
}

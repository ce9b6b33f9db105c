package boltdb_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.llib.dev/testcase"

	"go.llib.dev/seqkit/adapter/boltdb"
	"go.llib.dev/seqkit/pkg/collkit"
	"go.llib.dev/seqkit/pkg/seqkit"
	"go.llib.dev/seqkit/port/collection"
	"go.llib.dev/seqkit/port/collection/collectioncontract"
)

func newCollection[T any](tb testing.TB, opts ...boltdb.Option) *boltdb.Collection[T] {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "collection.db")
	col, err := boltdb.Open[T](path, uuid.NewString(), opts...)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = col.Close() })
	return col
}

func TestCollection_smoke(t *testing.T) {
	col := newCollection[string](t)

	require.NoError(t, col.Append("foo", "bar", "baz"))
	assert.Equal(t, 3, col.Len())
	assert.Equal(t, []string{"foo", "bar", "baz"}, seqkit.Collect(col.Iter()))

	start := col.StartIndex()
	assert.Equal(t, "foo", col.Lookup(start))
	assert.Equal(t, "bar", col.Lookup(col.IndexAfter(start)))
	assert.Equal(t, "baz", col.Lookup(col.IndexBefore(col.EndIndex())))

	assert.NoError(t, col.Err())
}

func TestCollection_emptyBucket(t *testing.T) {
	col := newCollection[string](t)

	assert.Nil(t, col.StartIndex())
	assert.Zero(t, col.Compare(col.StartIndex(), col.EndIndex()))
	assert.Empty(t, seqkit.Collect(col.Iter()))
	assert.Zero(t, col.Len())
}

func TestCollection_endIndexOrdersLast(t *testing.T) {
	col := newCollection[int](t)
	require.NoError(t, col.Append(1, 2, 3))

	end := col.EndIndex()
	for i := col.StartIndex(); col.Compare(i, end) != 0; i = col.IndexAfter(i) {
		assert.Equal(t, -1, col.Compare(i, end))
		assert.Equal(t, 1, col.Compare(end, i))
	}
	assert.Zero(t, col.Compare(end, col.EndIndex()))
}

func TestCollection_preconditions(t *testing.T) {
	col := newCollection[int](t)
	require.NoError(t, col.Append(1, 2))

	assert.Panics(t, func() { col.IndexAfter(col.EndIndex()) })
	assert.Panics(t, func() { col.IndexBefore(col.StartIndex()) })
}

func TestCollection_lookupAtDanglingPosition(t *testing.T) {
	col := newCollection[int](t)
	require.NoError(t, col.Append(1))

	got := col.Lookup([]byte("no-such-key"))
	assert.Zero(t, got)
	assert.Error(t, col.Err())
}

func TestCollection_compression(t *testing.T) {
	plain := newCollection[string](t)
	packed := newCollection[string](t, boltdb.WithCompression())

	var vs []string
	for i := 0; i < 10; i++ {
		vs = append(vs, fmt.Sprintf("value-%d-%s", i, uuid.NewString()))
	}
	require.NoError(t, plain.Append(vs...))
	require.NoError(t, packed.Append(vs...))

	assert.Equal(t, vs, seqkit.Collect(plain.Iter()))
	assert.Equal(t, vs, seqkit.Collect(packed.Iter()))
	assert.NoError(t, packed.Err())
}

func TestCollection_reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.db")
	bucket := uuid.NewString()

	col, err := boltdb.Open[string](path, bucket)
	require.NoError(t, err)
	require.NoError(t, col.Append("foo", "bar"))
	require.NoError(t, col.Close())

	col, err = boltdb.Open[string](path, bucket)
	require.NoError(t, err)
	defer col.Close()

	assert.Equal(t, []string{"foo", "bar"}, seqkit.Collect(col.Iter()))
}

func TestCollection_contracts(t *testing.T) {
	testcase.RunSuite(t,
		collectioncontract.Indexed[string, []byte](func(tb testing.TB) collectioncontract.Subject[string, []byte] {
			return collectioncontract.Subject[string, []byte]{
				MakeCollection: func(tb testing.TB, vs []string) collection.Indexed[string, []byte] {
					col := newCollection[string](tb)
					require.NoError(tb, col.Append(vs...))
					return col
				},
				MakeElement: func(tb testing.TB) string { return uuid.NewString() },
			}
		}),
		collectioncontract.Bidirectional[string, []byte](func(tb testing.TB) collectioncontract.BidirectionalSubject[string, []byte] {
			return collectioncontract.BidirectionalSubject[string, []byte]{
				MakeCollection: func(tb testing.TB, vs []string) collection.Bidirectional[string, []byte] {
					col := newCollection[string](tb)
					require.NoError(tb, col.Append(vs...))
					return col
				},
				MakeElement: func(tb testing.TB) string { return uuid.NewString() },
			}
		}),
	)
}

func TestCollection_dropWhileView(t *testing.T) {
	col := newCollection[int](t)
	require.NoError(t, col.Append(1, 1, 2, 3))

	view := collkit.DropWhile[int, []byte](col, func(n int) bool { return n == 1 })

	assert.Equal(t, []int{2, 3}, seqkit.Collect(view.Iter()))
	assert.Equal(t, 2, view.Lookup(view.StartIndex()))
	assert.Equal(t, 3, view.Lookup(view.IndexBefore(view.EndIndex())))

	assert.Panics(t, func() {
		view.IndexBefore(view.StartIndex())
	})

	require.NoError(t, col.Append(1))
	assert.Equal(t, []int{2, 3, 1}, seqkit.Collect(view.Iter()),
		"the drop-while latch is not reconsulted for elements after the first failing one")
	assert.NoError(t, col.Err())
}

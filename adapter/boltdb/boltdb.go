// Package boltdb provides a persistent, ordered implementation of the
// collection ports on top of a boltdb bucket.
//
// Elements are appended under monotonically increasing 8 byte big-endian
// sequence keys, so the bucket's native key order is the collection order.
// Positions are copies of bucket keys; the nil key acts as the end index
// sentinel and orders after every stored key. Bolt cursors can step both
// ways, which makes the collection bidirectional.
package boltdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"sync"

	"github.com/boltdb/bolt"
	"github.com/pierrec/lz4"
	"github.com/vmihailenco/msgpack"

	"go.llib.dev/seqkit/internal/errorutil"
	"go.llib.dev/seqkit/port/collection"
	"go.llib.dev/seqkit/port/option"
)

// Open opens (or creates) a bolt database at the given path and returns a
// collection stored in the named bucket.
func Open[T any](path, bucket string, opts ...Option) (*Collection[T], error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	c, err := FromDB[T](db, bucket, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.owned = true
	return c, nil
}

// FromDB returns a collection stored in the named bucket of an already open
// bolt database. Closing the collection leaves the database open.
func FromDB[T any](db *bolt.DB, bucket string, opts ...Option) (*Collection[T], error) {
	if len(bucket) == 0 {
		return nil, fmt.Errorf("boltdb: empty bucket name")
	}
	c := &Collection[T]{
		db:     db,
		bucket: []byte(bucket),
		config: option.Use[Config](opts),
	}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(c.bucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Config holds the construction time configuration of a Collection.
type Config struct {
	// Compression enables lz4 compression on the stored element values.
	Compression bool
}

func (c Config) Configure(t *Config) { *t = c }

// Option configures a Collection during Open/FromDB.
type Option = option.Option[Config]

// WithCompression makes the collection store its values lz4 compressed.
// It must be used consistently over the lifetime of a bucket.
func WithCompression() Option {
	return option.Func[Config](func(c *Config) {
		c.Compression = true
	})
}

// Collection is a persistent ordered collection of T values in a bolt bucket.
//
// The read path (navigation, Lookup, Iter) has no error return values since
// positions are pure values; failures there are recorded and exposed through
// Err, following the iterator error convention.
type Collection[T any] struct {
	db     *bolt.DB
	bucket []byte
	config Config
	owned  bool

	mutex sync.Mutex
	errs  []error
}

var (
	_ collection.Indexed[any, []byte]       = (*Collection[any])(nil)
	_ collection.Bidirectional[any, []byte] = (*Collection[any])(nil)
	_ collection.Sizer                      = (*Collection[any])(nil)
)

// Append stores the elements at the end of the collection.
func (c *Collection[T]) Append(vs ...T) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		for _, v := range vs {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			data, err := c.encode(v)
			if err != nil {
				return err
			}
			var key [8]byte
			binary.BigEndian.PutUint64(key[:], seq)
			if err := b.Put(key[:], data); err != nil {
				return err
			}
		}
		return nil
	})
}

// StartIndex returns the position of the first element,
// or the end index sentinel when the collection is empty.
func (c *Collection[T]) StartIndex() []byte {
	var key []byte
	c.view(func(b *bolt.Bucket) error {
		k, _ := b.Cursor().First()
		key = bytes.Clone(k)
		return nil
	})
	return key
}

// EndIndex returns the end index sentinel.
// It addresses no element and orders after every stored key.
func (c *Collection[T]) EndIndex() []byte { return nil }

// IndexAfter returns the position of the key that follows i in the bucket.
//
// Stepping past the end index is a contract violation and panics.
func (c *Collection[T]) IndexAfter(i []byte) []byte {
	if i == nil {
		panic("boltdb: Collection.IndexAfter: stepping past the end index")
	}
	var key []byte
	c.view(func(b *bolt.Bucket) error {
		cur := b.Cursor()
		k, _ := cur.Seek(i)
		switch {
		case k == nil:
			key = nil // i was past the last key, the successor is the end
		case bytes.Equal(k, i):
			next, _ := cur.Next()
			key = bytes.Clone(next)
		default:
			// the element at i is gone, the seek already landed on its successor
			key = bytes.Clone(k)
		}
		return nil
	})
	return key
}

// IndexBefore returns the position of the key that precedes i in the bucket.
//
// Stepping before the first key is a contract violation and panics.
func (c *Collection[T]) IndexBefore(i []byte) []byte {
	var key []byte
	c.view(func(b *bolt.Bucket) error {
		cur := b.Cursor()
		var k []byte
		if i == nil {
			k, _ = cur.Last()
		} else {
			cur.Seek(i)
			k, _ = cur.Prev()
		}
		if k == nil {
			panic("boltdb: Collection.IndexBefore: stepping before the start index")
		}
		key = bytes.Clone(k)
		return nil
	})
	return key
}

// Lookup returns the element stored at the given position.
//
// A decoding failure or a dangling position yields the zero value
// and is reported through Err.
func (c *Collection[T]) Lookup(i []byte) T {
	var v T
	c.view(func(b *bolt.Bucket) error {
		data := b.Get(i)
		if data == nil {
			return fmt.Errorf("boltdb: no element at position %x", i)
		}
		return c.decode(data, &v)
	})
	return v
}

// Compare orders positions by the bucket's byte-wise key order,
// with the nil end sentinel ordered after everything.
func (c *Collection[T]) Compare(a, b []byte) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return bytes.Compare(a, b)
	}
}

// Iter yields the elements in key order.
// Each range opens a fresh read transaction, so the traversal observes a
// consistent snapshot of the bucket, and the sequence is re-rangeable.
func (c *Collection[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		c.view(func(b *bolt.Bucket) error {
			cur := b.Cursor()
			for k, data := cur.First(); k != nil; k, data = cur.Next() {
				var v T
				if err := c.decode(data, &v); err != nil {
					return err
				}
				if !yield(v) {
					return nil
				}
			}
			return nil
		})
	}
}

// Len reports the number of stored elements.
func (c *Collection[T]) Len() int {
	var n int
	c.view(func(b *bolt.Bucket) error {
		n = b.Stats().KeyN
		return nil
	})
	return n
}

// Err returns the accumulated read path failures, merged into one error.
func (c *Collection[T]) Err() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return errorutil.Merge(c.errs...)
}

// Close releases the collection, closing the database when Open created it.
func (c *Collection[T]) Close() error {
	if !c.owned {
		return nil
	}
	return c.db.Close()
}

func (c *Collection[T]) view(blk func(b *bolt.Bucket) error) {
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return fmt.Errorf("boltdb: missing bucket: %s", string(c.bucket))
		}
		return blk(b)
	})
	if err != nil {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		c.errs = append(c.errs, err)
	}
}

func (c *Collection[T]) encode(v T) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !c.config.Compression {
		return data, nil
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Collection[T]) decode(data []byte, ptr *T) error {
	if c.config.Compression {
		raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return err
		}
		data = raw
	}
	return msgpack.Unmarshal(data, ptr)
}

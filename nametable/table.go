// Package nametable provides a generic hash map keyed by raw byte
// slices, the "name-keyed hash container" the client package uses to
// index expressed interests and interest filters by their component
// prefix key.
package nametable

import "github.com/cespare/xxhash/v2"

const (
	initialBuckets = 16
	maxLoadFactor  = 0.75
)

type entry[V any] struct {
	key  []byte
	val  V
	next int // index into the owning bucket's chain, -1 if none
}

// Table is a chained-bucket hash map keyed by raw []byte, sized as a
// power of two with load-factor-triggered growth. It is not safe for
// concurrent use; the client package drives it from its single-threaded
// event loop only.
type Table[V any] struct {
	buckets []int // bucket head -> index into entries, -1 if empty
	entries []entry[V]
	free    []int // reclaimed entry slots from Delete
	count   int
}

// New returns an empty Table.
func New[V any]() *Table[V] {
	t := &Table[V]{}
	t.buckets = newBucketArray(initialBuckets)
	return t
}

func newBucketArray(n int) []int {
	b := make([]int, n)
	for i := range b {
		b[i] = -1
	}
	return b
}

func (t *Table[V]) bucketIndex(key []byte) int {
	return int(xxhash.Sum64(key) & uint64(len(t.buckets)-1))
}

// Get returns the value stored under key, if any.
func (t *Table[V]) Get(key []byte) (V, bool) {
	var zero V
	if len(t.buckets) == 0 {
		return zero, false
	}
	i := t.buckets[t.bucketIndex(key)]
	for i != -1 {
		e := &t.entries[i]
		if string(e.key) == string(key) {
			return e.val, true
		}
		i = e.next
	}
	return zero, false
}

// Set inserts or overwrites the value stored under key. The key bytes
// are copied, so the caller's buffer may be reused afterward.
func (t *Table[V]) Set(key []byte, v V) {
	if len(t.buckets) == 0 {
		t.buckets = newBucketArray(initialBuckets)
	}
	b := t.bucketIndex(key)
	i := t.buckets[b]
	for i != -1 {
		e := &t.entries[i]
		if string(e.key) == string(key) {
			e.val = v
			return
		}
		i = e.next
	}

	// Never nil, even for the empty key: a nil key marks a deleted slot.
	kc := append([]byte{}, key...)
	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[idx] = entry[V]{key: kc, val: v, next: t.buckets[b]}
	} else {
		idx = len(t.entries)
		t.entries = append(t.entries, entry[V]{key: kc, val: v, next: t.buckets[b]})
	}
	t.buckets[b] = idx
	t.count++

	if float64(t.count) > maxLoadFactor*float64(len(t.buckets)) {
		t.grow()
	}
}

// Delete removes key from the table, reporting whether it was present.
func (t *Table[V]) Delete(key []byte) bool {
	if len(t.buckets) == 0 {
		return false
	}
	b := t.bucketIndex(key)
	prev := -1
	i := t.buckets[b]
	for i != -1 {
		e := &t.entries[i]
		if string(e.key) == string(key) {
			if prev == -1 {
				t.buckets[b] = e.next
			} else {
				t.entries[prev].next = e.next
			}
			e.key = nil
			var zero V
			e.val = zero
			e.next = -1
			t.free = append(t.free, i)
			t.count--
			return true
		}
		prev = i
		i = e.next
	}
	return false
}

// Len returns the number of entries currently stored.
func (t *Table[V]) Len() int { return t.count }

// Range calls fn for every entry in the table, stopping early if fn
// returns false. Range is undefined behavior if fn mutates the table it
// is ranging; callers that need to mutate during iteration (the
// dispatcher included) must collect keys first and re-Get afterward.
func (t *Table[V]) Range(fn func(key []byte, v V) bool) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.key == nil {
			continue
		}
		if !fn(e.key, e.val) {
			return
		}
	}
}

func (t *Table[V]) grow() {
	newBuckets := newBucketArray(len(t.buckets) * 2)
	for i := range t.entries {
		e := &t.entries[i]
		if e.key == nil {
			continue
		}
		b := int(xxhash.Sum64(e.key) & uint64(len(newBuckets)-1))
		e.next = newBuckets[b]
		newBuckets[b] = i
	}
	t.buckets = newBuckets
}

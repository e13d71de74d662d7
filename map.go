// Copyright (c) 2026 the chainmap authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chainmap provides the Map type, a hash table that resolves
// collisions by separate chaining. Users provide an equal and a hash
// function, which makes Map usable with key types that are not
// comparable with ==; ready-made hash functions for common key types
// are in hash.go.
//
// The following requirements are the user's responsibility to follow:
//   - equal(a, b) => hash(a) == hash(b)
//   - equal(a, a) must be true for all values of a. Be careful around
//     NaN float values.
//   - hash must return the same value for a given key for the whole
//     lifetime of a Map. Bucket placement is never revalidated.
//   - If a key in a Map contains references -- such as pointers, maps,
//     or slices -- modifying the referenced data in a way that affects
//     the result of the equal or hash functions results in undefined
//     behavior.
//
// A Map is not safe for concurrent use. Mutating methods make a
// best-effort attempt to detect concurrent writers and panic, but that
// detection must not be relied upon.
package chainmap

// The bucket table is a slice of chains. Each chain holds the entries
// whose hash reduces to that bucket index, in insertion order. The
// table starts at one bucket and doubles whenever an insertion would
// begin with the load factor above 1/2, relocating the entries whose
// reduced index changed. Chains stay short because of the load factor
// bound, so every operation is amortized O(1).
//
// Erasing never shrinks the table. This is deliberate: it keeps every
// iterator that does not point at the erased entry valid.

import (
	"errors"
	"fmt"
)

const (
	// Maximum load factor that an insertion tolerates before doubling
	// the bucket table is loadFactorNum/loadFactorDen. Kept as a
	// ratio so the check is exact integer math; dividing size by
	// bucket count would truncate to zero and never trigger growth.
	loadFactorNum = 1
	loadFactorDen = 2

	// flags
	hashWriting = 1 // a caller is writing to the map
)

// ErrNotFound is returned by At when the key is not in the Map.
var ErrNotFound = errors.New("chainmap: key not found")

// Hash is a function producing a hash value for a key. For good
// performance hash functions should return uniformly distributed data
// across the entire 64 bits of the value.
type Hash[K any] func(K) uint64

// KeyValue contains a Key and a Value.
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

type entry[K, V any] struct {
	key   K
	value V
}

// bucket is one chain of entries sharing a reduced hash index, kept in
// insertion order.
type bucket[K, V any] []entry[K, V]

// Map implements a hash table with separate chaining.
type Map[K, V any] struct {
	// buckets always has at least one element once the Map is
	// constructed, protecting the modulo in bucketIndex.
	buckets []bucket[K, V]
	size    int
	flags   uint8

	hash  Hash[K]
	equal func(K, K) bool
}

// New instantiates a Map initialized with any KeyValues passed. The
// equal func must return true for two values of K that are equal and
// false otherwise. The hash func should return a uniformly distributed
// hash value with hash(a) == hash(b) whenever equal(a, b). Duplicate
// keys in kvs keep the first value, same as Insert.
func New[K, V any](
	equal func(a, b K) bool,
	hash Hash[K],
	kvs ...KeyValue[K, V]) *Map[K, V] {

	m := &Map[K, V]{
		buckets: make([]bucket[K, V], 1),
		hash:    hash,
		equal:   equal,
	}
	for _, kv := range kvs {
		m.Insert(kv.Key, kv.Value)
	}
	return m
}

// NewComparable instantiates a Map for a comparable key type, using ==
// for equality and a maphash-based hash function.
func NewComparable[K comparable, V any](kvs ...KeyValue[K, V]) *Map[K, V] {
	return New(func(a, b K) bool { return a == b }, ComparableHash[K](), kvs...)
}

// Len returns the count of entries in m.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// Empty reports whether m holds no entries.
func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// BucketCount returns the current number of buckets in m's table. It
// only ever grows: erasing entries does not shrink the table.
func (m *Map[K, V]) BucketCount() int {
	if m == nil {
		return 0
	}
	return len(m.buckets)
}

// HashFunc returns the hash function m was configured with.
func (m *Map[K, V]) HashFunc() Hash[K] {
	return m.hash
}

// bucketIndex reduces key's hash to an index into the current bucket
// table. It is recomputed on every operation, never cached, because
// the table doubles over the Map's life.
func (m *Map[K, V]) bucketIndex(key K) int {
	return int(m.hash(key) % uint64(len(m.buckets)))
}

// overLoadFactor reports whether size entries in nbuckets buckets is
// over the maximum load factor.
func overLoadFactor(size, nbuckets int) bool {
	return uint64(size)*loadFactorDen > uint64(nbuckets)*loadFactorNum
}

// grow doubles the bucket table and relocates every entry whose
// reduced index changed. Entries that stay keep their chain order;
// entries that move land at the tail of their new chain. O(size).
func (m *Map[K, V]) grow() {
	oldCount := len(m.buckets)
	m.buckets = append(m.buckets, make([]bucket[K, V], oldCount)...)
	for i := 0; i < oldCount; i++ {
		b := m.buckets[i]
		for j := 0; j < len(b); {
			idx := m.bucketIndex(b[j].key)
			if idx == i {
				j++
				continue
			}
			m.buckets[idx] = append(m.buckets[idx], b[j])
			copy(b[j:], b[j+1:])
			b[len(b)-1] = entry[K, V]{} // clear in case K or V hold pointers
			b = b[:len(b)-1]
		}
		m.buckets[i] = b
	}
}

// findEntry returns the bucket index and chain position of key, or
// (-1, -1) if key is not in m.
func (m *Map[K, V]) findEntry(key K) (int, int) {
	if m == nil || m.size == 0 {
		return -1, -1
	}
	i := m.bucketIndex(key)
	for j := range m.buckets[i] {
		if m.equal(key, m.buckets[i][j].key) {
			return i, j
		}
	}
	return -1, -1
}

// Insert associates key with value in m unless key is already present.
// It returns an iterator to the entry for key and true if the entry
// was inserted. If key was already present the existing value is left
// untouched, value is discarded, and Insert returns false; use
// Iterator.SetValue to overwrite explicitly.
func (m *Map[K, V]) Insert(key K, value V) (Iterator[K, V], bool) {
	if m == nil {
		// We have to panic here rather than initialize an empty map
		// because we need the user to pass in hash and equal
		// functions.
		panic("Insert called on nil map")
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	hash := m.hash(key)
	// Set hashWriting after calling m.hash, since m.hash may panic,
	// in which case we have not actually done a write.
	m.flags ^= hashWriting

	// The check runs before the insertion is performed, so the
	// insertion itself never needs to re-check the load factor.
	if overLoadFactor(m.size, len(m.buckets)) {
		m.grow()
	}

	i := int(hash % uint64(len(m.buckets)))
	var (
		it       Iterator[K, V]
		inserted bool
	)
	j := 0
	for ; j < len(m.buckets[i]); j++ {
		if m.equal(key, m.buckets[i][j].key) {
			break
		}
	}
	if j < len(m.buckets[i]) {
		// Already have an entry for key. Keep it.
		it = Iterator[K, V]{cursor[K, V]{m: m, bucket: i, index: j}}
	} else {
		m.buckets[i] = append(m.buckets[i], entry[K, V]{key: key, value: value})
		m.size++
		it = Iterator[K, V]{cursor[K, V]{m: m, bucket: i, index: len(m.buckets[i]) - 1}}
		inserted = true
	}

	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
	return it, inserted
}

// Get returns the value associated with key and true if that key is in
// m, otherwise it returns the zero value of V and false.
func (m *Map[K, V]) Get(key K) (V, bool) {
	i, j := m.findEntry(key)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.buckets[i][j].value, true
}

// Find returns an iterator to the entry for key, or the end iterator
// if key is not in m.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	i, j := m.findEntry(key)
	if i < 0 {
		return m.End()
	}
	return Iterator[K, V]{cursor[K, V]{m: m, bucket: i, index: j}}
}

// FindRead is Find returning a read-only iterator.
func (m *Map[K, V]) FindRead(key K) ReadIterator[K, V] {
	i, j := m.findEntry(key)
	if i < 0 {
		return m.ReadEnd()
	}
	return ReadIterator[K, V]{cursor[K, V]{m: m, bucket: i, index: j}}
}

// At returns the value associated with key, or an error wrapping
// ErrNotFound if key is not in m. At never inserts.
func (m *Map[K, V]) At(key K) (V, error) {
	i, j := m.findEntry(key)
	if i < 0 {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return m.buckets[i][j].value, nil
}

// Ref returns a pointer to the value stored for key, inserting the
// zero value of V first if key is not in m. The pointer stays valid
// until the next growth of the table or an erase of the entry.
func (m *Map[K, V]) Ref(key K) *V {
	var zero V
	it, _ := m.Insert(key, zero)
	return &m.buckets[it.bucket][it.index].value
}

// Delete removes key and its associated value from m. It is a no-op
// if key is not present, and never shrinks the bucket table.
func (m *Map[K, V]) Delete(key K) {
	if m == nil || m.size == 0 {
		return
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	hash := m.hash(key)
	// Set hashWriting after calling m.hash, since m.hash may panic,
	// in which case we have not actually done a write (delete).
	m.flags ^= hashWriting

	i := int(hash % uint64(len(m.buckets)))
	b := m.buckets[i]
	for j := range b {
		if !m.equal(key, b[j].key) {
			continue
		}
		copy(b[j:], b[j+1:])
		b[len(b)-1] = entry[K, V]{} // clear in case K or V hold pointers
		m.buckets[i] = b[:len(b)-1]
		m.size--
		break
	}

	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
}

// Clear removes all entries from m. The bucket count is kept; only the
// chains are released.
func (m *Map[K, V]) Clear() {
	if m == nil || m.size == 0 {
		return
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	m.flags ^= hashWriting

	for i := range m.buckets {
		m.buckets[i] = nil
	}
	m.size = 0

	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
}

// Swap exchanges the contents of m and other, including their hash and
// equal functions, in O(1) without copying entries. Iterators into
// either map stay valid but logically belong to the other map
// afterwards.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	if m == other {
		return
	}
	if m.flags&hashWriting != 0 || other.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	m.flags ^= hashWriting
	other.flags ^= hashWriting

	m.buckets, other.buckets = other.buckets, m.buckets
	m.hash, other.hash = other.hash, m.hash
	m.equal, other.equal = other.equal, m.equal
	m.size, other.size = other.size, m.size

	m.flags &^= hashWriting
	other.flags &^= hashWriting
}

// Clone returns a deep copy of m: every chain is copied, the hash and
// equal functions are shared. Mutating the clone never affects m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}
	c := &Map[K, V]{
		buckets: make([]bucket[K, V], len(m.buckets)),
		size:    m.size,
		hash:    m.hash,
		equal:   m.equal,
	}
	for i, b := range m.buckets {
		if len(b) == 0 {
			continue
		}
		c.buckets[i] = append(bucket[K, V](nil), b...)
	}
	return c
}

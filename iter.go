// Copyright (c) 2026 the chainmap authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import "iter"

// cursor linearizes the two-level bucket table into a single forward
// sequence. It holds a bucket index and a position within that
// bucket's chain; bucket == len(m.buckets) with index 0 is the
// canonical end position. Iterator and ReadIterator embed cursor so
// the traversal logic exists exactly once.
//
// A cursor is invalidated by any growth of the table and by an erase
// of the entry it points at. Erasing other keys leaves it valid.
type cursor[K, V any] struct {
	m      *Map[K, V]
	bucket int
	index  int
}

// normalize skips forward past empty buckets: while index is at or
// past the end of the current chain, move to the start of the next
// bucket. If the table is exhausted the cursor collapses to the
// canonical end position.
func (c cursor[K, V]) normalize() cursor[K, V] {
	if c.m == nil {
		return c
	}
	for c.bucket < len(c.m.buckets) && c.index >= len(c.m.buckets[c.bucket]) {
		c.bucket++
		c.index = 0
	}
	if c.bucket >= len(c.m.buckets) {
		c.index = 0
	}
	return c
}

func (c cursor[K, V]) atEnd() bool {
	return c.m == nil || c.bucket >= len(c.m.buckets)
}

func (c cursor[K, V]) deref() *entry[K, V] {
	if c.atEnd() {
		panic("chainmap: dereference of end iterator")
	}
	return &c.m.buckets[c.bucket][c.index]
}

// Next advances the cursor to the next entry in bucket order, skipping
// empty buckets. Advancing the end iterator is a no-op.
func (c *cursor[K, V]) Next() {
	if c.atEnd() {
		return
	}
	c.index++
	*c = c.normalize()
}

// Key returns the key at the cursor's position. It panics if the
// cursor is the end iterator.
func (c cursor[K, V]) Key() K {
	return c.deref().key
}

// Value returns the value at the cursor's position. It panics if the
// cursor is the end iterator.
func (c cursor[K, V]) Value() V {
	return c.deref().value
}

// Iterator is a forward iterator over a Map that allows updating the
// value at its position. Iterators are comparable with ==; two
// iterators over the same Map are equal exactly when they sit at the
// same position or are both the end iterator. Comparing iterators
// from different Maps is meaningless.
type Iterator[K, V any] struct {
	cursor[K, V]
}

// SetValue overwrites the value at the iterator's position. It panics
// if the iterator is the end iterator.
func (it Iterator[K, V]) SetValue(value V) {
	it.deref().value = value
}

// ReadOnly converts it into a ReadIterator at the same position.
func (it Iterator[K, V]) ReadOnly() ReadIterator[K, V] {
	return ReadIterator[K, V]{it.cursor}
}

// ReadIterator is a forward iterator over a Map that cannot modify it.
// Traversal semantics are identical to Iterator's.
type ReadIterator[K, V any] struct {
	cursor[K, V]
}

func (m *Map[K, V]) begin() cursor[K, V] {
	if m == nil {
		return cursor[K, V]{}
	}
	return cursor[K, V]{m: m}.normalize()
}

func (m *Map[K, V]) end() cursor[K, V] {
	return cursor[K, V]{m: m, bucket: m.BucketCount()}
}

// Begin returns an iterator to the first entry of m in bucket order,
// or End() if m is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{m.begin()}
}

// End returns the canonical past-the-end iterator of m.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m.end()}
}

// ReadBegin is Begin returning a read-only iterator.
func (m *Map[K, V]) ReadBegin() ReadIterator[K, V] {
	return ReadIterator[K, V]{m.begin()}
}

// ReadEnd is End returning a read-only iterator.
func (m *Map[K, V]) ReadEnd() ReadIterator[K, V] {
	return ReadIterator[K, V]{m.end()}
}

// All returns an iterator over key-value pairs from m. The order is
// bucket order: entries within a bucket come in insertion order, but
// the order across the whole Map is unrelated to insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for c := m.begin(); !c.atEnd(); c.Next() {
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in m.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for c := m.begin(); !c.atEnd(); c.Next() {
			if !yield(c.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over values in m.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for c := m.begin(); !c.atEnd(); c.Next() {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

// Collect instantiates a Map from an iterator of key-value pairs. See
// [New] for discussion of the equal and hash arguments. Duplicate keys
// keep the first value seen.
func Collect[K, V any](
	equal func(a, b K) bool,
	hash Hash[K],
	seq iter.Seq2[K, V]) *Map[K, V] {

	m := New[K, V](equal, hash)
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// Copyright (c) 2026 the chainmap authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"fmt"
	"slices"
	"strings"
)

// String converts m to a string representation using K's and V's
// String functions.
func String[K fmt.Stringer, V fmt.Stringer](m *Map[K, V]) string {
	return StringFunc(m,
		func(key K) string { return key.String() },
		func(value V) string { return value.String() },
	)
}

type strKV struct {
	k string
	v string
}

// StringFunc converts m to a string representation with the help of
// strK and strV functions to stringify m's keys and values. Entries
// are listed in sorted key-string order so the output is stable.
func StringFunc[K any, V any](m *Map[K, V],
	strK func(key K) string,
	strV func(value V) string) string {
	if m == nil || m.Len() == 0 {
		return "chainmap.Map[]"
	}
	strs := make([]strKV, m.Len())
	s := 0
	i := 0
	for c := m.begin(); !c.atEnd(); c.Next() {
		kv := &strs[i]
		kv.k = strK(c.Key())
		kv.v = strV(c.Value())
		s += len(kv.k) + len(kv.v)
		i++
	}
	slices.SortFunc(strs, func(a, b strKV) int { return strings.Compare(a.k, b.k) })

	var b strings.Builder
	b.Grow(len("chainmap.Map[]") + // space for header and footer
		len(strs)*2 - 1 + // space for delimiters
		s) // space for keys and values
	b.WriteString("chainmap.Map[")
	for i, kv := range strs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv.k)
		b.WriteByte(':')
		b.WriteString(kv.v)
	}
	b.WriteByte(']')
	return b.String()
}

// String implements fmt.Stringer, formatting keys and values with
// fmt.Sprint.
func (m *Map[K, V]) String() string {
	return StringFunc(m,
		func(key K) string { return fmt.Sprint(key) },
		func(value V) string { return fmt.Sprint(value) },
	)
}

// Equal returns true if the same set of keys and values are in m1 and
// m2. Values are compared using ==.
func Equal[K any, V comparable](m1, m2 *Map[K, V]) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for c := m1.begin(); !c.atEnd(); c.Next() {
		v2, ok := m2.Get(c.Key())
		if !ok || c.Value() != v2 {
			return false
		}
	}
	return true
}

// EqualFunc returns true if the same set of keys and values are in m1
// and m2. Values are compared using eq.
func EqualFunc[K, V any](m1, m2 *Map[K, V], eq func(V, V) bool) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for c := m1.begin(); !c.atEnd(); c.Next() {
		v2, ok := m2.Get(c.Key())
		if !ok || !eq(c.Value(), v2) {
			return false
		}
	}
	return true
}

// Copyright (c) 2026 the chainmap authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"testing"

	"github.com/dchest/siphash"
	"github.com/stretchr/testify/require"
)

func TestStringHash(t *testing.T) {
	require.Equal(t, StringHash("key"), StringHash("key"))
	require.NotEqual(t, StringHash("key"), StringHash("yek"))
}

func TestBytesHash(t *testing.T) {
	require.Equal(t, BytesHash([]byte("key")), BytesHash([]byte("key")))
	require.NotEqual(t, BytesHash([]byte("key")), BytesHash([]byte("yek")))
}

func TestIntHash(t *testing.T) {
	h := IntHash[int]()
	require.Equal(t, h(42), h(42))
	require.NotEqual(t, h(42), h(43))
	require.NotEqual(t, h(-1), h(1))

	// All integer widths agree on the same non-negative key because
	// the key is widened to 8 bytes before hashing.
	require.Equal(t, h(42), IntHash[uint32]()(42))
	require.Equal(t, h(42), IntHash[int8]()(42))
}

func TestSipHash(t *testing.T) {
	in := []byte("input")
	h := SipHash(1, 2)
	require.Equal(t, siphash.Hash(1, 2, in), h(in))
	require.Equal(t, h(in), SipHashString(1, 2)("input"))

	// The secret key changes the whole function.
	require.NotEqual(t, h(in), SipHash(3, 4)(in))
}

func TestComparableHash(t *testing.T) {
	type point struct{ X, Y int }
	h := ComparableHash[point]()
	require.Equal(t, h(point{1, 2}), h(point{1, 2}))
	require.NotEqual(t, h(point{1, 2}), h(point{2, 1}))

	// The process-wide seed makes separate instances interchangeable.
	require.Equal(t, h(point{5, 6}), ComparableHash[point]()(point{5, 6}))
}

// Each bundled hasher must actually drive a Map.
func TestHashersWithMap(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		m := New[string, int](strEq, StringHash)
		m.Insert("a", 1)
		v, ok := m.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)
	})
	t.Run("bytes", func(t *testing.T) {
		m := New[[]byte, int](func(a, b []byte) bool { return string(a) == string(b) }, BytesHash)
		m.Insert([]byte("a"), 1)
		v, ok := m.Get([]byte("a"))
		require.True(t, ok)
		require.Equal(t, 1, v)
	})
	t.Run("int", func(t *testing.T) {
		m := New[int64, int](func(a, b int64) bool { return a == b }, IntHash[int64]())
		m.Insert(-7, 1)
		v, ok := m.Get(-7)
		require.True(t, ok)
		require.Equal(t, 1, v)
	})
	t.Run("siphash", func(t *testing.T) {
		m := New[string, int](strEq, SipHashString(0xdead, 0xbeef))
		m.Insert("a", 1)
		v, ok := m.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)
	})
}

// Copyright (c) 2026 the chainmap authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Ready-made hash functions for common key types. All of them are
// deterministic for the lifetime of the process, which is stricter
// than Map requires (per-table lifetime).

// StringHash hashes string keys with XXH3.
var StringHash Hash[string] = xxh3.HashString

// BytesHash hashes byte-slice keys with XXH64.
var BytesHash Hash[[]byte] = xxhash.Sum64

// IntHash returns a Hash for any integer key type. The key is encoded
// as 8 little-endian bytes and run through murmur3 so that sequential
// keys spread across the entire 64-bit range.
func IntHash[T constraints.Integer]() Hash[T] {
	return func(k T) uint64 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
		return murmur3.Sum64(buf[:])
	}
}

// SipHash returns a keyed Hash for byte-slice keys, built on
// SipHash-2-4. Use it when keys come from untrusted input and the
// table must resist collision flooding; k0 and k1 are the 128-bit
// secret key.
func SipHash(k0, k1 uint64) Hash[[]byte] {
	return func(b []byte) uint64 {
		return siphash.Hash(k0, k1, b)
	}
}

// SipHashString is SipHash for string keys.
func SipHashString(k0, k1 uint64) Hash[string] {
	return func(s string) uint64 {
		return siphash.Hash(k0, k1, []byte(s))
	}
}

var comparableSeed = maphash.MakeSeed()

// ComparableHash returns a Hash for any comparable key type, built on
// hash/maphash. The seed is fixed at process start, so every table in
// the program places a given key identically.
func ComparableHash[K comparable]() Hash[K] {
	return func(k K) uint64 {
		return maphash.Comparable(comparableSeed, k)
	}
}

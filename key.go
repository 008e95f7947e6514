// Copyright 2025 The Unitable Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unitable

import (
	"fmt"
	"strings"
)

// KeyKind identifies the variant stored in a Key.
type KeyKind uint8

const (
	// KeyInt is an integer key.
	KeyInt KeyKind = 1 + iota
	// KeyString is a string key.
	KeyString
)

func (k KeyKind) String() string {
	switch k {
	case KeyInt:
		return "int"
	case KeyString:
		return "string"
	}
	return fmt.Sprintf("KeyKind(%d)", uint8(k))
}

// Key is a tagged variant over the supported key types. The zero value
// is invalid; construct keys with IntKey or StringKey. Keys of
// different kinds never compare equal, so an integer key 5 and the
// string key "5" can coexist in one table.
type Key struct {
	kind KeyKind
	num  int64
	str  string
}

// IntKey returns an integer-valued key.
func IntKey(v int64) Key {
	return Key{kind: KeyInt, num: v}
}

// StringKey returns a string-valued key.
func StringKey(s string) Key {
	return Key{kind: KeyString, str: s}
}

// Kind returns the key's variant tag.
func (k Key) Kind() KeyKind { return k.kind }

// Int returns the integer payload, with ok=false if the key is not an
// integer key.
func (k Key) Int() (int64, bool) {
	return k.num, k.kind == KeyInt
}

// Str returns the string payload, with ok=false if the key is not a
// string key.
func (k Key) Str() (string, bool) {
	return k.str, k.kind == KeyString
}

func (k Key) String() string {
	switch k.kind {
	case KeyInt:
		return fmt.Sprintf("%d", k.num)
	case KeyString:
		return fmt.Sprintf("%q", k.str)
	}
	return "<invalid key>"
}

func (k Key) valid() bool {
	return k.kind == KeyInt || k.kind == KeyString
}

// equal reports whether two keys have the same kind and logical value.
func (k Key) equal(o Key) bool {
	return k.kind == o.kind && k.num == o.num && k.str == o.str
}

// detach returns a copy of the key that shares no backing storage with
// the caller. String contents are cloned so that a key built from a
// substring of a larger buffer does not pin that buffer for the life
// of the table.
func (k Key) detach() Key {
	if k.kind == KeyString {
		k.str = strings.Clone(k.str)
	}
	return k
}

// knuthMultiplier is the nearest odd integer to 2^32/phi. Multiplying
// by it spreads sequential integer keys across buckets.
const knuthMultiplier = 2654435769

// hashInt is the default integer key hash (Knuth multiplicative
// method). The digest is a pure function of the key's value.
func hashInt(k int64) uint64 {
	return uint64(uint32(k) * knuthMultiplier)
}

// hashString is the default string key hash (DJB2): h = h*33 + c over
// every byte, starting from 5381. Case-sensitive, and multi-byte
// content hashes byte by byte.
func hashString(s string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(s); i++ {
		h = (h << 5) + h + uint64(s[i])
	}
	return h
}

// hashKey computes the digest for key using the table's configured
// hash functions. The bucket index is digest & (capacity-1), which is
// only valid while capacity is a power of two and must be recomputed
// after every resize.
func (t *Table) hashKey(k Key) uint64 {
	if k.kind == KeyInt {
		return t.intHash(k.num)
	}
	return t.strHash(k.str)
}

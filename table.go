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

// Package unitable implements a hash table whose keys and values are
// heterogeneous: integer and string keys can coexist in one table, and
// values range over a closed set of scalar kinds, strings, and opaque
// byte blobs. If you're not familiar with open-addressing see
// https://en.wikipedia.org/wiki/Open_addressing.
//
// # Design
//
// All entries live directly in a single flat slot array whose length
// is always a power of two (16 by default). Collisions are resolved by
// linear probing: the initial bucket is hash(key) & (capacity-1) and
// probing walks consecutive slots with wraparound. There are no
// per-entry heap nodes and no tombstones; deletion re-inserts the
// contiguous run of entries that follows the freed slot, which keeps
// every surviving entry reachable without leaving markers behind.
//
// Integer keys hash with Knuth's multiplicative method and string keys
// with DJB2; both digests are pure functions of the key's logical
// value, so a key hashes identically before and after any resize.
// Alternative hash functions can be supplied with the WithIntHash and
// WithStringHash options.
//
// The table doubles its capacity when an insertion would push the load
// factor above the maximum (0.75 by default) and halves it when a
// removal drops the load factor below the minimum (0.25 by default),
// never below the initial capacity. A resize allocates the new slot
// array, moves every live entry, and only then releases the old array,
// so a failed allocation leaves the table intact.
//
// # Ownership
//
// The table exclusively owns its slot array and every by-copy payload
// stored in it. String keys and by-copy string/blob values are
// detached into private storage at insert time; the caller's buffers
// are never aliased. By-reference blob values are borrowed: the caller
// must keep them valid for the lifetime of the entry and the table
// never duplicates them.
//
// No operation returns a pointer into the slot array, and slices
// handed out by Value.Blob must not be retained across a mutating call
// on the table: a resize reallocates the whole array.
//
// A Table is NOT goroutine-safe. Callers that share a table across
// goroutines must serialize every operation externally; no operation
// is safe to interleave with another on the same table because a
// resize swaps the backing array out from under in-flight probes.
package unitable

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	debug      = false
	invariants = false

	defaultInitialCapacity = 16
	defaultMaxLoadFactor   = 0.75
	defaultMinLoadFactor   = 0.25

	// maxCapacity bounds the slot count so that doubling can never
	// overflow an int.
	maxCapacity = 1 << (bits.UintSize - 2)
)

// Slot holds a key, a value, and an occupancy marker. An empty slot
// terminates every probe sequence that reaches it.
type Slot struct {
	key      Key
	value    Value
	occupied bool
}

// Table is an unordered map from heterogeneous keys to heterogeneous
// values with Insert, Get, Delete, Clear, and All operations. The zero
// value for a Table is not usable; construct one with New.
//
// A Table is NOT goroutine-safe.
type Table struct {
	// slots is the backing array; len(slots) is the capacity and is
	// always a power of two, which makes hash & (len(slots)-1) the
	// bucket index.
	slots []Slot
	// The number of occupied slots.
	size int
	// The capacity floor that Clear resets to and shrinking never goes
	// below.
	initialCapacity int

	maxLoadFactor float64
	minLoadFactor float64

	// Per-kind hash functions, replaceable via options.
	intHash func(int64) uint64
	strHash func(string) uint64

	// The allocator to use for the slot array.
	allocator Allocator
}

// New constructs a Table with the specified initial capacity. An
// initialCapacity of 0 means the default (16); any other value must be
// a power of two and becomes the capacity floor for Clear and
// shrinking.
func New(initialCapacity int, options ...option) (*Table, error) {
	t := &Table{
		initialCapacity: defaultInitialCapacity,
		maxLoadFactor:   defaultMaxLoadFactor,
		minLoadFactor:   defaultMinLoadFactor,
		intHash:         hashInt,
		strHash:         hashString,
		allocator:       defaultAllocator{},
	}
	if initialCapacity != 0 {
		if initialCapacity < 0 || initialCapacity&(initialCapacity-1) != 0 ||
			initialCapacity > maxCapacity {
			return nil, &InvalidCapacityError{Capacity: initialCapacity}
		}
		t.initialCapacity = initialCapacity
	}

	for _, op := range options {
		op.apply(t)
	}

	if t.minLoadFactor <= 0 || t.maxLoadFactor >= 1 || t.minLoadFactor >= t.maxLoadFactor {
		return nil, fmt.Errorf("%w: load factors min=%v max=%v",
			ErrInvalidArgument, t.minLoadFactor, t.maxLoadFactor)
	}
	if t.intHash == nil || t.strHash == nil {
		return nil, fmt.Errorf("%w: nil hash function", ErrInvalidArgument)
	}
	if t.allocator == nil {
		return nil, fmt.Errorf("%w: nil allocator", ErrInvalidArgument)
	}

	slots, err := t.allocator.AllocSlots(t.initialCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %d slots: %v", ErrAllocation, t.initialCapacity, err)
	}
	t.slots = slots
	t.checkInvariants()
	return t, nil
}

// Close closes the table, releasing its slot array back to the
// configured allocator. It is unnecessary to close a table using the
// default allocator. It is invalid to use a Table after it has been
// closed, though Close itself is idempotent.
func (t *Table) Close() {
	if t.slots != nil {
		t.allocator.FreeSlots(t.slots)
		t.slots = nil
		t.size = 0
	}
	t.allocator = nil
}

// Insert inserts an entry into the table, overwriting the existing
// value if an entry with the same key already exists. String keys and
// by-copy payloads are detached into table-owned storage.
func (t *Table) Insert(key Key, value Value) error {
	if !key.valid() {
		return fmt.Errorf("%w: key kind %s", ErrInvalidArgument, key.kind)
	}
	if !value.valid() {
		return fmt.Errorf("%w: value kind %s, pass method %s",
			ErrInvalidArgument, value.kind, value.pass)
	}

	// Growth happens before the bucket index is computed: the mask
	// changes with the capacity.
	if err := t.maybeGrow(); err != nil {
		return err
	}

	mask := uint64(len(t.slots) - 1)
	i := t.hashKey(key) & mask
	if debug {
		fmt.Printf("insert(%s): bucket=%d\n", key, i)
	}

	// The growth check guarantees size < capacity, so probing always
	// reaches an empty slot or a matching key.
	for {
		s := &t.slots[i]
		if !s.occupied {
			s.key = key.detach()
			s.value = value.detach()
			s.occupied = true
			t.size++
			if debug {
				fmt.Printf("insert(%s): new entry at %d, size=%d\n", key, i, t.size)
			}
			t.checkInvariants()
			return nil
		}
		if s.key.equal(key) {
			// Existing key: the value is replaced in place; key,
			// occupancy, and size are unchanged.
			s.value = value.detach()
			if debug {
				fmt.Printf("insert(%s): replaced value at %d\n", key, i)
			}
			t.checkInvariants()
			return nil
		}
		i = (i + 1) & mask
	}
}

// Get retrieves the value stored for the specified key, returning
// ok=false if the key is not present.
func (t *Table) Get(key Key) (value Value, ok bool) {
	if !key.valid() || t.size == 0 {
		return Value{}, false
	}
	mask := uint64(len(t.slots) - 1)
	i := t.hashKey(key) & mask
	for {
		s := &t.slots[i]
		if !s.occupied {
			// Probing stops at the first empty slot: entries are never
			// hidden behind one.
			return Value{}, false
		}
		if s.key.equal(key) {
			return s.value, true
		}
		i = (i + 1) & mask
	}
}

// Delete deletes the entry for the specified key, reporting whether an
// entry was removed. The error is non-nil only if a post-removal
// shrink could not allocate; the removal itself still holds and the
// table remains valid at its prior capacity.
func (t *Table) Delete(key Key) (bool, error) {
	if !key.valid() {
		return false, fmt.Errorf("%w: key kind %s", ErrInvalidArgument, key.kind)
	}
	if t.size == 0 {
		return false, nil
	}

	mask := uint64(len(t.slots) - 1)
	i := t.hashKey(key) & mask
	for {
		s := &t.slots[i]
		if !s.occupied {
			return false, nil
		}
		if s.key.equal(key) {
			break
		}
		i = (i + 1) & mask
	}

	t.slots[i] = Slot{}
	t.size--
	if debug {
		fmt.Printf("delete(%s): freed slot %d, size=%d\n", key, i, t.size)
	}

	// Close the probe chain: re-insert the contiguous occupied run
	// that follows the freed slot. Plain empty-marking would break any
	// lookup whose probe sequence passes through slot i.
	for j := (i + 1) & mask; t.slots[j].occupied; j = (j + 1) & mask {
		moved := t.slots[j]
		t.slots[j] = Slot{}
		k := t.hashKey(moved.key) & mask
		for t.slots[k].occupied {
			k = (k + 1) & mask
		}
		t.slots[k] = moved
		if debug && k != j {
			fmt.Printf("delete(%s): shifted %s from %d to %d\n", key, moved.key, j, k)
		}
	}

	err := t.maybeShrink()
	t.checkInvariants()
	return true, err
}

// Clear removes every entry and resets the slot array to the initial
// capacity regardless of how far the table had grown. The table
// remains usable.
func (t *Table) Clear() error {
	fresh, err := t.allocator.AllocSlots(t.initialCapacity)
	if err != nil {
		return fmt.Errorf("%w: %d slots: %v", ErrAllocation, t.initialCapacity, err)
	}
	t.allocator.FreeSlots(t.slots)
	t.slots = fresh
	t.size = 0
	t.checkInvariants()
	return nil
}

// All calls yield sequentially for each key and value present in the
// table, in no particular order. If yield returns false, iteration
// stops. The table can be mutated during iteration, though there is no
// guarantee that the mutations will be visible to the iteration.
func (t *Table) All(yield func(key Key, value Value) bool) {
	// Snapshot the slots so that iteration remains valid if the table
	// is resized during iteration.
	slots := t.slots
	for i := range slots {
		if slots[i].occupied {
			if !yield(slots[i].key, slots[i].value) {
				return
			}
		}
	}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return t.size
}

// capacity returns the current length of the slot array.
func (t *Table) capacity() int {
	return len(t.slots)
}

// maybeGrow doubles the capacity if holding one more entry would push
// the load factor above the maximum.
func (t *Table) maybeGrow() error {
	if float64(t.size+1)/float64(len(t.slots)) <= t.maxLoadFactor {
		return nil
	}
	if len(t.slots) >= maxCapacity {
		return fmt.Errorf("%w: capacity %d cannot double", ErrCapacityOverflow, len(t.slots))
	}
	return t.resize(2 * len(t.slots))
}

// maybeShrink halves the capacity if the load factor has dropped below
// the minimum, never below the initial capacity.
func (t *Table) maybeShrink() error {
	if len(t.slots) <= t.initialCapacity {
		return nil
	}
	if float64(t.size)/float64(len(t.slots)) >= t.minLoadFactor {
		return nil
	}
	return t.resize(len(t.slots) / 2)
}

// resize moves every live entry into a freshly allocated slot array of
// newCapacity, recomputing each bucket index with the new mask. The
// old array is released only after the move completes, so an
// allocation failure leaves the table in its prior, still-valid state.
func (t *Table) resize(newCapacity int) error {
	newSlots, err := t.allocator.AllocSlots(newCapacity)
	if err != nil {
		return fmt.Errorf("%w: %d slots: %v", ErrAllocation, newCapacity, err)
	}

	mask := uint64(newCapacity - 1)
	for i := range t.slots {
		s := &t.slots[i]
		if !s.occupied {
			continue
		}
		j := t.hashKey(s.key) & mask
		for newSlots[j].occupied {
			j = (j + 1) & mask
		}
		newSlots[j] = *s
	}

	if debug {
		fmt.Printf("resize: capacity=%d->%d size=%d\n", len(t.slots), newCapacity, t.size)
	}

	t.allocator.FreeSlots(t.slots)
	t.slots = newSlots
	t.checkInvariants()
	return nil
}

func (t *Table) checkInvariants() {
	if invariants {
		c := len(t.slots)
		if c == 0 || c&(c-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two\n%s",
				c, t.debugString()))
		}

		// For every occupied slot, verify the key is reachable via Get.
		var used int
		for i := range t.slots {
			if !t.slots[i].occupied {
				continue
			}
			used++
			if _, ok := t.Get(t.slots[i].key); !ok {
				panic(fmt.Sprintf("invariant failed: slot(%d): %s not found\n%s",
					i, t.slots[i].key, t.debugString()))
			}
		}

		if used != t.size {
			panic(fmt.Sprintf("invariant failed: found %d used slots, but size is %d\n%s",
				used, t.size, t.debugString()))
		}
	}
}

func (t *Table) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  size=%d\n", len(t.slots), t.size)
	for i := range t.slots {
		s := &t.slots[i]
		if !s.occupied {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
			continue
		}
		fmt.Fprintf(&buf, "  %4d: %s [hash=%x bucket=%d]\n",
			i, s.key, t.hashKey(s.key), t.hashKey(s.key)&uint64(len(t.slots)-1))
	}
	return buf.String()
}

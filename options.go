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

// option provides an interface to do work on a Table while it is being
// created.
type option interface {
	apply(t *Table)
}

type maxLoadFactorOption struct {
	f float64
}

func (op maxLoadFactorOption) apply(t *Table) {
	t.maxLoadFactor = op.f
}

// WithMaxLoadFactor is an option to specify the load factor above
// which the table doubles its capacity. Must satisfy
// minLoadFactor < f < 1. The default is 0.75.
func WithMaxLoadFactor(f float64) option {
	return maxLoadFactorOption{f}
}

type minLoadFactorOption struct {
	f float64
}

func (op minLoadFactorOption) apply(t *Table) {
	t.minLoadFactor = op.f
}

// WithMinLoadFactor is an option to specify the load factor below
// which the table halves its capacity (never below the initial
// capacity). Must satisfy 0 < f < maxLoadFactor. The default is 0.25.
func WithMinLoadFactor(f float64) option {
	return minLoadFactorOption{f}
}

type intHashOption struct {
	hash func(int64) uint64
}

func (op intHashOption) apply(t *Table) {
	t.intHash = op.hash
}

// WithIntHash is an option to specify the hash function for integer
// keys. The function must be a pure function of the key's value. The
// default is a Knuth multiplicative hash.
func WithIntHash(hash func(int64) uint64) option {
	return intHashOption{hash}
}

type strHashOption struct {
	hash func(string) uint64
}

func (op strHashOption) apply(t *Table) {
	t.strHash = op.hash
}

// WithStringHash is an option to specify the hash function for string
// keys. The function must be a pure function of the string's content.
// The default is DJB2.
func WithStringHash(hash func(string) uint64) option {
	return strHashOption{hash}
}

// Allocator specifies an interface for allocating and releasing the
// slot arrays used by a Table. The default allocator utilizes Go's
// builtin make() and allows the GC to reclaim memory.
//
// If the allocator is manually managing memory and requires that slot
// arrays be freed then Table.Close must be called in order to ensure
// FreeSlots is called.
type Allocator interface {
	// AllocSlots should return a zeroed slice equivalent to
	// make([]Slot, n), or an error if the allocation cannot be
	// satisfied. A failed allocation during a resize aborts the resize
	// and leaves the table in its prior state.
	AllocSlots(n int) ([]Slot, error)

	// FreeSlots can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocSlots.
	FreeSlots(v []Slot)
}

type defaultAllocator struct{}

func (defaultAllocator) AllocSlots(n int) ([]Slot, error) {
	return make([]Slot, n), nil
}

func (defaultAllocator) FreeSlots(v []Slot) {
}

type allocatorOption struct {
	allocator Allocator
}

func (op allocatorOption) apply(t *Table) {
	t.allocator = op.allocator
}

// WithAllocator is an option to specify the Allocator to use for a
// Table.
func WithAllocator(allocator Allocator) option {
	return allocatorOption{allocator}
}

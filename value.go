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
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the variant stored in a Value.
type ValueKind uint8

const (
	ValueUint8 ValueKind = 1 + iota
	ValueUint16
	ValueUint32
	ValueUint64
	ValueInt8
	ValueInt16
	ValueInt32
	ValueInt64
	ValueUint // platform-width unsigned integer
	ValueInt  // platform-width signed integer
	ValueFloat32
	ValueFloat64
	ValueChar
	ValueString
	ValueBlob
)

func (k ValueKind) String() string {
	switch k {
	case ValueUint8:
		return "uint8"
	case ValueUint16:
		return "uint16"
	case ValueUint32:
		return "uint32"
	case ValueUint64:
		return "uint64"
	case ValueInt8:
		return "int8"
	case ValueInt16:
		return "int16"
	case ValueInt32:
		return "int32"
	case ValueInt64:
		return "int64"
	case ValueUint:
		return "uint"
	case ValueInt:
		return "int"
	case ValueFloat32:
		return "float32"
	case ValueFloat64:
		return "float64"
	case ValueChar:
		return "char"
	case ValueString:
		return "string"
	case ValueBlob:
		return "blob"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// PassMethod controls ownership of heap-backed value payloads.
type PassMethod uint8

const (
	// PassByCopy stores a private duplicate of the payload. The table
	// owns the copy and the caller's buffer is never aliased.
	PassByCopy PassMethod = 1 + iota
	// PassByReference stores the caller's payload as-is. The caller
	// must keep it valid for the lifetime of the entry; the table does
	// not duplicate or own it.
	PassByReference
)

func (p PassMethod) String() string {
	switch p {
	case PassByCopy:
		return "by-copy"
	case PassByReference:
		return "by-reference"
	}
	return fmt.Sprintf("PassMethod(%d)", uint8(p))
}

// Value is a tagged variant over the supported value types plus an
// explicit byte length and pass method. The zero value is invalid;
// construct values with the XxxValue constructors.
type Value struct {
	kind ValueKind
	pass PassMethod
	bits uint64 // scalar payloads
	str  string
	blob []byte
	size int // payload length in bytes
}

func scalar(kind ValueKind, bits uint64, size int) Value {
	return Value{kind: kind, pass: PassByCopy, bits: bits, size: size}
}

// Uint8Value returns a uint8-valued Value.
func Uint8Value(v uint8) Value { return scalar(ValueUint8, uint64(v), 1) }

// Uint16Value returns a uint16-valued Value.
func Uint16Value(v uint16) Value { return scalar(ValueUint16, uint64(v), 2) }

// Uint32Value returns a uint32-valued Value.
func Uint32Value(v uint32) Value { return scalar(ValueUint32, uint64(v), 4) }

// Uint64Value returns a uint64-valued Value.
func Uint64Value(v uint64) Value { return scalar(ValueUint64, v, 8) }

// Int8Value returns an int8-valued Value.
func Int8Value(v int8) Value { return scalar(ValueInt8, uint64(int64(v)), 1) }

// Int16Value returns an int16-valued Value.
func Int16Value(v int16) Value { return scalar(ValueInt16, uint64(int64(v)), 2) }

// Int32Value returns an int32-valued Value.
func Int32Value(v int32) Value { return scalar(ValueInt32, uint64(int64(v)), 4) }

// Int64Value returns an int64-valued Value.
func Int64Value(v int64) Value { return scalar(ValueInt64, uint64(v), 8) }

// UintValue returns a platform-width unsigned Value.
func UintValue(v uint) Value { return scalar(ValueUint, uint64(v), strconv.IntSize / 8) }

// IntValue returns a platform-width signed Value.
func IntValue(v int) Value { return scalar(ValueInt, uint64(int64(v)), strconv.IntSize / 8) }

// Float32Value returns a float32-valued Value.
func Float32Value(v float32) Value {
	return scalar(ValueFloat32, uint64(math.Float32bits(v)), 4)
}

// Float64Value returns a float64-valued Value.
func Float64Value(v float64) Value {
	return scalar(ValueFloat64, math.Float64bits(v), 8)
}

// CharValue returns a single-character Value.
func CharValue(v byte) Value { return scalar(ValueChar, uint64(v), 1) }

// StringValue returns a string-valued Value. The content is detached
// into table-owned storage when inserted.
func StringValue(s string) Value {
	return Value{kind: ValueString, pass: PassByCopy, str: s, size: len(s)}
}

// BlobValue returns an opaque byte-blob Value passed by copy: the
// table stores a private duplicate of b at insert time and subsequent
// mutation of b does not affect the stored entry.
func BlobValue(b []byte) Value {
	return Value{kind: ValueBlob, pass: PassByCopy, blob: b, size: len(b)}
}

// BlobRefValue returns an opaque byte-blob Value passed by reference:
// the table stores b itself. The caller must keep b valid and
// unchanged for as long as the entry lives.
func BlobRefValue(b []byte) Value {
	return Value{kind: ValueBlob, pass: PassByReference, blob: b, size: len(b)}
}

// Kind returns the value's variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Pass returns how the payload was passed.
func (v Value) Pass() PassMethod { return v.pass }

// Len returns the payload length in bytes.
func (v Value) Len() int { return v.size }

// Uint returns the payload of an unsigned integer value.
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case ValueUint8, ValueUint16, ValueUint32, ValueUint64, ValueUint:
		return v.bits, true
	}
	return 0, false
}

// Int returns the payload of a signed integer value.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case ValueInt8, ValueInt16, ValueInt32, ValueInt64, ValueInt:
		return int64(v.bits), true
	}
	return 0, false
}

// Float returns the payload of a floating point value.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case ValueFloat32:
		return float64(math.Float32frombits(uint32(v.bits))), true
	case ValueFloat64:
		return math.Float64frombits(v.bits), true
	}
	return 0, false
}

// Char returns the payload of a character value.
func (v Value) Char() (byte, bool) {
	return byte(v.bits), v.kind == ValueChar
}

// Str returns the payload of a string value.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == ValueString
}

// Blob returns the payload of a blob value. For by-copy blobs the
// returned slice is the table's private copy; callers must not mutate
// it or retain it across a mutating table call.
func (v Value) Blob() ([]byte, bool) {
	return v.blob, v.kind == ValueBlob
}

// Interface returns the payload as its natural Go type.
func (v Value) Interface() any {
	switch v.kind {
	case ValueUint8:
		return uint8(v.bits)
	case ValueUint16:
		return uint16(v.bits)
	case ValueUint32:
		return uint32(v.bits)
	case ValueUint64:
		return v.bits
	case ValueInt8:
		return int8(v.bits)
	case ValueInt16:
		return int16(v.bits)
	case ValueInt32:
		return int32(v.bits)
	case ValueInt64:
		return int64(v.bits)
	case ValueUint:
		return uint(v.bits)
	case ValueInt:
		return int(v.bits)
	case ValueFloat32:
		return math.Float32frombits(uint32(v.bits))
	case ValueFloat64:
		return math.Float64frombits(v.bits)
	case ValueChar:
		return byte(v.bits)
	case ValueString:
		return v.str
	case ValueBlob:
		return v.blob
	}
	return nil
}

func (v Value) valid() bool {
	if v.kind < ValueUint8 || v.kind > ValueBlob {
		return false
	}
	return v.pass == PassByCopy || v.pass == PassByReference
}

// detach returns a copy of the value with by-copy payloads duplicated
// into table-owned storage. By-reference payloads are left aliased on
// purpose.
func (v Value) detach() Value {
	if v.pass != PassByCopy {
		return v
	}
	switch v.kind {
	case ValueString:
		v.str = strings.Clone(v.str)
	case ValueBlob:
		v.blob = append([]byte(nil), v.blob...)
	}
	return v
}

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

import "fmt"

// Add is the convenience surface over Insert. It accepts alternating
// key/value arguments, classifies each argument's runtime type into a
// Key or Value, and calls Insert once per pair:
//
//	err := t.Add(
//	    "apple", 10,
//	    "banana", 20,
//	    7, []byte{0xca, 0xfe},
//	)
//
// Keys may be int, int32, int64, string, or an explicit Key. Values
// may be any supported scalar type, string, []byte (stored by copy),
// or an explicit Value (e.g. BlobRefValue for by-reference storage).
// Add performs no probing or resizing of its own; every pair goes
// through Insert.
//
// Pairs are inserted left to right. On the first error the already
// inserted pairs remain in the table.
func (t *Table) Add(pairs ...any) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("%w: Add requires key/value pairs, got %d arguments",
			ErrInvalidArgument, len(pairs))
	}
	for i := 0; i < len(pairs); i += 2 {
		key, err := makeKey(pairs[i])
		if err != nil {
			return err
		}
		value, err := makeValue(pairs[i+1])
		if err != nil {
			return err
		}
		if err := t.Insert(key, value); err != nil {
			return err
		}
	}
	return nil
}

// makeKey classifies a runtime value into a Key.
func makeKey(x any) (Key, error) {
	switch k := x.(type) {
	case Key:
		return k, nil
	case int:
		return IntKey(int64(k)), nil
	case int32:
		return IntKey(int64(k)), nil
	case int64:
		return IntKey(k), nil
	case string:
		return StringKey(k), nil
	}
	return Key{}, fmt.Errorf("%w: unsupported key type %T", ErrInvalidArgument, x)
}

// makeValue classifies a runtime value into a Value.
func makeValue(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case uint8:
		return Uint8Value(v), nil
	case uint16:
		return Uint16Value(v), nil
	case uint32:
		return Uint32Value(v), nil
	case uint64:
		return Uint64Value(v), nil
	case int8:
		return Int8Value(v), nil
	case int16:
		return Int16Value(v), nil
	case int32:
		return Int32Value(v), nil
	case int64:
		return Int64Value(v), nil
	case uint:
		return UintValue(v), nil
	case int:
		return IntValue(v), nil
	case float32:
		return Float32Value(v), nil
	case float64:
		return Float64Value(v), nil
	case string:
		return StringValue(v), nil
	case []byte:
		return BlobValue(v), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidArgument, x)
}

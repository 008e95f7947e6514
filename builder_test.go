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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	m := mustNew(t, 0)

	require.NoError(t, m.Add(
		"apple", 10,
		"banana", 20,
		"apple", 99,
	))
	require.EqualValues(t, 2, m.Len())

	v, ok := m.Get(StringKey("apple"))
	require.True(t, ok)
	require.EqualValues(t, 99, v.Interface())
	v, ok = m.Get(StringKey("banana"))
	require.True(t, ok)
	require.EqualValues(t, 20, v.Interface())
}

func TestAddMixedTypes(t *testing.T) {
	m := mustNew(t, 0)

	require.NoError(t, m.Add(
		1, "one",
		int64(2), 3.5,
		int32(3), uint8(255),
		IntKey(4), CharValue('x'),
		"blob", []byte{0xca, 0xfe},
		"ref", BlobRefValue([]byte{0xbe, 0xef}),
	))
	require.EqualValues(t, 6, m.Len())

	v, _ := m.Get(IntKey(1))
	require.Equal(t, ValueString, v.Kind())
	require.Equal(t, "one", v.Interface())

	v, _ = m.Get(IntKey(2))
	require.Equal(t, ValueFloat64, v.Kind())
	require.Equal(t, 3.5, v.Interface())

	v, _ = m.Get(IntKey(3))
	require.Equal(t, ValueUint8, v.Kind())

	v, _ = m.Get(IntKey(4))
	require.Equal(t, ValueChar, v.Kind())

	v, _ = m.Get(StringKey("blob"))
	require.Equal(t, ValueBlob, v.Kind())
	require.Equal(t, PassByCopy, v.Pass())

	v, _ = m.Get(StringKey("ref"))
	require.Equal(t, ValueBlob, v.Kind())
	require.Equal(t, PassByReference, v.Pass())
}

func TestAddErrors(t *testing.T) {
	m := mustNew(t, 0)

	// Odd argument count.
	require.ErrorIs(t, m.Add("apple"), ErrInvalidArgument)

	// Unsupported key and value types.
	require.ErrorIs(t, m.Add(3.5, 1), ErrInvalidArgument)
	require.ErrorIs(t, m.Add("k", struct{}{}), ErrInvalidArgument)
	require.ErrorIs(t, m.Add("k", nil), ErrInvalidArgument)

	// Pairs before the failing one stay inserted.
	err := m.Add("ok", 1, 3.5, 2)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, ok := m.Get(StringKey("ok"))
	require.True(t, ok)
}

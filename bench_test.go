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
	"io"
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
	"github.com/cespare/xxhash/v2"
)

func benchSizes(f func(b *testing.B, n int)) func(*testing.B) {
	var cases = []int{16, 128, 1024, 8192, 1 << 16}

	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n) })
		}
	}
}

func genIntKeys(start, end int) []Key {
	keys := make([]Key, end-start)
	for i := range keys {
		keys[i] = IntKey(int64(start + i))
	}
	return keys
}

func genStringKeys(start, end int) []Key {
	keys := make([]Key, end-start)
	for i := range keys {
		keys[i] = StringKey(strconv.Itoa(start + i))
	}
	return keys
}

func BenchmarkMapGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapGetHitInt))
		b.Run("t=String", benchSizes(benchmarkRuntimeMapGetHitString))
	})
	b.Run("impl=unitable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(func(b *testing.B, n int) {
			benchmarkTableGetHit(b, n, genIntKeys)
		}))
		b.Run("t=String", benchSizes(func(b *testing.B, n int) {
			benchmarkTableGetHit(b, n, genStringKeys)
		}))
	})
}

func BenchmarkMapGetMiss(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapGetMissInt))
	})
	b.Run("impl=unitable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(func(b *testing.B, n int) {
			benchmarkTableGetMiss(b, n, genIntKeys)
		}))
	})
}

func BenchmarkMapPutGrow(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapPutGrowInt))
	})
	b.Run("impl=unitable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(func(b *testing.B, n int) {
			benchmarkTablePutGrow(b, n, genIntKeys)
		}))
	})
}

func BenchmarkMapPutDelete(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapPutDeleteInt))
	})
	b.Run("impl=unitable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(func(b *testing.B, n int) {
			benchmarkTablePutDelete(b, n, genIntKeys)
		}))
	})
}

// BenchmarkStringHash compares the default DJB2 string hash against
// xxhash supplied through WithStringHash.
func BenchmarkStringHash(b *testing.B) {
	b.Run("hash=djb2", benchSizes(func(b *testing.B, n int) {
		benchmarkTableStringHash(b, n)
	}))
	b.Run("hash=xxhash", benchSizes(func(b *testing.B, n int) {
		benchmarkTableStringHash(b, n, WithStringHash(xxhash.Sum64String))
	}))
}

func benchmarkRuntimeMapGetHitInt(b *testing.B, n int) {
	m := make(map[int64]int64, n)
	for i := 0; i < n; i++ {
		m[int64(i)] = int64(i)
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[int64(i&(n-1))]
	}
	b.StopTimer()
	cs.Stop()
}

func benchmarkRuntimeMapGetHitString(b *testing.B, n int) {
	m := make(map[string]int64, n)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = strconv.Itoa(i)
		m[keys[i]] = int64(i)
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i&(n-1)]]
	}
	b.StopTimer()
	cs.Stop()
}

func benchmarkTableGetHit(b *testing.B, n int, genKeys func(start, end int) []Key) {
	m, err := New(0)
	if err != nil {
		b.Fatal(err)
	}
	keys := genKeys(0, n)
	for i, k := range keys {
		if err := m.Insert(k, Int64Value(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(keys[i&(n-1)])
	}
	b.StopTimer()
	cs.Stop()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRuntimeMapGetMissInt(b *testing.B, n int) {
	m := make(map[int64]int64, n)
	for i := 0; i < n; i++ {
		m[int64(i)] = int64(i)
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[int64(-1-(i&(n-1)))]
	}
	b.StopTimer()
	cs.Stop()
}

func benchmarkTableGetMiss(b *testing.B, n int, genKeys func(start, end int) []Key) {
	m, err := New(0)
	if err != nil {
		b.Fatal(err)
	}
	keys := genKeys(0, n)
	miss := genKeys(-n, 0)
	for i, k := range keys {
		if err := m.Insert(k, Int64Value(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(miss[i&(n-1)])
	}
	b.StopTimer()
	cs.Stop()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRuntimeMapPutGrowInt(b *testing.B, n int) {
	cs := perfbench.Open(b)
	for i := 0; i < b.N; i++ {
		m := make(map[int64]int64)
		for j := 0; j < n; j++ {
			m[int64(j)] = int64(j)
		}
	}
	cs.Stop()
}

func benchmarkTablePutGrow(b *testing.B, n int, genKeys func(start, end int) []Key) {
	keys := genKeys(0, n)
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := New(0)
		if err != nil {
			b.Fatal(err)
		}
		for j, k := range keys {
			if err := m.Insert(k, Int64Value(int64(j))); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.StopTimer()
	cs.Stop()
}

func benchmarkRuntimeMapPutDeleteInt(b *testing.B, n int) {
	m := make(map[int64]int64, n)
	for i := 0; i < n; i++ {
		m[int64(i)] = int64(i)
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := int64(i & (n - 1))
		delete(m, k)
		m[k] = k
	}
	b.StopTimer()
	cs.Stop()
}

func benchmarkTablePutDelete(b *testing.B, n int, genKeys func(start, end int) []Key) {
	m, err := New(0)
	if err != nil {
		b.Fatal(err)
	}
	keys := genKeys(0, n)
	for i, k := range keys {
		if err := m.Insert(k, Int64Value(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i&(n-1)]
		if _, err := m.Delete(k); err != nil {
			b.Fatal(err)
		}
		if err := m.Insert(k, Int64Value(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	cs.Stop()
}

func benchmarkTableStringHash(b *testing.B, n int, options ...option) {
	m, err := New(0, options...)
	if err != nil {
		b.Fatal(err)
	}
	keys := genStringKeys(0, n)
	for i, k := range keys {
		if err := m.Insert(k, Int64Value(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(keys[i&(n-1)])
	}
	b.StopTimer()
	cs.Stop()
	fmt.Fprint(io.Discard, ok)
}

// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   uint64
		want float64
	}{
		{name: "zero", in: 0, want: MinUniform},
		{name: "one", in: 1, want: MinUniform},
		{name: "half", in: 1 << 63, want: 0.5},
		{name: "quarter", in: 1 << 62, want: 0.25},
		{name: "max", in: math.MaxUint64, want: MaxUniform},
		{name: "max-1023", in: math.MaxUint64 - 1023, want: MaxUniform},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Greater(t, got, 0.0)
			assert.Less(t, got, 1.0)
		})
	}
}

func TestNormalizeKeepsTransformsFinite(t *testing.T) {
	t.Parallel()

	for _, x := range []uint64{0, 1, 2047, math.MaxUint64, math.MaxUint64 - 1} {
		u := Normalize(x)

		require.False(t, math.IsInf(math.Log(u), 0), "ln(u) for %d", x)
		require.False(t, math.IsInf(math.Erfinv(2*u-1), 0), "erfinv(2u-1) for %d", x)
		require.False(t, math.IsInf(math.Log(1-2*math.Abs(u-0.5)), 0), "laplace log for %d", x)
	}
}

func TestNormalizeMatchesDivisionInside(t *testing.T) {
	t.Parallel()

	x := NewXoshiro(42)
	for range 1000 {
		raw := x.Uint64()
		if raw < 1<<11 || raw > math.MaxUint64-(1<<11) {
			continue
		}
		require.Equal(t, float64(raw)/float64(math.MaxUint64), Normalize(raw))
	}
}

func TestCounting(t *testing.T) {
	t.Parallel()

	plain := NewXoshiro(7)
	counted := NewCounting(NewXoshiro(7))

	for range 25 {
		require.Equal(t, plain.Uint64(), counted.Uint64())
	}
	require.Equal(t, uint64(25), counted.Draws())

	_ = Uniform(counted)
	require.Equal(t, uint64(26), counted.Draws())
}

func TestSeedFromString(t *testing.T) {
	t.Parallel()

	seed, err := SeedFromString("555")
	require.NoError(t, err)
	require.Equal(t, uint64(555), seed)

	_, err = SeedFromString(RandomSeed)
	require.NoError(t, err)

	_, err = SeedFromString("-1")
	require.Error(t, err)

	_, err = SeedFromString("abc")
	require.Error(t, err)
}

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
	"strconv"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func TestXoshiroReferenceVector(t *testing.T) {
	t.Parallel()

	x := &Xoshiro{s: [4]uint64{1, 2, 3, 4}}

	expected := []uint64{41943041, 58720359, 3588806011781223, 3591011842654386}
	for i, want := range expected {
		require.Equalf(t, want, x.Uint64(), "draw %d", i)
	}
}

func TestXoshiroSeed555(t *testing.T) {
	t.Parallel()

	x := NewXoshiro(555)

	expected := []uint64{
		1944036549279216902,
		389184966539594936,
		13840560104903909910,
		8939171318817923261,
		9511958991888903768,
	}
	for i, want := range expected {
		require.Equalf(t, want, x.Uint64(), "draw %d", i)
	}
}

func TestXoshiroSeed555Stream(t *testing.T) {
	t.Parallel()

	x := NewXoshiro(555)

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = strconv.FormatUint(x.Uint64(), 10)
	}

	snaps.MatchSnapshot(t, strings.Join(lines, "\n"))
}

func TestXoshiroDeterminism(t *testing.T) {
	t.Parallel()

	for _, seed := range []uint64{0, 1, 555, 1 << 63, ^uint64(0)} {
		t.Run(strconv.FormatUint(seed, 10), func(t *testing.T) {
			t.Parallel()

			a := NewXoshiro(seed)
			b := NewXoshiro(seed)

			for i := range 10_000 {
				require.Equalf(t, a.Uint64(), b.Uint64(), "streams diverged at draw %d", i)
			}
		})
	}
}

func TestXoshiroReseed(t *testing.T) {
	t.Parallel()

	x := NewXoshiro(555)
	first := x.Uint64()
	_ = x.Uint64()

	x.Seed(555)
	require.Equal(t, first, x.Uint64())
}

func TestXoshiroSeedZeroIsNotDegenerate(t *testing.T) {
	t.Parallel()

	x := NewXoshiro(0)
	require.NotEqual(t, [4]uint64{}, x.s)
	require.Equal(t, uint64(5987356902031041503), x.Uint64())
}

func BenchmarkXoshiro(b *testing.B) {
	x := NewXoshiro(555)
	for b.Loop() {
		_ = x.Uint64()
	}
}

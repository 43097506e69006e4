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

import "math/rand/v2"

const (
	// two64 is 2^64, the value float64(math.MaxUint64) rounds to.
	two64 = 0x1p64

	// MinUniform and MaxUniform bound every value returned by Normalize.
	// At these bounds ln(u), ln(1-2|u-1/2|) and erfinv(2u-1) stay finite.
	MinUniform = 0x1p-53
	MaxUniform = 1 - 0x1p-53
)

// Normalize maps a raw draw onto [MinUniform, MaxUniform], a sub-range of
// [0,1). Apart from the clamped extremes the result is x / 2^64.
func Normalize(x uint64) float64 {
	u := float64(x) / two64
	switch {
	case u < MinUniform:
		return MinUniform
	case u > MaxUniform:
		return MaxUniform
	default:
		return u
	}
}

// Uniform draws one value from src and normalizes it.
func Uniform(src rand.Source) float64 {
	return Normalize(src.Uint64())
}

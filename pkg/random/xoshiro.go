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
	"math/bits"
	"math/rand/v2"
)

var _ rand.Source = (*Xoshiro)(nil)

// Xoshiro is the xoshiro256++ generator by Blackman and Vigna.
//
// The state is expanded from a single 64-bit seed with SplitMix64, the
// seeding procedure recommended by the authors, so a given seed yields the
// same stream as every other conforming implementation.
//
// Xoshiro is not safe for concurrent use. The draw order is part of the
// output, so a stream must be owned by exactly one consumer at a time.
type Xoshiro struct {
	s [4]uint64
}

func NewXoshiro(seed uint64) *Xoshiro {
	x := &Xoshiro{}
	x.Seed(seed)
	return x
}

// Seed resets the state as if the generator had just been created with seed.
func (x *Xoshiro) Seed(seed uint64) {
	sm := splitMix64(seed)
	for i := range x.s {
		x.s[i] = sm.next()
	}
}

func (x *Xoshiro) Uint64() uint64 {
	s := &x.s
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]

	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

type splitMix64 uint64

func (s *splitMix64) next() uint64 {
	*s += 0x9e3779b97f4a7c15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

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

// Package testutils holds deterministic bit streams for tests.
package testutils

import (
	"math"
)

// Raw words whose normalized uniform value is exact.
const (
	RawQuarter       = uint64(1) << 62
	RawHalf          = uint64(1) << 63
	RawThreeQuarters = uint64(3) << 62
	RawMax           = uint64(math.MaxUint64)
)

// NonRandSource returns the same word forever.
type NonRandSource uint64

func (s NonRandSource) Uint64() uint64 {
	return uint64(s)
}

// ScriptedSource replays its words in a loop and counts the reads.
type ScriptedSource struct {
	values []uint64
	index  int
}

func NewScriptedSource(values ...uint64) *ScriptedSource {
	if len(values) == 0 {
		panic("scripted source needs at least one value")
	}
	return &ScriptedSource{values: values}
}

func (s *ScriptedSource) Uint64() uint64 {
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

func (s *ScriptedSource) Reads() int {
	return s.index
}

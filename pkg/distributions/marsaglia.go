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

package distributions

import (
	"math"
	"math/rand/v2"

	"github.com/scylladb/gaussbench/pkg/random"
)

// Marsaglia is the polar method. Points (x, y) are drawn uniformly from the
// square [-1,1)^2 until s = x^2+y^2 lies in the open interval (0, 1); the
// accepted point yields x*k and y*k, k = sqrt(-2 ln s / s), stored at 2i and
// 2i+1. For odd n the second half of the last pair is discarded.
//
// The redraw loop has no iteration cap: capping it would bias the accepted
// distribution. It terminates with probability one for any source that does
// not get stuck outside the disk; a constant source does not qualify.
type Marsaglia struct {
	// onAccept, when set, receives every accepted s. It is only set by tests
	// that instrument the acceptance region.
	onAccept func(s float64)
}

func (*Marsaglia) Name() string {
	return MarsagliaName
}

func (m *Marsaglia) Generate(src rand.Source, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := 0; i < len(out); i += 2 {
		var x, y, s float64
		for {
			x = (random.Uniform(src) - 0.5) * 2
			y = (random.Uniform(src) - 0.5) * 2
			s = x*x + y*y
			if s > 0 && s < 1 {
				break
			}
		}

		if m.onAccept != nil {
			m.onAccept(s)
		}

		k := math.Sqrt(-2 * math.Log(s) / s)
		out[i] = x * k
		if i+1 < len(out) {
			out[i+1] = y * k
		}
	}
	return out
}

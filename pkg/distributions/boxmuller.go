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

// BoxMuller turns each pair of uniforms (x, y) into the two samples
// r*cos(2*pi*y) and r*sin(2*pi*y), r = sqrt(-2 ln x), stored at 2i and 2i+1.
// For odd n the sine half of the last pair is discarded.
type BoxMuller struct{}

func (BoxMuller) Name() string {
	return BoxMullerName
}

func (BoxMuller) Generate(src rand.Source, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := 0; i < len(out); i += 2 {
		x := random.Uniform(src)
		y := random.Uniform(src)

		r := math.Sqrt(-2 * math.Log(x))
		theta := 2 * math.Pi * y

		out[i] = r * math.Cos(theta)
		if i+1 < len(out) {
			out[i+1] = r * math.Sin(theta)
		}
	}
	return out
}

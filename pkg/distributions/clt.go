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

// CentralLimit approximates a standard normal sample by the centred and
// scaled sum of Terms uniforms. More terms give better tails at a linear cost.
type CentralLimit struct {
	Terms int

	center float64
	scale  float64
}

func NewCentralLimit(terms int) CentralLimit {
	if terms < 1 {
		panic("terms must be at least 1")
	}

	return CentralLimit{
		Terms:  terms,
		center: float64(terms) / 2,
		scale:  math.Sqrt(float64(terms) / 12),
	}
}

func (CentralLimit) Name() string {
	return CentralLimitName
}

func (c CentralLimit) Generate(src rand.Source, n int) []float64 {
	if c.scale == 0 {
		c = NewCentralLimit(c.Terms)
	}

	out := make([]float64, max(n, 0))
	for i := range out {
		sum := 0.0
		for range c.Terms {
			sum += random.Uniform(src)
		}
		out[i] = (sum - c.center) / c.scale
	}
	return out
}

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

var (
	// laplaceBound is c = 2*sqrt(e/(2*pi)), the smallest constant with
	// f(y) <= c*g(y) for the standard normal f and the unit Laplace g.
	laplaceBound = 2 * math.Sqrt(math.E/(2*math.Pi))
	sqrt2Pi      = math.Sqrt(2 * math.Pi)
)

// Laplace is rejection sampling with a unit Laplace proposal. Each attempt
// draws a (proposal) then u (acceptance) and keeps
// y = sign(a-1/2) * ln(1-2|a-1/2|) when c*g(y)*u <= f(y). On average c ≈ 1.315
// attempts are needed per sample. As for Marsaglia the loop is not capped.
type Laplace struct{}

func (Laplace) Name() string {
	return LaplaceName
}

func (Laplace) Generate(src rand.Source, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		for {
			a := random.Uniform(src)
			u := random.Uniform(src)

			y := math.Copysign(1, a-0.5) * math.Log(1-2*math.Abs(a-0.5))
			if laplaceBound*LaplaceDensity(y)*u <= NormalDensity(y) {
				out[i] = y
				break
			}
		}
	}
	return out
}

// NormalDensity is the standard normal probability density.
func NormalDensity(y float64) float64 {
	return math.Exp(-(y*y)/2) / sqrt2Pi
}

// LaplaceDensity is the density of the Laplace distribution with location 0
// and scale 1.
func LaplaceDensity(y float64) float64 {
	return 0.5 * math.Exp(-math.Abs(y))
}

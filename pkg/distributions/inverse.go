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

// InverseCDF maps one uniform u per sample through the standard normal
// quantile function, sqrt(2) * erfinv(2u-1).
type InverseCDF struct{}

func (InverseCDF) Name() string {
	return InverseCDFName
}

func (InverseCDF) Generate(src rand.Source, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = math.Sqrt2 * math.Erfinv(2*random.Uniform(src)-1)
	}
	return out
}

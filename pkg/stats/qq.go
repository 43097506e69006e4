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

package stats

import (
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// QQPoint is one coordinate of a quantile-quantile diagnostic.
type QQPoint struct {
	// Rank is i/n for the i-th smallest transformed value.
	Rank float64
	// Value is the fitted normal CDF of a sample.
	Value float64
}

// QQTransform fits N(mean, std) to seq, maps every sample through the fitted
// CDF, sorts the mapped values ascending and pairs the i-th with i/n.
// For a good fit the points lie close to the diagonal.
//
// The CDF is applied before sorting. A sequence with zero deviation maps
// every sample to 0.5.
func QQTransform(seq []float64) ([]QQPoint, error) {
	summary, err := Summarize(seq)
	if err != nil {
		return nil, err
	}

	cdf := FittedCDF(summary)

	values := make([]float64, len(seq))
	for i, v := range seq {
		values[i] = cdf(v)
	}
	slices.Sort(values)

	n := float64(len(values))
	out := make([]QQPoint, len(values))
	for i, v := range values {
		out[i] = QQPoint{Rank: float64(i) / n, Value: v}
	}

	return out, nil
}

// FittedCDF returns the normal CDF parameterized by s.
func FittedCDF(s Summary) func(float64) float64 {
	if s.StdDev == 0 {
		return func(float64) float64 { return 0.5 }
	}

	return distuv.Normal{Mu: s.Mean, Sigma: s.StdDev}.CDF
}

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
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const DefaultChiSquareBins = 100

// Quality groups goodness-of-fit diagnostics against the standard normal.
type Quality struct {
	// KS is the Kolmogorov-Smirnov distance to N(0, 1).
	KS float64 `json:"ks"`
	// ChiSquare is Pearson's statistic over equiprobable N(0, 1) bins.
	ChiSquare float64 `json:"chi_square"`
	// SerialCorrelation is the lag-1 Pearson correlation, left at zero for
	// a single sample.
	SerialCorrelation float64 `json:"serial_correlation"`
}

func Assess(seq []float64, bins int) (Quality, error) {
	ks, err := KolmogorovSmirnov(seq)
	if err != nil {
		return Quality{}, err
	}

	chi, err := ChiSquare(seq, bins)
	if err != nil {
		return Quality{}, err
	}

	q := Quality{KS: ks, ChiSquare: chi}
	if len(seq) > 1 {
		if q.SerialCorrelation, err = SerialCorrelation(seq); err != nil {
			return Quality{}, err
		}
	}

	return q, nil
}

// KolmogorovSmirnov returns sup |F_n(x) - Phi(x)|, the largest distance
// between the empirical CDF of seq and the standard normal CDF.
func KolmogorovSmirnov(seq []float64) (float64, error) {
	if len(seq) == 0 {
		return 0, ErrEmptySequence
	}

	sorted := slices.Clone(seq)
	slices.Sort(sorted)

	n := float64(len(sorted))
	d := 0.0
	for i, v := range sorted {
		f := distuv.UnitNormal.CDF(v)
		d = max(d, f-float64(i)/n, float64(i+1)/n-f)
	}

	return d, nil
}

// ChiSquare bins seq into intervals of equal N(0, 1) probability and returns
// Pearson's chi-square statistic. It has bins-1 degrees of freedom.
func ChiSquare(seq []float64, bins int) (float64, error) {
	if len(seq) == 0 {
		return 0, ErrEmptySequence
	}
	if bins < 2 {
		return 0, errors.Errorf("chi-square needs at least 2 bins, got %d", bins)
	}

	edges := make([]float64, bins-1)
	for i := range edges {
		edges[i] = distuv.UnitNormal.Quantile(float64(i+1) / float64(bins))
	}

	observed := make([]float64, bins)
	for _, v := range seq {
		observed[sort.SearchFloat64s(edges, v)]++
	}

	expected := make([]float64, bins)
	for i := range expected {
		expected[i] = float64(len(seq)) / float64(bins)
	}

	return stat.ChiSquare(observed, expected), nil
}

// SerialCorrelation is the Pearson correlation between seq[i] and seq[i+1].
// Values far from zero point at structure left by the source or the method.
func SerialCorrelation(seq []float64) (float64, error) {
	if len(seq) == 0 {
		return 0, ErrEmptySequence
	}
	if len(seq) < 2 {
		return 0, errors.New("serial correlation needs at least 2 samples")
	}

	return stat.Correlation(seq[:len(seq)-1], seq[1:], nil), nil
}

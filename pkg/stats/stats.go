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

// Package stats computes the summary statistics and diagnostics used to
// judge a sample sequence against the standard normal distribution.
package stats

import (
	"math"

	"github.com/pkg/errors"
)

// ErrEmptySequence is returned by every function of the package that is
// given a zero-length sequence. Statistics of nothing are undefined.
var ErrEmptySequence = errors.New("empty sample sequence")

type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes the mean and the population standard deviation
// (divisor n) in a single pass using Welford's recurrence. A constant
// sequence has a deviation of exactly zero.
func Summarize(seq []float64) (Summary, error) {
	if len(seq) == 0 {
		return Summary{}, ErrEmptySequence
	}

	var mean, m2 float64
	for i, v := range seq {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}

	return Summary{
		Count:  len(seq),
		Mean:   mean,
		StdDev: math.Sqrt(m2 / float64(len(seq))),
	}, nil
}

func Mean(seq []float64) (float64, error) {
	s, err := Summarize(seq)
	if err != nil {
		return 0, err
	}
	return s.Mean, nil
}

// StdDeviation is the population standard deviation of seq.
func StdDeviation(seq []float64) (float64, error) {
	s, err := Summarize(seq)
	if err != nil {
		return 0, err
	}
	return s.StdDev, nil
}

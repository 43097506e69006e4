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
	mstats "github.com/montanaflynn/stats"
)

// Description holds order statistics of a sequence.
type Description struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

func (d Description) IQR() float64 {
	return d.Q3 - d.Q1
}

func Describe(seq []float64) (Description, error) {
	if len(seq) == 0 {
		return Description{}, ErrEmptySequence
	}

	if len(seq) == 1 {
		v := seq[0]
		return Description{Min: v, Q1: v, Median: v, Q3: v, Max: v}, nil
	}

	data := mstats.Float64Data(seq)

	lo, err := mstats.Min(data)
	if err != nil {
		return Description{}, err
	}

	hi, err := mstats.Max(data)
	if err != nil {
		return Description{}, err
	}

	q, err := mstats.Quartile(data)
	if err != nil {
		return Description{}, err
	}

	return Description{Min: lo, Q1: q.Q1, Median: q.Q2, Q3: q.Q3, Max: hi}, nil
}

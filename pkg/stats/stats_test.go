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

package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/scylladb/gaussbench/pkg/distributions"
	"github.com/scylladb/gaussbench/pkg/random"
	"github.com/scylladb/gaussbench/pkg/stats"
)

func normalSamples(tb testing.TB, seed uint64, n int) []float64 {
	tb.Helper()
	return distributions.BoxMuller{}.Generate(random.NewXoshiro(seed), n)
}

func TestEmptySequence(t *testing.T) {
	t.Parallel()

	for _, seq := range [][]float64{nil, {}} {
		_, err := stats.Mean(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.StdDeviation(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.Summarize(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.QQTransform(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.Describe(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.KolmogorovSmirnov(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.ChiSquare(seq, stats.DefaultChiSquareBins)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.SerialCorrelation(seq)
		require.ErrorIs(t, err, stats.ErrEmptySequence)

		_, err = stats.Assess(seq, stats.DefaultChiSquareBins)
		require.ErrorIs(t, err, stats.ErrEmptySequence)
	}
}

func TestSummarizeKnownValues(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	s, err := stats.Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.NoError(err)
	assert.Equal(8, s.Count)
	assert.InDelta(5.0, s.Mean, 1e-12)
	assert.InDelta(2.0, s.StdDev, 1e-12)

	s, err = stats.Summarize([]float64{-1.5})
	assert.NoError(err)
	assert.Equal(-1.5, s.Mean)
	assert.Zero(s.StdDev)
}

func TestConstantSequenceHasZeroDeviation(t *testing.T) {
	t.Parallel()

	for _, c := range []float64{0, 1, -3.7, 0.1, 1e12, math.SmallestNonzeroFloat64} {
		seq := make([]float64, 10_000)
		for i := range seq {
			seq[i] = c
		}

		std, err := stats.StdDeviation(seq)
		require.NoError(t, err)
		require.Equal(t, 0.0, std, "constant %v", c)

		mean, err := stats.Mean(seq)
		require.NoError(t, err)
		require.Equal(t, c, mean)
	}
}

func TestStdDeviationNonNegative(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		seq := normalSamples(t, seed, 1+int(seed)*37)
		std, err := stats.StdDeviation(seq)
		require.NoError(t, err)
		require.GreaterOrEqual(t, std, 0.0)
		require.False(t, math.IsNaN(std))
	}
}

func TestSummarizeMatchesGonum(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	seq := normalSamples(t, 555, 100_000)
	s, err := stats.Summarize(seq)
	assert.NoError(err)

	mean, std := stat.PopMeanStdDev(seq, nil)
	assert.InDelta(mean, s.Mean, 1e-9)
	assert.InDelta(std, s.StdDev, 1e-9)
}

func TestQQTransformRanks(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	seq := normalSamples(t, 7, 1001)
	points, err := stats.QQTransform(seq)
	assert.NoError(err)
	assert.Len(points, len(seq))

	n := float64(len(seq))
	for i, p := range points {
		assert.Equal(float64(i)/n, p.Rank)
		assert.GreaterOrEqual(p.Value, 0.0)
		assert.LessOrEqual(p.Value, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(p.Value, points[i-1].Value)
		}
	}
}

func TestQQTransformSmallSequence(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	points, err := stats.QQTransform([]float64{3, 1, 2})
	assert.NoError(err)
	assert.Len(points, 3)

	assert.Equal(0.0, points[0].Rank)
	assert.Equal(1.0/3, points[1].Rank)
	assert.Equal(2.0/3, points[2].Rank)

	assert.Less(points[0].Value, 0.5)
	assert.InDelta(0.5, points[1].Value, 1e-15)
	assert.Greater(points[2].Value, 0.5)
	assert.InDelta(1, points[0].Value+points[2].Value, 1e-12)
}

func TestQQTransformConstant(t *testing.T) {
	t.Parallel()

	points, err := stats.QQTransform([]float64{4, 4, 4, 4})
	require.NoError(t, err)
	for i, p := range points {
		require.Equal(t, float64(i)/4, p.Rank)
		require.Equal(t, 0.5, p.Value)
	}
}

func TestQQTransformNormalFit(t *testing.T) {
	t.Parallel()

	points, err := stats.QQTransform(normalSamples(t, 42, 50_000))
	require.NoError(t, err)

	worst := 0.0
	for _, p := range points {
		worst = max(worst, math.Abs(p.Value-p.Rank))
	}
	require.Less(t, worst, 0.02)
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	d, err := stats.Describe([]float64{9, 1, 8, 2, 7, 3, 6, 4, 5})
	assert.NoError(err)
	assert.Equal(stats.Description{Min: 1, Q1: 2.5, Median: 5, Q3: 7.5, Max: 9}, d)
	assert.Equal(5.0, d.IQR())

	d, err = stats.Describe([]float64{0.25})
	assert.NoError(err)
	assert.Equal(stats.Description{Min: 0.25, Q1: 0.25, Median: 0.25, Q3: 0.25, Max: 0.25}, d)
}

func TestDescribeNormalQuartiles(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	d, err := stats.Describe(normalSamples(t, 555, 200_000))
	assert.NoError(err)
	// N(0, 1) quartiles are at about ±0.6745.
	assert.InDelta(-0.6745, d.Q1, 0.02)
	assert.InDelta(0, d.Median, 0.02)
	assert.InDelta(0.6745, d.Q3, 0.02)
	assert.Less(d.Min, -3.0)
	assert.Greater(d.Max, 3.0)
}

func TestKolmogorovSmirnov(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	d, err := stats.KolmogorovSmirnov([]float64{0})
	assert.NoError(err)
	assert.InDelta(0.5, d, 1e-15)

	d, err = stats.KolmogorovSmirnov(normalSamples(t, 1, 100_000))
	assert.NoError(err)
	// Critical value at alpha=0.001 is 1.95/sqrt(n).
	assert.Less(d, 1.95/math.Sqrt(100_000))

	shifted := normalSamples(t, 1, 10_000)
	for i := range shifted {
		shifted[i] += 1
	}
	d, err = stats.KolmogorovSmirnov(shifted)
	assert.NoError(err)
	assert.Greater(d, 0.3)
}

func TestChiSquare(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	_, err := stats.ChiSquare([]float64{1}, 1)
	assert.Error(err)

	// One sample per equiprobable bin gives a perfect fit.
	chi, err := stats.ChiSquare([]float64{-1, 1}, 2)
	assert.NoError(err)
	assert.Zero(chi)

	chi, err = stats.ChiSquare([]float64{1, 1}, 2)
	assert.NoError(err)
	assert.InDelta(2.0, chi, 1e-12)

	// 99 degrees of freedom: mean 99, std about 14.
	chi, err = stats.ChiSquare(normalSamples(t, 3, 200_000), stats.DefaultChiSquareBins)
	assert.NoError(err)
	assert.Less(chi, 99+6*14.0)
}

func TestSerialCorrelation(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	_, err := stats.SerialCorrelation([]float64{1})
	assert.Error(err)

	r, err := stats.SerialCorrelation([]float64{1, 2, 3, 4, 5})
	assert.NoError(err)
	assert.InDelta(1.0, r, 1e-12)

	r, err = stats.SerialCorrelation([]float64{1, -1, 1, -1, 1, -1})
	assert.NoError(err)
	assert.InDelta(-1.0, r, 1e-12)

	r, err = stats.SerialCorrelation(normalSamples(t, 9, 100_000))
	assert.NoError(err)
	assert.Less(math.Abs(r), 0.02)
}

func TestAssess(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	q, err := stats.Assess([]float64{0.5}, 10)
	assert.NoError(err)
	assert.Zero(q.SerialCorrelation)

	q, err = stats.Assess(normalSamples(t, 555, 50_000), stats.DefaultChiSquareBins)
	assert.NoError(err)
	assert.Less(q.KS, 0.02)
	assert.Less(math.Abs(q.SerialCorrelation), 0.03)
	assert.Positive(q.ChiSquare)
}

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

// Package report prints harness results for humans and for log pipelines.
package report

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/scylladb/gaussbench/pkg/harness"
)

// Console writes one aligned block per method as soon as it finishes.
type Console struct {
	w  io.Writer
	mu sync.Mutex
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Report(res harness.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tw := new(tabwriter.Writer)
	tw.Init(c.w, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\n", res.Name)
	_, _ = fmt.Fprintf(tw, "  Mean:\t%.6f\n", res.Summary.Mean)
	_, _ = fmt.Fprintf(tw, "  Std deviation:\t%.6f\n", res.Summary.StdDev)
	_, _ = fmt.Fprintf(tw, "  Duration:\t%s\n", res.Duration)
	_, _ = fmt.Fprintf(tw, "  Per sample:\t%s\n", res.PerSample())
	_, _ = fmt.Fprintf(tw, "  Draws per sample:\t%.3f\n", res.DrawsPerSample())
	_, _ = fmt.Fprintf(tw, "  Min / Max:\t%.4f / %.4f\n", res.Description.Min, res.Description.Max)
	_, _ = fmt.Fprintf(tw, "  Quartiles:\t%.4f / %.4f / %.4f\n",
		res.Description.Q1, res.Description.Median, res.Description.Q3)
	_, _ = fmt.Fprintf(tw, "  KS distance:\t%.6f\n", res.Quality.KS)
	_, _ = fmt.Fprintf(tw, "  Chi-square:\t%.2f\n", res.Quality.ChiSquare)
	_, _ = fmt.Fprintf(tw, "  Serial correlation:\t%.6f\n", res.Quality.SerialCorrelation)
	_, _ = fmt.Fprintf(tw, "  Digest:\t%016x\n", res.Digest)

	return errors.Wrap(tw.Flush(), "failed to write report")
}

// Table prints every result as one row of a right aligned table.
func Table(w io.Writer, results []harness.Result) error {
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "Method\tMean\tStd dev\tDuration\tPer sample\tDraws/sample\tKS\t")
	for _, res := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%s\t%s\t%.3f\t%.6f\t\n",
			res.Name,
			res.Summary.Mean,
			res.Summary.StdDev,
			res.Duration,
			res.PerSample(),
			res.DrawsPerSample(),
			res.Quality.KS,
		)
	}

	return errors.Wrap(tw.Flush(), "failed to write results table")
}

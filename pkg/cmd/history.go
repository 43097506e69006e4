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

package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scylladb/gaussbench/pkg/benchmarks"
)

var (
	historyMethods []string
	historyLimit   int
)

var (
	errDeterminismLost = errors.New("same seed and sample count produced different sequences")
	errRegressions     = errors.New("performance regressions detected")
)

func History() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <file>",
		Short: "List recorded runs and compare the last two",
		Long: `Read a history file written with --history, list the recorded runs and
compare the last run with the one before it. Exits non-zero when a method
regressed beyond --regression-threshold or when two runs with the same seed
and sample count produced different sequences.`,
		Args: cobra.ExactArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().StringSliceVarP(&historyMethods, "methods", "m", []string{}, "Only compare these methods")
	cmd.Flags().IntVarP(&historyLimit, "limit", "", 20, "Number of most recent runs to list, 0 lists all")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	history, err := benchmarks.LoadHistory(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(history.Runs) == 0 {
		_, _ = fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	printRuns(out, history.Runs, historyLimit)

	previous, ok := history.Previous().Get()
	if !ok {
		_, _ = fmt.Fprintln(out, "\nNot enough history for comparison (need at least 2 runs)")
		return nil
	}
	last := history.Last().MustGet()

	comparisons := benchmarks.CompareRuns(&previous, &last, regressionThreshold)

	if len(historyMethods) > 0 {
		names, err := resolveMethods(historyMethods)
		if err != nil {
			return err
		}
		comparisons = slices.DeleteFunc(comparisons, func(c benchmarks.Comparison) bool {
			return !slices.Contains(names, c.Name)
		})
	}

	benchmarks.PrintComparison(out, comparisons)

	switch {
	case benchmarks.HasDigestMismatch(comparisons):
		return errDeterminismLost
	case benchmarks.HasRegressions(comparisons):
		return errRegressions
	default:
		return nil
	}
}

func printRuns(w io.Writer, runs []benchmarks.Run, limit int) {
	first := 0
	if limit > 0 && len(runs) > limit {
		first = len(runs) - limit
	}

	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tTimestamp\tSeed\tSamples\tMethods\tVersion\tCPU\tNotes")
	for i := first; i < len(runs); i++ {
		r := runs[i]
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			i,
			r.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			r.Seed,
			r.Samples,
			len(r.Results),
			r.Version,
			r.CPU,
			r.Notes,
		)
	}
	_ = tw.Flush()
}

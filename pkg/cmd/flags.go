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
	"github.com/spf13/cobra"

	"github.com/scylladb/gaussbench/pkg/distributions"
	"github.com/scylladb/gaussbench/pkg/harness"
	"github.com/scylladb/gaussbench/pkg/plot"
	"github.com/scylladb/gaussbench/pkg/stats"
)

var (
	samples             int
	seed                string
	cltTerms            int
	scale               float64
	level               string
	logFile             string
	outDir              string
	noPlots             bool
	methods             []string
	scatterPoints       int
	histogramBins       int
	chiSquareBins       int
	failFast            bool
	historyFile         string
	historyCompression  string
	historyNotes        string
	regressionThreshold float64
	metricsBind         string
	versionFlag         bool
)

//nolint:lll
func setupFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&versionFlag, "version", "", false, "Print version information")
	cmd.PersistentFlags().
		BoolP("version-json", "", false, "Print version information in JSON format")
	cmd.PersistentFlags().
		StringVarP(&level, "level", "", "info", "Specify the logging level, debug|info|warn|error|dpanic|panic|fatal")
	cmd.PersistentFlags().
		Float64VarP(&regressionThreshold, "regression-threshold", "", 10.0, "Slowdown in percent after which a method counts as regressed")
	cmd.Flags().
		IntVarP(&samples, "samples", "n", harness.DefaultSamples, "Number of samples every method generates")
	cmd.Flags().
		StringVarP(&seed, "seed", "s", "555", "Bit stream seed value, or 'random'")
	cmd.Flags().
		IntVarP(&cltTerms, "clt-terms", "", distributions.DefaultCLTTerms, "Number of uniforms summed per Central-Limit sample")
	cmd.Flags().
		Float64VarP(&scale, "scale", "", harness.DefaultScale, "Display scale applied to histogram bar heights")
	cmd.Flags().
		StringVarP(&logFile, "log-file", "", "", "Also write logs to the given file")
	cmd.Flags().
		StringVarP(&outDir, "outdir", "o", "plots", "Directory plot artifacts are written to")
	cmd.Flags().
		BoolVarP(&noPlots, "no-plots", "", false, "Skip rendering plot artifacts")
	cmd.Flags().
		StringSliceVarP(&methods, "methods", "m", []string{}, "Comma separated subset of methods to run, all by default")
	cmd.Flags().
		IntVarP(&scatterPoints, "scatter-points", "", plot.DefaultScatterPoints, "Number of leading samples drawn on the scatter plot")
	cmd.Flags().
		IntVarP(&histogramBins, "histogram-bins", "", plot.DefaultHistogramBins, "Number of histogram bins")
	cmd.Flags().
		IntVarP(&chiSquareBins, "chi-square-bins", "", stats.DefaultChiSquareBins, "Number of equiprobable bins of the chi-square statistic")
	cmd.Flags().
		BoolVarP(&failFast, "fail-fast", "f", false, "Stop on the first failure")
	cmd.Flags().
		StringVarP(&historyFile, "history", "", "", "Append the run to this history file and compare it with the previous run")
	cmd.Flags().
		StringVarP(&historyCompression, "history-compression", "", "none", "Compression of the history file, none|gzip|zstd")
	cmd.Flags().
		StringVarP(&historyNotes, "notes", "", "", "Optional notes stored with the run in the history file")
	cmd.Flags().
		StringVarP(&metricsBind, "bind", "b", "", "Interface and port to serve prometheus metrics on, for example ':2112'. Disabled when empty")
}

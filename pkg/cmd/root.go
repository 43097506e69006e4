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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scylladb/gaussbench/pkg/benchmarks"
	"github.com/scylladb/gaussbench/pkg/distributions"
	"github.com/scylladb/gaussbench/pkg/harness"
	"github.com/scylladb/gaussbench/pkg/metrics"
	"github.com/scylladb/gaussbench/pkg/plot"
	"github.com/scylladb/gaussbench/pkg/random"
	"github.com/scylladb/gaussbench/pkg/report"
	"github.com/scylladb/gaussbench/pkg/stop"
	"github.com/scylladb/gaussbench/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:               "gaussbench",
	Short:             "Gaussbench benchmarks algorithms drawing standard normal variates.",
	RunE:              run,
	PersistentPreRunE: preRun,
	SilenceUsage:      true,
}

func init() {
	setupFlags(rootCmd)

	rootCmd.AddCommand(History())
}

func preRun(cmd *cobra.Command, _ []string) error {
	if metricsBind == "" {
		return nil
	}

	_, err := metrics.StartMetricsServer(cmd.Context(), metricsBind, nil)
	return err
}

func checkVersion(cmd *cobra.Command) (bool, error) {
	versionJSON, err := cmd.PersistentFlags().GetBool("version-json")
	if err != nil {
		return false, err
	}

	if !versionFlag && !versionJSON {
		return false, nil
	}

	versionInfo := NewVersionInfo()
	cmd.Version = versionInfo.String()

	if versionJSON {
		data, err := json.Marshal(versionInfo)
		if err != nil {
			return false, err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return true, nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionInfo.String())

	return true, nil
}

func createConfig(intSeed uint64) harness.Config {
	cfg := harness.DefaultConfig()
	cfg.Samples = samples
	cfg.Seed = intSeed
	cfg.Scale = scale
	cfg.ChiSquareBins = chiSquareBins
	cfg.FailFast = failFast
	cfg.Generator.CLTTerms = cltTerms

	for _, m := range methods {
		if m = strings.TrimSpace(m); m != "" {
			cfg.Methods = append(cfg.Methods, m)
		}
	}

	return cfg
}

func createPlotter(logger *zap.Logger) (harness.Plotter, error) {
	if noPlots {
		return plot.Nop{}, nil
	}

	cfg := plot.DefaultConfig()
	cfg.OutDir = outDir
	cfg.ScatterPoints = scatterPoints
	cfg.HistogramBins = histogramBins

	return plot.New(cfg, logger)
}

func run(cmd *cobra.Command, _ []string) error {
	shouldAbort, err := checkVersion(cmd)
	if err != nil {
		return err
	}

	if shouldAbort {
		return nil
	}

	logger := createLogger(level, logFile, cmd.ErrOrStderr())
	defer utils.IgnoreError(logger.Sync)

	if err = random.ValidateSeed(seed); err != nil {
		return errors.Wrapf(err, "failed to parse --seed argument")
	}

	compression, err := benchmarks.ParseCompression(historyCompression)
	if err != nil {
		return errors.Wrapf(err, "failed to parse --history-compression argument")
	}

	intSeed, err := random.SeedFromString(seed)
	if err != nil {
		return err
	}

	cfg := createConfig(intSeed)
	if err = cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	plotter, err := createPlotter(logger.Named("plot"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	h, err := harness.New(
		cfg,
		plotter,
		report.NewConsole(out),
		logger.Named("harness"),
		harness.WithReporters(report.NewLog(logger.Named("report"))),
	)
	if err != nil {
		return err
	}

	printSetup(out, cfg, h.Methods())

	ctx, cancel := stop.NotifyContext(cmd.Context(), logger)
	defer cancel()

	results, runErr := h.Run(ctx, random.NewXoshiro(intSeed))
	if runErr != nil {
		logger.Error("benchmark run finished with errors", zap.Error(runErr), zap.Uint64("seed", intSeed))
	}

	if len(results) > 0 {
		_, _ = fmt.Fprintln(out)
		if err = report.Table(out, results); err != nil {
			runErr = multierr.Append(runErr, err)
		}
	}

	if historyFile != "" && len(results) > 0 {
		if err = recordHistory(out, logger.Named("history"), cfg, results, compression); err != nil {
			runErr = multierr.Append(runErr, &harness.CollaboratorError{
				Method:       "*",
				Collaborator: harness.CollaboratorHistory,
				Err:          err,
			})
		}
	}

	return runErr
}

func recordHistory(
	out io.Writer,
	logger *zap.Logger,
	cfg harness.Config,
	results []harness.Result,
	compression benchmarks.Compression,
) error {
	history, err := benchmarks.LoadHistory(historyFile)
	if err != nil {
		return err
	}

	current := benchmarks.NewRun(cfg, version, results)
	current.Notes = historyNotes

	previous := history.Last()

	if err = current.Save(historyFile, compression); err != nil {
		return err
	}

	logger.Info("run recorded",
		zap.String("file", historyFile),
		zap.Int("runs", len(history.Runs)+1),
		zap.Stringer("compression", compression),
	)

	if prev, ok := previous.Get(); ok {
		comparisons := benchmarks.CompareRuns(&prev, &current, regressionThreshold)
		benchmarks.PrintComparison(out, comparisons)

		if benchmarks.HasDigestMismatch(comparisons) {
			logger.Warn("same seed and sample count produced different sequences",
				zap.Uint64("seed", cfg.Seed),
				zap.Int("samples", cfg.Samples),
			)
		}
		if benchmarks.HasRegressions(comparisons) {
			logger.Warn("performance regressions detected", zap.Float64("threshold", regressionThreshold))
		}
	}

	return nil
}

func createLogger(level, file string, console io.Writer) *zap.Logger {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderCfg.EncodeCaller = nil

	syncers := []zapcore.WriteSyncer{zapcore.Lock(zapcore.AddSync(console))}

	if file != "" {
		w, err := utils.CreateFile(file, true, nil)
		if err != nil {
			log.Fatalf("failed to create log file: %v", err)
		}
		syncers = append(syncers, zapcore.Lock(zapcore.AddSync(w)))
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		lvl,
	))
}

func printSetup(w io.Writer, cfg harness.Config, names []string) {
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 8, 2, '\t', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "Seed:\t%d\n", cfg.Seed)
	_, _ = fmt.Fprintf(tw, "Samples:\t%d\n", cfg.Samples)
	_, _ = fmt.Fprintf(tw, "Central-Limit terms:\t%d\n", cfg.Generator.CLTTerms)
	_, _ = fmt.Fprintf(tw, "Display scale:\t%v\n", cfg.Scale)
	_, _ = fmt.Fprintf(tw, "Methods:\t%s\n", strings.Join(names, ", "))
	if noPlots {
		_, _ = fmt.Fprintf(tw, "Plots:\t%s\n", "<disabled>")
	} else {
		_, _ = fmt.Fprintf(tw, "Plots:\t%s\n", outDir)
	}
	if historyFile != "" {
		_, _ = fmt.Fprintf(tw, "History:\t%s\n", historyFile)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
}

// resolveMethods is used by the history command to accept the same method
// names as the root command.
func resolveMethods(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		g, err := distributions.New(name, distributions.DefaultOptions())
		if err != nil {
			return nil, err
		}
		out = append(out, g.Name())
	}
	return out, nil
}

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

// Package harness runs every configured generator once against a shared
// bit stream, measures it and hands its output to the plotting and
// reporting collaborators.
package harness

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scylladb/gaussbench/pkg/distributions"
	"github.com/scylladb/gaussbench/pkg/metrics"
	"github.com/scylladb/gaussbench/pkg/random"
	"github.com/scylladb/gaussbench/pkg/stats"
)

type (
	Plotter interface {
		Plot(ctx context.Context, samples []float64, scale float64, name string) error
	}

	Reporter interface {
		Report(Result) error
	}

	Option func(*Harness)

	Harness struct {
		plotter    Plotter
		logger     *zap.Logger
		reporters  []Reporter
		generators []distributions.Generator
		cfg        Config
	}
)

type Result struct {
	Name        string            `json:"name"`
	Summary     stats.Summary     `json:"summary"`
	Description stats.Description `json:"description"`
	Quality     stats.Quality     `json:"quality"`
	Samples     int               `json:"samples"`
	Duration    time.Duration     `json:"duration"`
	Draws       uint64            `json:"draws"`
	Digest      uint64            `json:"digest"`
}

func (r Result) PerSample() time.Duration {
	if r.Samples == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Samples)
}

func (r Result) DrawsPerSample() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Draws) / float64(r.Samples)
}

// WithReporters adds reporters called after the primary one.
func WithReporters(reporters ...Reporter) Option {
	return func(h *Harness) {
		for _, r := range reporters {
			if r != nil {
				h.reporters = append(h.reporters, r)
			}
		}
	}
}

func New(cfg Config, plotter Plotter, reporter Reporter, logger *zap.Logger, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	generators, err := cfg.Generators()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Harness{
		cfg:        cfg,
		plotter:    plotter,
		logger:     logger,
		generators: generators,
	}

	if reporter != nil {
		h.reporters = append(h.reporters, reporter)
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

func (h *Harness) Methods() []string {
	names := make([]string, 0, len(h.generators))
	for _, g := range h.generators {
		names = append(names, g.Name())
	}
	return names
}

// Run executes the configured generators in canonical order, all of them
// pulling from src. src is only ever advanced, so a method whose
// collaborators fail leaves the stream exactly where the next method
// expects it. Results of every method that generated a sequence are
// returned alongside the combined error.
func (h *Harness) Run(ctx context.Context, src rand.Source) ([]Result, error) {
	results := make([]Result, 0, len(h.generators))

	var errs error
	for _, gen := range h.generators {
		if err := ctx.Err(); err != nil {
			return results, multierr.Append(errs, err)
		}

		res, err := h.runMethod(ctx, gen, src)
		results = append(results, res)

		if err != nil {
			errs = multierr.Append(errs, err)
			if h.cfg.FailFast {
				h.logger.Warn("stopping after first failure", zap.String("method", gen.Name()))
				return results, errs
			}
		}
	}

	return results, errs
}

func (h *Harness) runMethod(ctx context.Context, gen distributions.Generator, src rand.Source) (Result, error) {
	name := gen.Name()
	counting := random.NewCounting(src)

	start := time.Now()
	samples := gen.Generate(counting, h.cfg.Samples)
	took := time.Since(start)

	res := Result{
		Name:     name,
		Samples:  len(samples),
		Duration: took,
		Draws:    counting.Draws(),
		Digest:   Digest(samples),
	}
	metrics.ObserveGeneration(name, took, res.Samples, res.Draws)

	if err := h.analyse(samples, &res); err != nil {
		return res, h.fail(name, CollaboratorStats, err)
	}

	h.logger.Debug("method finished",
		zap.String("method", name),
		zap.Int("samples", res.Samples),
		zap.Float64("mean", res.Summary.Mean),
		zap.Float64("std_dev", res.Summary.StdDev),
		zap.Duration("duration", res.Duration),
		zap.Float64("draws_per_sample", res.DrawsPerSample()),
		zap.Uint64("digest", res.Digest),
	)

	var errs error
	if h.plotter != nil {
		err := metrics.ExecutionTimeWithError("plot", func() error {
			return h.plotter.Plot(ctx, samples, h.cfg.Scale, name)
		})
		if err != nil {
			errs = multierr.Append(errs, h.fail(name, CollaboratorPlotter, err))
		}
	}

	for _, r := range h.reporters {
		if err := r.Report(res); err != nil {
			errs = multierr.Append(errs, h.fail(name, CollaboratorReporter, err))
		}
	}

	return res, errs
}

func (h *Harness) analyse(samples []float64, res *Result) error {
	defer metrics.ExecutionTimeStart("analyse").Record()

	var err error

	if res.Summary, err = stats.Summarize(samples); err != nil {
		return err
	}
	if res.Description, err = stats.Describe(samples); err != nil {
		return err
	}
	if res.Quality, err = stats.Assess(samples, h.cfg.ChiSquareBins); err != nil {
		return err
	}

	metrics.ObserveMoments(res.Name, res.Summary.Mean, res.Summary.StdDev)

	return nil
}

func (h *Harness) fail(method, collaborator string, err error) error {
	metrics.ExecutionErrors.WithLabelValues(method, collaborator).Inc()
	h.logger.Error("collaborator failed",
		zap.String("method", method),
		zap.String("collaborator", collaborator),
		zap.Error(err),
	)

	return &CollaboratorError{Method: method, Collaborator: collaborator, Err: err}
}

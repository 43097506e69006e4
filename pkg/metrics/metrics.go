// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var registerer = prometheus.NewRegistry()

var (
	ExecutionTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "execution_time",
			Help:    "Time taken to execute a task in microseconds.",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 500000, 1e6, 2e6, 5e6, 1e7, 3e7, 6e7},
		},
		[]string{"task"},
	)

	GenerationTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_time_seconds",
			Help:    "Time taken by a method to fill a sample sequence.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
		[]string{"method"},
	)

	GeneratedSamples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generated_samples",
			Help: "Number of samples produced.",
		},
		[]string{"method"},
	)

	SourceDraws = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_draws",
			Help: "Number of 64-bit words pulled from the bit stream.",
		},
		[]string{"method"},
	)

	DrawsPerSample = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "draws_per_sample",
		},
		[]string{"method"},
	)

	SampleMoments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sample_moments",
			Help: "Mean and standard deviation of the last sequence.",
		},
		[]string{"method", "moment"},
	)

	ExecutionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "execution_errors",
		},
		[]string{"method", "collaborator"},
	)
)

func init() {
	r := prometheus.WrapRegistererWithPrefix("gaussbench_", registerer)

	r.MustRegister(
		ExecutionTime,
		GenerationTime,
		GeneratedSamples,
		SourceDraws,
		DrawsPerSample,
		SampleMoments,
		ExecutionErrors,
	)

	r.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			ReportErrors: true,
			PidFn: func() (int, error) {
				return os.Getpid(), nil
			},
		}),
		collectors.NewBuildInfoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "go_goroutines_count",
			Help: "Number of goroutines currently active.",
		}, func() float64 {
			return float64(runtime.NumGoroutine())
		}),
	)
}

// Registry exposes the registry every collector of the package lives in.
func Registry() *prometheus.Registry {
	return registerer
}

func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		registerer, promhttp.HandlerFor(registerer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Registry:          registerer,
			OfferedCompressions: []promhttp.Compression{
				promhttp.Zstd,
				promhttp.Gzip,
				promhttp.Identity,
			},
		}),
	)
}

// StartMetricsServer serves /metrics on bind until ctx is done. The
// listener is opened before returning so an unusable address is reported
// to the caller. It returns the address actually bound.
func StartMetricsServer(ctx context.Context, bind string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return "", errors.Wrapf(err, "failed to start metrics server on %s", bind)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      1 * time.Minute,
		Handler:           mux,
	}

	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(serveErr))
		}
	}()

	go func() {
		<-ctx.Done()
		if shutdownErr := server.Shutdown(context.Background()); shutdownErr != nil {
			logger.Warn("failed to shut down metrics server", zap.Error(shutdownErr))
		}
	}()

	return listener.Addr().String(), nil
}

type RunningTime struct {
	start    time.Time
	observer prometheus.Observer
	task     string
}

func ExecutionTimeStart(task string) RunningTime {
	return RunningTime{
		start:    time.Now(),
		task:     task,
		observer: ExecutionTime.WithLabelValues(task),
	}
}

func (r RunningTime) Record() {
	r.observer.Observe(float64(time.Since(r.start).Microseconds()))
}

func ExecutionTimeWithError(task string, callback func() error) error {
	start := time.Now()
	err := callback()
	ExecutionTime.
		WithLabelValues(task).
		Observe(float64(time.Since(start).Microseconds()))

	return err
}

// ObserveGeneration records one finished Generate call.
func ObserveGeneration(method string, took time.Duration, samples int, draws uint64) {
	GenerationTime.WithLabelValues(method).Observe(took.Seconds())
	GeneratedSamples.WithLabelValues(method).Add(float64(samples))
	SourceDraws.WithLabelValues(method).Add(float64(draws))

	if samples > 0 {
		DrawsPerSample.WithLabelValues(method).Set(float64(draws) / float64(samples))
	}
}

func ObserveMoments(method string, mean, stdDev float64) {
	SampleMoments.WithLabelValues(method, "mean").Set(mean)
	SampleMoments.WithLabelValues(method, "std_dev").Set(stdDev)
}

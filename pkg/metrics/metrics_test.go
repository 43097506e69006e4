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

package metrics_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/gaussbench/pkg/metrics"
)

func TestObserveGeneration(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	metrics.ObserveGeneration("test-observe", 250*time.Millisecond, 1000, 2546)
	metrics.ObserveGeneration("test-observe", 250*time.Millisecond, 1000, 2000)

	assert.Equal(2000.0, testutil.ToFloat64(metrics.GeneratedSamples.WithLabelValues("test-observe")))
	assert.Equal(4546.0, testutil.ToFloat64(metrics.SourceDraws.WithLabelValues("test-observe")))
	assert.Equal(2.0, testutil.ToFloat64(metrics.DrawsPerSample.WithLabelValues("test-observe")))
	assert.Equal(1, testutil.CollectAndCount(metrics.GenerationTime.WithLabelValues("test-observe").(prometheus.Histogram)))
}

func TestObserveGenerationWithoutSamples(t *testing.T) {
	t.Parallel()

	metrics.ObserveGeneration("test-empty", 0, 0, 0)
	require.Equal(t, 0.0, testutil.ToFloat64(metrics.DrawsPerSample.WithLabelValues("test-empty")))
}

func TestObserveMoments(t *testing.T) {
	t.Parallel()

	metrics.ObserveMoments("test-moments", -0.25, 1.5)
	require.Equal(t, -0.25, testutil.ToFloat64(metrics.SampleMoments.WithLabelValues("test-moments", "mean")))
	require.Equal(t, 1.5, testutil.ToFloat64(metrics.SampleMoments.WithLabelValues("test-moments", "std_dev")))
}

func TestExecutionTimeWithError(t *testing.T) {
	t.Parallel()

	err := metrics.ExecutionTimeWithError("test-task", func() error { return io.EOF })
	require.ErrorIs(t, err, io.EOF)

	metrics.ExecutionTimeStart("test-task").Record()
	require.Equal(t, 1, testutil.CollectAndCount(metrics.ExecutionTime.WithLabelValues("test-task").(prometheus.Histogram)))
}

func TestRegistryPrefix(t *testing.T) {
	t.Parallel()

	metrics.ObserveGeneration("test-prefix", time.Millisecond, 1, 1)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["gaussbench_generated_samples"])
	require.True(t, names["gaussbench_generation_time_seconds"])
}

func TestStartMetricsServer(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	metrics.ObserveGeneration("test-server", time.Millisecond, 10, 10)

	addr, err := metrics.StartMetricsServer(t.Context(), "127.0.0.1:0", nil)
	assert.NoError(err)

	resp, err := http.Get("http://" + addr + "/metrics")
	assert.NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	assert.NoError(err)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.True(strings.Contains(string(body), `gaussbench_generated_samples{method="test-server"} 10`))
}

func TestStartMetricsServerBadAddress(t *testing.T) {
	t.Parallel()

	_, err := metrics.StartMetricsServer(t.Context(), "256.0.0.1:-1", nil)
	require.Error(t, err)
}

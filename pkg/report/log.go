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

package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/scylladb/gaussbench/pkg/harness"
)

// Log emits each result as a single structured line.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (l *Log) Report(res harness.Result) error {
	l.logger.Info("result",
		zap.String("method", res.Name),
		zap.Int("samples", res.Samples),
		zap.Float64("mean", res.Summary.Mean),
		zap.Float64("std_dev", res.Summary.StdDev),
		zap.Duration("duration", res.Duration),
		zap.Duration("per_sample", res.PerSample()),
		zap.Float64("draws_per_sample", res.DrawsPerSample()),
		zap.Float64("median", res.Description.Median),
		zap.Float64("iqr", res.Description.IQR()),
		zap.Float64("ks", res.Quality.KS),
		zap.Float64("chi_square", res.Quality.ChiSquare),
		zap.Float64("serial_correlation", res.Quality.SerialCorrelation),
		zap.String("digest", fmt.Sprintf("%016x", res.Digest)),
	)

	return nil
}

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

// Package benchmarks keeps a history of benchmark runs and compares them.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/mo"
	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/scylladb/gaussbench/pkg/harness"
)

// MethodResult is the persisted form of one method of a run.
type MethodResult struct {
	Name           string        `json:"name"`
	Digest         string        `json:"digest"`
	Samples        int           `json:"samples"`
	Mean           float64       `json:"mean"`
	StdDev         float64       `json:"std_dev"`
	KS             float64       `json:"ks"`
	NsPerSample    float64       `json:"ns_per_sample"`
	DrawsPerSample float64       `json:"draws_per_sample"`
	Duration       time.Duration `json:"duration"`
}

// Run is a complete benchmark run with the metadata needed to decide
// whether two runs are comparable.
type Run struct {
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	GoVersion string         `json:"go_version"`
	OS        string         `json:"os"`
	Arch      string         `json:"arch"`
	CPU       string         `json:"cpu"`
	Notes     string         `json:"notes,omitempty"`
	Results   []MethodResult `json:"results"`
	Seed      uint64         `json:"seed"`
	Samples   int            `json:"samples"`
	CLTTerms  int            `json:"clt_terms"`
}

type History struct {
	Runs []Run `json:"runs"`
}

var cpuModel = func() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return "unknown"
	}
	return infos[0].ModelName
}

func NewRun(cfg harness.Config, version string, results []harness.Result) Run {
	run := Run{
		Timestamp: time.Now().UTC(),
		Version:   version,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPU:       cpuModel(),
		Seed:      cfg.Seed,
		Samples:   cfg.Samples,
		CLTTerms:  cfg.Generator.CLTTerms,
		Results:   make([]MethodResult, 0, len(results)),
	}

	for _, res := range results {
		run.Results = append(run.Results, MethodResult{
			Name:           res.Name,
			Digest:         fmt.Sprintf("%016x", res.Digest),
			Samples:        res.Samples,
			Mean:           res.Summary.Mean,
			StdDev:         res.Summary.StdDev,
			KS:             res.Quality.KS,
			NsPerSample:    float64(res.Duration.Nanoseconds()) / float64(max(res.Samples, 1)),
			DrawsPerSample: res.DrawsPerSample(),
			Duration:       res.Duration,
		})
	}

	return run
}

// Comparable reports whether two runs must have produced identical
// sequences.
func (r *Run) Comparable(other *Run) bool {
	return r.Seed == other.Seed && r.Samples == other.Samples && r.CLTTerms == other.CLTTerms
}

// Save appends the run to the history stored at path.
func (r *Run) Save(path string, compression Compression) error {
	history, err := LoadHistory(path)
	if err != nil {
		return err
	}

	history.Runs = append(history.Runs, *r)

	return history.Save(path, compression)
}

func (h *History) Last() mo.Option[Run] {
	if len(h.Runs) == 0 {
		return mo.None[Run]()
	}
	return mo.Some(h.Runs[len(h.Runs)-1])
}

// Previous is the run recorded before the last one.
func (h *History) Previous() mo.Option[Run] {
	if len(h.Runs) < 2 {
		return mo.None[Run]()
	}
	return mo.Some(h.Runs[len(h.Runs)-2])
}

// Save replaces the file at path. The new content is written next to it
// first so a failed write keeps the old history.
func (h *History) Save(path string, compression Compression) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create history directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create history file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	writer, err := compression.newWriter(tmp)
	if err != nil {
		return errors.Wrap(err, "failed to create history writer")
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(h); err != nil {
		return errors.Wrap(err, "failed to marshal history")
	}

	if err = writer.Close(); err != nil {
		return errors.Wrap(err, "failed to flush history")
	}

	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write history file")
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "failed to replace history file")
	}

	return nil
}

// LoadHistory reads the history at path whatever compression it was saved
// with. A missing or empty file is an empty history.
func LoadHistory(path string) (*History, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{Runs: []Run{}}, nil
		}
		return nil, errors.Wrap(err, "failed to read history file")
	}
	defer func() { _ = file.Close() }()

	reader, closeReader, err := newReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open history stream")
	}
	defer closeReader()

	history := &History{Runs: []Run{}}
	if err = json.NewDecoder(reader).Decode(history); err != nil {
		if errors.Is(err, io.EOF) {
			return history, nil
		}
		return nil, errors.Wrap(err, "failed to parse history")
	}

	return history, nil
}

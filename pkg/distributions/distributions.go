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

// Package distributions implements generators of standard normal variates.
//
// Every generator consumes a math/rand/v2 Source exclusively through its
// Uint64 method, normalized by random.Normalize. Generators hold no stream
// state of their own: two calls with identically positioned sources produce
// identical sequences, and the source is left positioned after the last draw.
package distributions

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

const (
	InverseCDFName   = "Inverse-CDF"
	CentralLimitName = "Central-Limit"
	BoxMullerName    = "Box-Muller"
	MarsagliaName    = "Marsaglia"
	LaplaceName      = "Laplace-Rejection"

	DefaultCLTTerms = 100
)

type Generator interface {
	Name() string
	// Generate returns exactly n samples, each slot written once.
	Generate(src rand.Source, n int) []float64
}

type Options struct {
	// CLTTerms is the number of uniforms summed per Central-Limit sample.
	CLTTerms int
}

func DefaultOptions() Options {
	return Options{CLTTerms: DefaultCLTTerms}
}

func (o Options) Validate() error {
	if o.CLTTerms < 1 {
		return errors.Errorf("central limit terms must be at least 1, got %d", o.CLTTerms)
	}
	return nil
}

// Names lists the generators in the order a benchmark run executes them.
// The order is part of the determinism contract of a run.
func Names() []string {
	return []string{InverseCDFName, CentralLimitName, BoxMullerName, MarsagliaName, LaplaceName}
}

func New(name string, opts Options) (Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch Slug(name) {
	case "inverse-cdf", "inverse":
		return InverseCDF{}, nil
	case "central-limit", "clt":
		return NewCentralLimit(opts.CLTTerms), nil
	case "box-muller", "boxmuller":
		return BoxMuller{}, nil
	case "marsaglia", "polar":
		return &Marsaglia{}, nil
	case "laplace-rejection", "laplace", "rejection":
		return Laplace{}, nil
	default:
		return nil, errors.Errorf("unsupported generator: %s", name)
	}
}

// All returns every generator in canonical order.
func All(opts Options) ([]Generator, error) {
	out := make([]Generator, 0, len(Names()))
	for _, name := range Names() {
		g, err := New(name, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Slug lower-cases name and replaces anything outside [a-z0-9] with '-'.
// It is used both for name lookup and for artifact file names.
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

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

package harness

import (
	"math"

	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"

	"github.com/scylladb/gaussbench/pkg/distributions"
	"github.com/scylladb/gaussbench/pkg/stats"
)

const (
	DefaultSamples = 1_000_000
	DefaultSeed    = 555
	DefaultScale   = 0.2
)

type Config struct {
	// Methods restricts the run to a subset of generators. Empty runs all
	// of them. The canonical order is kept whatever order names come in.
	Methods       []string
	Generator     distributions.Options
	Samples       int
	Seed          uint64
	Scale         float64
	ChiSquareBins int
	FailFast      bool
}

func DefaultConfig() Config {
	return Config{
		Samples:       DefaultSamples,
		Seed:          DefaultSeed,
		Scale:         DefaultScale,
		Generator:     distributions.DefaultOptions(),
		ChiSquareBins: stats.DefaultChiSquareBins,
	}
}

func (c Config) Validate() error {
	if c.Samples < 1 {
		return errors.Errorf("sample count must be positive, got %d", c.Samples)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return errors.Errorf("display scale must be a positive finite number, got %v", c.Scale)
	}
	if c.ChiSquareBins < 2 {
		return errors.Errorf("chi-square bins must be at least 2, got %d", c.ChiSquareBins)
	}
	if err := c.Generator.Validate(); err != nil {
		return err
	}

	_, err := c.Generators()
	return err
}

// Generators resolves Methods into generators in canonical order. Aliases
// and repeated names select a generator once.
func (c Config) Generators() ([]distributions.Generator, error) {
	all, err := distributions.All(c.Generator)
	if err != nil {
		return nil, err
	}

	if len(c.Methods) == 0 {
		return all, nil
	}

	selected := strset.New()
	for _, name := range c.Methods {
		g, err := distributions.New(name, c.Generator)
		if err != nil {
			return nil, err
		}
		selected.Add(g.Name())
	}

	out := make([]distributions.Generator, 0, selected.Size())
	for _, g := range all {
		if selected.Has(g.Name()) {
			out = append(out, g)
		}
	}

	return out, nil
}

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

package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RandomSeed is the seed flag value that asks for a freshly drawn seed.
const RandomSeed = "random"

type crandSource struct{}

func (c *crandSource) Uint64() uint64 {
	var out [8]byte
	_, _ = crand.Read(out[:])
	return binary.LittleEndian.Uint64(out[:])
}

type TimeSource struct {
	source rand.Source
}

func NewTimeSource() *TimeSource {
	now := time.Now()
	val := uint64(now.Nanosecond() * now.Second())

	return &TimeSource{
		source: rand.NewPCG(val, val),
	}
}

func (c *TimeSource) Uint64() uint64 {
	now := time.Now()
	val := c.source.Uint64()
	return bits.RotateLeft64(val^uint64(now.Nanosecond()*now.Second()), -int(val>>58))
}

// entropy returns the source used to pick seeds when none is given.
// It is never used to generate samples.
func entropy() rand.Source {
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return &crandSource{}
	}

	return NewTimeSource()
}

func ValidateSeed(seed string) error {
	if seed == RandomSeed {
		return nil
	}

	if _, err := strconv.ParseUint(seed, 10, 64); err != nil {
		return errors.Wrapf(err, "seed %q is neither %q nor an unsigned 64-bit integer", seed, RandomSeed)
	}

	return nil
}

// SeedFromString resolves a seed flag value. The caller is expected to log the
// returned seed so a "random" run can be reproduced.
func SeedFromString(seed string) (uint64, error) {
	if err := ValidateSeed(seed); err != nil {
		return 0, err
	}

	if seed == RandomSeed {
		return entropy().Uint64(), nil
	}

	val, _ := strconv.ParseUint(seed, 10, 64)
	return val, nil
}

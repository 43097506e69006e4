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

import "math/rand/v2"

// Counting forwards draws to Source and counts them.
type Counting struct {
	Source rand.Source
	draws  uint64
}

func NewCounting(src rand.Source) *Counting {
	return &Counting{Source: src}
}

func (c *Counting) Uint64() uint64 {
	c.draws++
	return c.Source.Uint64()
}

func (c *Counting) Draws() uint64 {
	return c.draws
}

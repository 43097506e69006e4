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
	"encoding/binary"
	"math"

	"github.com/twmb/murmur3"
)

const digestChunk = 512

// Digest hashes the IEEE-754 bits of samples in order. Two runs with the
// same seed, sample count and method must produce the same digest.
func Digest(samples []float64) uint64 {
	h := murmur3.New64()
	buf := make([]byte, 0, digestChunk*8)

	for i, v := range samples {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		if (i+1)%digestChunk == 0 {
			_, _ = h.Write(buf)
			buf = buf[:0]
		}
	}
	_, _ = h.Write(buf)

	return h.Sum64()
}

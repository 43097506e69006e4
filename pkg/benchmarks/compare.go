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

package benchmarks

import (
	"fmt"
	"io"
)

// Comparison is the difference of one method between two runs.
type Comparison struct {
	Name           string  `json:"name"`
	OldDigest      string  `json:"old_digest"`
	NewDigest      string  `json:"new_digest"`
	OldNsPerSample float64 `json:"old_ns_per_sample"`
	NewNsPerSample float64 `json:"new_ns_per_sample"`
	SpeedupPercent float64 `json:"speedup_percent"` // Positive means faster
	IsRegression   bool    `json:"is_regression"`
	// DigestMismatch is only set for comparable runs, where equal seeds
	// must yield equal sequences.
	DigestMismatch bool `json:"digest_mismatch"`
}

// CompareRuns compares the methods present in both runs. A method slower
// than regressionThreshold percent is a regression.
func CompareRuns(oldRun, newRun *Run, regressionThreshold float64) []Comparison {
	oldResults := make(map[string]MethodResult, len(oldRun.Results))
	for _, result := range oldRun.Results {
		oldResults[result.Name] = result
	}

	sameInput := oldRun.Comparable(newRun)
	comparisons := make([]Comparison, 0, len(newRun.Results))

	for _, newResult := range newRun.Results {
		oldResult, exists := oldResults[newResult.Name]
		if !exists {
			continue
		}

		comparison := Comparison{
			Name:           newResult.Name,
			OldDigest:      oldResult.Digest,
			NewDigest:      newResult.Digest,
			OldNsPerSample: oldResult.NsPerSample,
			NewNsPerSample: newResult.NsPerSample,
		}

		if oldResult.NsPerSample > 0 {
			comparison.SpeedupPercent = ((oldResult.NsPerSample - newResult.NsPerSample) / oldResult.NsPerSample) * 100
		}

		comparison.IsRegression = comparison.SpeedupPercent < -regressionThreshold
		comparison.DigestMismatch = sameInput && oldResult.Digest != newResult.Digest

		comparisons = append(comparisons, comparison)
	}

	return comparisons
}

func HasRegressions(comparisons []Comparison) bool {
	for _, comp := range comparisons {
		if comp.IsRegression {
			return true
		}
	}
	return false
}

func HasDigestMismatch(comparisons []Comparison) bool {
	for _, comp := range comparisons {
		if comp.DigestMismatch {
			return true
		}
	}
	return false
}

// PrintComparison writes a human-readable comparison report.
func PrintComparison(w io.Writer, comparisons []Comparison) {
	if len(comparisons) == 0 {
		_, _ = fmt.Fprintln(w, "No comparable methods found.")
		return
	}

	_, _ = fmt.Fprintln(w, "\n=== Run Comparison ===")

	for _, comp := range comparisons {
		_, _ = fmt.Fprintf(w, "Method: %s\n", comp.Name)
		_, _ = fmt.Fprintf(w, "  Speed:  %.2f ns/sample → %.2f ns/sample (%.2f%% %s)\n",
			comp.OldNsPerSample, comp.NewNsPerSample, abs(comp.SpeedupPercent), speedLabel(comp.SpeedupPercent))
		_, _ = fmt.Fprintf(w, "  Digest: %s → %s\n", comp.OldDigest, comp.NewDigest)

		if comp.IsRegression {
			_, _ = fmt.Fprintln(w, "  ⚠️  REGRESSION DETECTED")
		}
		if comp.DigestMismatch {
			_, _ = fmt.Fprintln(w, "  ⚠️  DIGEST MISMATCH: same seed produced a different sequence")
		}
		_, _ = fmt.Fprintln(w)
	}

	switch {
	case HasDigestMismatch(comparisons):
		_, _ = fmt.Fprintln(w, "⚠️  WARNING: Determinism lost!")
	case HasRegressions(comparisons):
		_, _ = fmt.Fprintln(w, "⚠️  WARNING: Performance regressions detected!")
	default:
		_, _ = fmt.Fprintln(w, "✓ No regressions detected")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func speedLabel(speedupPercent float64) string {
	if speedupPercent > 0 {
		return "faster"
	} else if speedupPercent < 0 {
		return "slower"
	}
	return "same"
}

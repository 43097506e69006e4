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
	"fmt"
)

const (
	CollaboratorPlotter  = "plotter"
	CollaboratorReporter = "reporter"
	CollaboratorHistory  = "history"
	CollaboratorStats    = "statistics"
)

// CollaboratorError reports a failure of something a method's output was
// handed to. The generated sequence itself is never the cause.
type CollaboratorError struct {
	Err          error
	Method       string
	Collaborator string
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Method, e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

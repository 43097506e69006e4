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

package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func IgnoreError(fn func() error) {
	_ = fn()
}

// CreateFile opens name for writing, creating parent directories. An empty
// name, "stdout" or "stderr" return the matching stream, or def for an
// empty name.
func CreateFile(name string, appendMode bool, def io.Writer) (io.Writer, error) {
	switch name {
	case "":
		return def, nil
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", name)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", name)
	}

	AddFinalizer(func() {
		_ = file.Sync()
		_ = file.Close()
	})

	return file, nil
}

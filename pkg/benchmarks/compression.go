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
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

type Compression int

const (
	NoCompression Compression = iota
	ZSTDCompression
	GZIPCompression
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case ZSTDCompression:
		return "zstd"
	case GZIPCompression:
		return "gzip"
	default:
		panic("unknown compression")
	}
}

func ParseCompression(value string) (Compression, error) {
	switch value {
	case "none", "":
		return NoCompression, nil
	case "zstd":
		return ZSTDCompression, nil
	case "gzip":
		return GZIPCompression, nil
	default:
		return NoCompression, errors.Errorf("unknown compression %q", value)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// newWriter wraps output. Closing the returned writer flushes the
// compressed stream but leaves output open.
func (c Compression) newWriter(output io.Writer) (io.WriteCloser, error) {
	switch c {
	case ZSTDCompression:
		return zstd.NewWriter(
			output,
			zstd.WithEncoderLevel(zstd.SpeedBestCompression),
			zstd.WithEncoderCRC(true),
		)
	case GZIPCompression:
		return gzip.NewWriterLevel(output, gzip.BestSpeed)
	case NoCompression:
		return nopCloser{Writer: output}, nil
	default:
		return nil, errors.Errorf("unknown compression %d", int(c))
	}
}

// newReader detects the compression of input from its leading bytes.
func newReader(input io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(input)

	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}

	switch {
	case bytes.HasPrefix(head, zstdMagic):
		decoder, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return decoder, decoder.Close, nil
	case bytes.HasPrefix(head, gzipMagic):
		reader, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return reader, func() { _ = reader.Close() }, nil
	default:
		return br, func() {}, nil
	}
}

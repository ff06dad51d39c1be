// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// MaxDocumentBytes caps any single document read from a source.
const MaxDocumentBytes = 10 << 20

// Reader decodes a JSON or YAML document from an io.Reader.
// Close must be called when created by NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader over input. Table format cannot be read.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader opens a local file, detecting the format from its extension.
func NewFileReader(filePath string) (*Reader, error) {
	format := FormatFromPath(filePath)
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

// Deserialize reads the whole input and decodes it into v.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	data, err := readLimited(r.input)
	if err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// Close releases the underlying file. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Unmarshal decodes JSON or YAML into v, honoring json struct tags and
// custom JSON unmarshalers.
func Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// ReadSource returns the raw document at path, which may be a local file, an
// http(s) URL, or cm://namespace/name.
func ReadSource(ctx context.Context, path string, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	switch {
	case strings.HasPrefix(path, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		data, _, err := readConfigMap(ctx, o, namespace, name)
		return data, err

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return o.http().ReadWithContext(ctx, path)

	default:
		r, err := NewFileReader(path)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := r.Close(); closeErr != nil {
				slog.Warn("failed to close reader", "error", closeErr)
			}
		}()
		return readLimited(r.input)
	}
}

// FromFile reads and decodes the document at path into a new T.
//
// Example:
//
//	d, err := FromFile[deployment.Deployment](ctx, "cm://astronomer/quasar-nebula-1234")
func FromFile[T any](ctx context.Context, path string, opts ...Option) (*T, error) {
	data, err := ReadSource(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	var r T
	if err := Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}

	slog.Debug("loaded object", slog.String("path", path), slog.Int("bytes", len(data)))
	return &r, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxDocumentBytes)
	}
	return data, nil
}

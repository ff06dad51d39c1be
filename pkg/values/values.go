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

// Package values holds the Helm values document type and the recursive merge
// used to layer partial documents.
package values

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Values is a Helm values document. Nested mappings are map[string]any.
type Values map[string]any

// Merge deep-merges the given documents left to right into a fresh document.
// Later documents take precedence. Nested maps merge key by key; any other
// value (scalars, slices, a map replacing a scalar) replaces what was there.
// Inputs are never mutated and the result shares no maps or slices with them.
func Merge(layers ...Values) Values {
	result := make(Values)
	for _, layer := range layers {
		mergeInto(result, layer)
	}
	return result
}

// Clone returns a deep copy of v.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	return Values(cloneMap(v))
}

// Lookup walks path through nested maps and returns the value found there.
func (v Values) Lookup(path ...string) (any, bool) {
	var current any = map[string]any(v)
	for _, key := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ToYAML encodes the document as YAML with two-space indentation.
func (v Values) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(map[string]any(v)); err != nil {
		return nil, fmt.Errorf("failed to encode values to YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// mergeInto recursively merges src into dst.
// For maps, it recursively merges nested keys.
// For other types, src values override dst values.
func mergeInto(dst, src map[string]any) {
	for key, srcVal := range src {
		if dstVal, exists := dst[key]; exists {
			if dstMap, dstOK := asMap(dstVal); dstOK {
				if srcMap, srcOK := asMap(srcVal); srcOK {
					mergeInto(dstMap, srcMap)
					continue
				}
			}
		}
		dst[key] = cloneValue(srcVal)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Values:
		return m, true
	default:
		return nil, false
	}
}

// CloneValue deep-copies maps and slices inside v. Scalars are returned as is.
func CloneValue(v any) any {
	return cloneValue(v)
}

// AsMap returns v as a mapping when it is one.
func AsMap(v any) (map[string]any, bool) {
	return asMap(v)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Values:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneMap(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

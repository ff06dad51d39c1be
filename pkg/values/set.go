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

package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseSet builds a document from --set style assignments such as
// "workers.replicas=3". Later assignments to the same path win.
func ParseSet(assignments []string) (Values, error) {
	out := Values{}

	var errs []string
	for _, a := range assignments {
		path, value, ok := strings.Cut(a, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			errs = append(errs, fmt.Sprintf("%q: expected path=value", a))
			continue
		}
		if err := out.Set(path, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", a, err))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid assignments: %s", strings.Join(errs, "; "))
	}
	return out, nil
}

// Set stores value at the dot-separated path, creating nested maps as
// needed. The value is converted to a bool or number when it parses as one.
func (v Values) Set(path, value string) error {
	parts := strings.Split(path, ".")
	current := map[string]any(v)

	for _, part := range parts[:len(parts)-1] {
		if part == "" {
			return fmt.Errorf("empty path segment in %q", path)
		}
		next, ok := current[part]
		if !ok {
			m := make(map[string]any)
			current[part] = m
			current = m
			continue
		}
		m, ok := asMap(next)
		if !ok {
			return fmt.Errorf("path segment %q exists but is not a map (type: %T)", part, next)
		}
		current = m
	}

	last := parts[len(parts)-1]
	if last == "" {
		return fmt.Errorf("empty path segment in %q", path)
	}
	current[last] = convertValue(value)
	return nil
}

func convertValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	// NaN and Inf have no JSON encoding, keep them as strings
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return value
}

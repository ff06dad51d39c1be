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

package resources

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Kind tells which form a Quantity holds.
type Kind int

const (
	// KindInvalid is any JSON value that is neither a number nor a string.
	KindInvalid Kind = iota
	// KindNumber is a bare number, millicores for cpu and MiB for memory.
	KindNumber
	// KindSuffixed is a Kubernetes quantity string such as "500m" or "1Gi".
	KindSuffixed
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindSuffixed:
		return "suffixed"
	default:
		return "invalid"
	}
}

// Quantity is a resource leaf as written in a deployment override: either a
// bare number or a unit-suffixed string. Values of any other JSON kind decode
// to KindInvalid and keep the raw value for error reporting.
type Quantity struct {
	kind   Kind
	number float64
	text   string
	raw    any
}

// Number returns a bare numeric quantity.
func Number(n float64) Quantity {
	return Quantity{kind: KindNumber, number: n}
}

// Suffixed returns a unit-suffixed quantity string.
func Suffixed(s string) Quantity {
	return Quantity{kind: KindSuffixed, text: s}
}

// Kind returns the form of q.
func (q Quantity) Kind() Kind { return q.kind }

// Value returns q in the form it takes inside a values document.
func (q Quantity) Value() any {
	switch q.kind {
	case KindNumber:
		return numberValue(q.number)
	case KindSuffixed:
		return q.text
	default:
		return q.raw
	}
}

// String implements fmt.Stringer.
func (q Quantity) String() string {
	switch q.kind {
	case KindNumber:
		return strconv.FormatFloat(q.number, 'f', -1, 64)
	case KindSuffixed:
		return q.text
	default:
		return fmt.Sprintf("%v", q.raw)
	}
}

// WithUnit returns the canonical suffixed form of q. Bare numbers get unit
// appended; suffixed strings are validated and returned unchanged.
func (q Quantity) WithUnit(unit string) (string, error) {
	switch q.kind {
	case KindNumber:
		if q.number < 0 || math.IsNaN(q.number) || math.IsInf(q.number, 0) {
			return "", malformed(q, "must be a non-negative finite number")
		}
		return strconv.FormatFloat(q.number, 'f', -1, 64) + unit, nil
	case KindSuffixed:
		parsed, err := resource.ParseQuantity(q.text)
		if err != nil {
			return "", cnserrors.WrapWithContext(cnserrors.ErrCodeMalformedOverride,
				fmt.Sprintf("%q is not a valid resource quantity", q.text), err,
				map[string]any{"value": q.text})
		}
		if parsed.Sign() < 0 {
			return "", malformed(q, "must not be negative")
		}
		return q.text, nil
	default:
		return "", malformed(q, "must be a number or a unit-suffixed string")
	}
}

// UnmarshalJSON accepts JSON numbers and strings.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*q = Number(t)
	case string:
		*q = Suffixed(t)
	default:
		// null and composite values are rejected at normalization
		*q = Quantity{kind: KindInvalid, raw: v}
	}
	return nil
}

// MarshalJSON writes q back in its original form.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Value())
}

func malformed(q Quantity, reason string) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeMalformedOverride,
		fmt.Sprintf("resource value %s %s", q.String(), reason),
		map[string]any{"value": q.Value(), "kind": q.kind.String()})
}

// numberValue keeps integral numbers integral in emitted documents.
func numberValue(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

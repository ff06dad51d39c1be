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
	"fmt"
	"math"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"k8s.io/apimachinery/pkg/api/resource"
)

const mebibyte = 1 << 20

// List is a requests or limits block keyed by resource name.
type List map[string]Quantity

// Amount reads the cpu and memory leaves of l as a raw amount. A leaf that is
// missing takes its value from fallback.
func (l List) Amount(fallback Amount) (Amount, error) {
	out := fallback

	if q, ok := l[CPU]; ok {
		milli, err := Millicores(q)
		if err != nil {
			return Amount{}, err
		}
		out.CPU = milli
	}
	if q, ok := l[Memory]; ok {
		mi, err := Mebibytes(q)
		if err != nil {
			return Amount{}, err
		}
		out.Memory = mi
	}

	return out, nil
}

// Values returns l as a mapping of emitted leaf values.
func (l List) Values() map[string]any {
	out := make(map[string]any, len(l))
	for k, q := range l {
		out[k] = q.Value()
	}
	return out
}

// Millicores returns a cpu quantity in millicores. Bare numbers are already
// millicores.
func Millicores(q Quantity) (int64, error) {
	switch q.Kind() {
	case KindNumber:
		return wholeNumber(q)
	case KindSuffixed:
		parsed, err := parse(q)
		if err != nil {
			return 0, err
		}
		return parsed.MilliValue(), nil
	default:
		return 0, malformed(q, "must be a number or a unit-suffixed string")
	}
}

// Mebibytes returns a memory quantity in MiB, floored. Bare numbers are
// already MiB.
func Mebibytes(q Quantity) (int64, error) {
	switch q.Kind() {
	case KindNumber:
		return wholeNumber(q)
	case KindSuffixed:
		parsed, err := parse(q)
		if err != nil {
			return 0, err
		}
		return parsed.Value() / mebibyte, nil
	default:
		return 0, malformed(q, "must be a number or a unit-suffixed string")
	}
}

func parse(q Quantity) (resource.Quantity, error) {
	parsed, err := resource.ParseQuantity(q.text)
	if err != nil {
		return resource.Quantity{}, cnserrors.WrapWithContext(cnserrors.ErrCodeMalformedOverride,
			fmt.Sprintf("%q is not a valid resource quantity", q.text), err,
			map[string]any{"value": q.text})
	}
	return parsed, nil
}

func wholeNumber(q Quantity) (int64, error) {
	if math.IsNaN(q.number) || math.IsInf(q.number, 0) {
		return 0, malformed(q, "must be finite")
	}
	return int64(math.Floor(q.number)), nil
}

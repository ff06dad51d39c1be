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

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	corev1 "k8s.io/api/core/v1"
)

// Resource names used as leaf keys in requests/limits blocks.
var (
	CPU    = string(corev1.ResourceCPU)
	Memory = string(corev1.ResourceMemory)
)

// Amount is a raw CPU/memory amount in millicores and MiB.
type Amount struct {
	CPU    int64 `json:"cpu" yaml:"cpu"`
	Memory int64 `json:"memory" yaml:"memory"`
}

// Units is an Amount formatted for a manifest: "<cpu>m" and "<memory>Mi".
type Units struct {
	CPU    string `json:"cpu" yaml:"cpu"`
	Memory string `json:"memory" yaml:"memory"`
}

// ToResources converts size Astro Units into a raw amount. Fractional results
// are floored to whole millicores and MiB.
func ToResources(au catalog.AstroUnit, size float64) Amount {
	return Amount{
		CPU:    int64(math.Floor(float64(au.CPU) * size)),
		Memory: int64(math.Floor(float64(au.Memory) * size)),
	}
}

// ToValues converts size Astro Units into the {cpu, memory} mapping used in
// values documents, suffixed when includeUnits is set.
func ToValues(au catalog.AstroUnit, size float64, includeUnits bool) map[string]any {
	amount := ToResources(au, size)
	if includeUnits {
		return amount.WithUnits().Map()
	}
	return amount.Map()
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{CPU: a.CPU + b.CPU, Memory: a.Memory + b.Memory}
}

// Scale returns a multiplied by n.
func (a Amount) Scale(n int64) Amount {
	return Amount{CPU: a.CPU * n, Memory: a.Memory * n}
}

// WithUnits formats a for a manifest.
func (a Amount) WithUnits() Units {
	return Units{
		CPU:    fmt.Sprintf("%dm", a.CPU),
		Memory: fmt.Sprintf("%dMi", a.Memory),
	}
}

// Map returns a as a raw {cpu, memory} mapping.
func (a Amount) Map() map[string]any {
	return map[string]any{CPU: a.CPU, Memory: a.Memory}
}

// Check returns an invariant violation when either field is negative.
func (a Amount) Check(what string) error {
	if a.CPU < 0 || a.Memory < 0 {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvariantViolation,
			fmt.Sprintf("%s resolved to a negative amount", what),
			map[string]any{"field": what, "cpu": a.CPU, "memory": a.Memory})
	}
	return nil
}

// Map returns u as a {cpu, memory} mapping.
func (u Units) Map() map[string]any {
	return map[string]any{CPU: u.CPU, Memory: u.Memory}
}

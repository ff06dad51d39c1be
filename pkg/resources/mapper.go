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
	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/values"
)

// MapComponent returns the default values block for one component:
//
//	{<name>: {resources: {requests: X, limits: X}, <extra>: <amount>...}}
//
// requests and limits always hold the same amount. Extras carry the amount the
// component declares for auType and are left out when it declares none.
func MapComponent(au catalog.AstroUnit, auType string, includeUnits bool, comp catalog.ComponentDefinition) (values.Values, error) {
	size, err := comp.Size(auType)
	if err != nil {
		return nil, err
	}

	entry := map[string]any{
		"resources": map[string]any{
			"requests": ToValues(au, size, includeUnits),
			"limits":   ToValues(au, size, includeUnits),
		},
	}
	for _, extra := range comp.Extra {
		if amount, ok := extra.Amount(auType); ok {
			entry[extra.Name] = numberValue(amount)
		}
	}

	return values.Values{comp.Name: entry}, nil
}

// DefaultResources merges the MapComponent block of every catalog component.
func DefaultResources(cat *catalog.Catalog, auType string, includeUnits bool) (values.Values, error) {
	blocks := make([]values.Values, 0, len(cat.Components))
	for _, comp := range cat.Components {
		block, err := MapComponent(cat.AstroUnit, auType, includeUnits, comp)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return values.Merge(blocks...), nil
}

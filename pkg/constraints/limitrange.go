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

package constraints

import (
	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/resources"
	"github.com/NVIDIA/airflow-values/pkg/values"
	corev1 "k8s.io/api/core/v1"
)

// LimitRange returns the limit range block: a pod may use up to maxPodAu
// units, and a container defaults to, and may not go below, one unit. Empty
// in single-namespace mode.
func LimitRange(cat *catalog.Catalog) values.Values {
	if cat.Helm.SingleNamespace {
		return values.Values{}
	}

	au := cat.AstroUnit
	minimum := func() map[string]any { return resources.ToValues(au, 1, true) }

	return values.Values{
		"limits": []any{
			map[string]any{
				"type": string(corev1.LimitTypePod),
				"max":  resources.ToValues(au, cat.MaxPodAU, true),
			},
			map[string]any{
				"type":           string(corev1.LimitTypeContainer),
				"default":        minimum(),
				"defaultRequest": minimum(),
				"min":            minimum(),
			},
		},
	}
}

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

package composer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultOK = "ok"

var (
	composeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airflow_values_compose_total",
			Help: "Total number of values compositions by result (ok or error code)",
		},
		[]string{"result"},
	)

	composeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "airflow_values_compose_duration_seconds",
			Help:    "Duration of values composition in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	layerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airflow_values_layer_errors_total",
			Help: "Total number of failed layer builds by layer name",
		},
		[]string{"layer"},
	)
)

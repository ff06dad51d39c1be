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

// Package cli implements the airflow-values command line interface.
//
// # Commands
//
// values - Compose the full Helm values document for a deployment:
//
//	airflow-values values --deployment quasar-nebula-1234.yaml [--set nodeSelector.pool=airflow]
//
// constraints - Resource quota, limit range and pgbouncer pool sizing:
//
//	airflow-values constraints --deployment quasar-nebula-1234.yaml --format table
//
// resources - Per-component resources from the catalog:
//
//	airflow-values resources --type limit --units=false
//
// normalize - The deployment's own configuration in canonical form:
//
//	airflow-values normalize --deployment quasar-nebula-1234.yaml
//
// catalog - The effective, validated catalog:
//
//	airflow-values --catalog cm://astronomer/airflow-catalog catalog
//
// image - Next image tag and registry reference:
//
//	airflow-values image --release quasar-nebula-1234 --tag cli-1 --tag cli-2
//
// # Global Flags
//
//	--catalog      Catalog path or URI (env AIRFLOW_VALUES_CATALOG, default: embedded)
//	--kubeconfig   Kubeconfig for cm:// sources and outputs
//	--log-level    debug, info, warn, error (env LOG_LEVEL)
//
// Most commands also take:
//
//	--output, -o   Output file path or cm://namespace/name (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// Deployment records, catalogs and --values documents are read from local
// files, http(s) URLs or ConfigMaps (cm://namespace/name).
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments or a failed computation
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/airflow-values/pkg/cli.version=1.0.0'"
package cli

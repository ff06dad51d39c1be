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

// Package api provides the HTTP API layer for the airflow-values service.
//
// It wires the composer handlers into a pkg/server instance and runs it
// until SIGINT or SIGTERM.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /v1/values      - compose the Helm values for a deployment
//   - POST /v1/constraints - quotas, limit range and pool sizing for a deployment
//   - GET  /v1/resources   - per-component resources from the catalog
//
// System endpoints:
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// Example request:
//
//	curl -s -X POST http://localhost:8080/v1/values \
//	  -H 'Content-Type: application/x-yaml' \
//	  --data-binary @- <<'EOF'
//	deployment:
//	  releaseName: quasar-nebula-1234
//	  config:
//	    executor: CeleryExecutor
//	    workers:
//	      replicas: 3
//	EOF
//
// # Configuration
//
// Environment variables:
//   - AIRFLOW_VALUES_CATALOG: catalog path, http(s) URL or cm://namespace/name
//   - PORT: listen port (default 8080)
//   - LOG_LEVEL: debug, info, warn or error
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown window
//
// The catalog is loaded once at startup. A catalog that fails validation
// stops the server before it listens.
package api

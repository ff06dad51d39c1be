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

// Package server hosts HTTP handlers behind a shared middleware chain,
// together with health, readiness and Prometheus metrics endpoints.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("airflow-values-api"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/values": valuesHandler,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT, SIGTERM or ctx cancellation, then drains
// in-flight requests for up to Config.ShutdownTimeout.
//
// # Middleware
//
// Every handler registered with WithHandler is wrapped, outermost first, with:
//
//   - metrics: count, latency and response size labelled by mux route,
//     plus an in-flight gauge
//   - version: API version negotiated from the Accept header
//     (application/vnd.nvidia.airflow-values.v1+json), echoed in X-API-Version
//   - request ID: X-Request-Id is kept when it is a UUID, generated otherwise
//   - panic recovery: a panicking handler yields a 500 error envelope
//   - rate limiting: token bucket; rejections get 429 with Retry-After
//   - logging: one completion line, at warn for 5xx and debug otherwise
//
// System endpoints (/health, /ready, /metrics) bypass the chain. /health
// answers while the process serves; /ready only between Start and Shutdown.
//
// # Errors
//
// Handlers report failures through WriteErrorFromErr, which maps structured
// error codes to HTTP status:
//
//	{
//	  "code": "MALFORMED_OVERRIDE",
//	  "message": "cpu value \"abc\" is not a valid quantity",
//	  "details": {"component": "scheduler", "field": "resources.limits.cpu"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-22T12:00:00Z",
//	  "retryable": false
//	}
//
//   - INVALID_REQUEST: 400
//   - NOT_FOUND, MALFORMED_OVERRIDE: 422
//   - RATE_LIMIT_EXCEEDED: 429
//   - INVARIANT_VIOLATION, INTERNAL: 500
//
// # Configuration
//
// NewConfig reads ADDRESS, PORT, RATE_LIMIT, RATE_LIMIT_BURST,
// MAX_BODY_BYTES and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Invalid values are logged and the defaults kept.
package server

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

// Package composer assembles the final Helm values document for one Airflow
// deployment.
//
// A composition is a fixed sequence of layers merged with values.Merge, lowest
// precedence first:
//
//	base         catalog static values
//	direct       caller supplied values
//	ingress      base domain and ingress class
//	resources    per-component requests and limits at the default AU size
//	limitRange   namespace limit range
//	constraints  resource quota and pgbouncer pool sizing
//	registry     image registry identity
//	elasticsearch search connection, when configured
//	overrides    the deployment's own normalized configuration
//
// Every layer is computed from the inputs alone, so the same catalog and
// deployment always compose to the same document. Any layer error aborts the
// composition and is returned with its original error code plus the failing
// layer name in the error context.
//
// Usage:
//
//	doc, err := composer.Compose(cat, d, nil)
//	if err != nil {
//	    return err
//	}
//	out, _ := doc.ToYAML()
//
// The package also serves the computation over HTTP:
//
//	h := composer.NewHandler(cat)
//	s := server.New(server.WithHandler(h.Routes()))
//
// Routes:
//   - POST /v1/values: body {deployment, values}, returns the values document
//   - POST /v1/constraints: body {deployment}, returns quotas and the sizing summary
//   - GET /v1/resources?type=default&units=true: per-component resources
//
// Request bodies are JSON or YAML.
package composer

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

// Package constraints computes the namespace-level limits for a deployment:
// the resource quota, the limit range, pgbouncer pool sizing and the
// pod-launching flag.
//
// Quotas double the component and sidecar totals before adding purchased
// extra capacity:
//
//	quota.cpu  = primary.cpu*2 + sidecars.cpu*2 + extra.cpu
//	quota.pods = primary.pods*2 + extra.pods
//
// All arithmetic runs on whole millicores and MiB; units are attached only
// when the block is rendered.
package constraints

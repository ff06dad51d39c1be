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

// Package resources converts Astro Units into concrete CPU and memory amounts
// and maps catalog components to their default requests/limits blocks.
//
// Two representations exist and are kept apart by type: Amount holds raw
// millicores and MiB for arithmetic, Units holds the suffixed strings that go
// into a manifest. Quantity is the tagged number-or-string leaf found in
// deployment overrides.
package resources

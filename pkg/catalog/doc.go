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

// Package catalog defines the static deployment catalog: the Astro Unit, the
// component definitions, the executor topologies and platform Helm settings.
//
// A catalog is loaded once, either from the embedded default or from an
// external YAML/JSON file, validated, and then passed explicitly into every
// computation. Nothing in this package keeps global state.
//
//	cat, err := catalog.Load(os.Getenv(catalog.EnvCatalogPath))
//	if err != nil {
//	    return err
//	}
//	comp, ok := cat.FindComponent(catalog.ComponentScheduler)
package catalog

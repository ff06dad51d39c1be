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

// Package topology resolves a deployment's executor to the components it
// deploys and to the sidecar overhead those components carry.
package topology

import (
	"fmt"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/resources"
)

// DefaultExecutor is used when a deployment does not name one.
const DefaultExecutor = catalog.ExecutorCelery

// ResolveExecutor returns the executor definition named name.
func ResolveExecutor(executors []catalog.ExecutorDefinition, name string) (*catalog.ExecutorDefinition, error) {
	for i := range executors {
		if executors[i].Name == name {
			return &executors[i], nil
		}
	}

	known := make([]string, 0, len(executors))
	for _, e := range executors {
		known = append(known, e.Name)
	}
	return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
		fmt.Sprintf("executor %q is not defined in the catalog", name),
		map[string]any{
			"executor": name,
			"known":    known,
		})
}

// ReplicaFunc returns the replica count of a component.
type ReplicaFunc func(component string) int

// SidecarAU returns the sidecar overhead, in AU, that component carries under
// executor with the given replica count:
//
//   - scheduler under LocalExecutor runs a log server and a log trimmer: 2 AU.
//   - workers run a log trimmer per replica: 1 AU each.
//   - pgbouncer runs a metrics exporter: 1 AU.
//
// TODO: move these rules into the executor catalog entries so new executors can
// declare their own sidecars.
func SidecarAU(executor, component string, replicas int) int64 {
	switch {
	case executor == catalog.ExecutorLocal && component == catalog.ComponentScheduler:
		return 2
	case component == catalog.ComponentWorkers:
		return int64(replicas)
	case component == catalog.ComponentPgbouncer:
		return 1
	default:
		return 0
	}
}

// Sidecars totals the sidecar overhead across the executor's components.
func Sidecars(au catalog.AstroUnit, executor *catalog.ExecutorDefinition, replicas ReplicaFunc) resources.Amount {
	var total resources.Amount
	for _, component := range executor.Components {
		n := SidecarAU(executor.Name, component, replicas(component))
		if n == 0 {
			continue
		}
		total = total.Add(resources.ToResources(au, 1).Scale(n))
	}
	return total
}

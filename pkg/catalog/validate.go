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

package catalog

import (
	"fmt"
	"math"
	"strings"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
)

// Validate checks the catalog for problems that would make every computation
// against it fail or produce nonsense. All problems are reported together.
func (c *Catalog) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.AstroUnit.CPU <= 0 {
		add("astroUnit.cpu must be positive, got %d", c.AstroUnit.CPU)
	}
	if c.AstroUnit.Memory <= 0 {
		add("astroUnit.memory must be positive, got %d", c.AstroUnit.Memory)
	}
	if c.AstroUnit.Pods < 0 {
		add("astroUnit.pods must not be negative, got %d", c.AstroUnit.Pods)
	}
	if c.AstroUnit.ActualConns < 0 || c.AstroUnit.AirflowConns < 0 {
		add("astroUnit connection ratios must not be negative")
	}
	if c.MaxPodAU < 0 || math.IsNaN(c.MaxPodAU) || math.IsInf(c.MaxPodAU, 0) {
		add("maxPodAu must be a non-negative finite number, got %v", c.MaxPodAU)
	}

	components := make(map[string]bool, len(c.Components))
	for i, comp := range c.Components {
		if comp.Name == "" {
			add("components[%d] has no name", i)
			continue
		}
		if components[comp.Name] {
			add("duplicate component %q", comp.Name)
		}
		components[comp.Name] = true

		if _, ok := comp.AU[AUTypeDefault]; !ok {
			add("component %q does not declare au.%s", comp.Name, AUTypeDefault)
		}
		for auType, size := range comp.AU {
			if size < 0 || math.IsNaN(size) || math.IsInf(size, 0) {
				add("component %q au.%s must be a non-negative finite number", comp.Name, auType)
			}
		}
		for j, extra := range comp.Extra {
			if extra.Name == "" {
				add("component %q extra[%d] has no name", comp.Name, j)
			}
		}
	}

	executors := make(map[string]bool, len(c.Executors))
	for i, exec := range c.Executors {
		if exec.Name == "" {
			add("executors[%d] has no name", i)
			continue
		}
		if executors[exec.Name] {
			add("duplicate executor %q", exec.Name)
		}
		executors[exec.Name] = true

		for _, name := range exec.Components {
			if !components[name] {
				add("executor %q references unknown component %q", exec.Name, name)
			}
		}
	}

	if c.Helm.ReleaseName == "" {
		add("helm.releaseName is required")
	}
	if c.Helm.BaseDomain == "" {
		add("helm.baseDomain is required")
	}

	if len(problems) == 0 {
		return nil
	}

	return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid catalog: %s", strings.Join(problems, "; ")),
		map[string]any{"problems": problems})
}

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
	"encoding/json"
	"fmt"
	"sort"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
)

// Catalog is the static configuration every values computation runs against.
// It is loaded once and treated as read-only afterwards.
type Catalog struct {
	// AstroUnit is the capacity unit definition.
	AstroUnit AstroUnit `json:"astroUnit"`

	// MaxPodAU bounds the size of a single pod, in AU, for the limit range.
	MaxPodAU float64 `json:"maxPodAu"`

	// Components lists the statically declared deployment components.
	Components []ComponentDefinition `json:"components"`

	// Executors lists the executors and the components each one requires.
	Executors []ExecutorDefinition `json:"executors"`

	// Elasticsearch holds the optional search backend connection.
	Elasticsearch ElasticsearchConfig `json:"elasticsearch,omitempty"`

	// Helm carries platform-level chart settings.
	Helm HelmConfig `json:"helm"`

	// Values is the static base values document, lowest merge precedence.
	Values map[string]any `json:"values,omitempty"`

	// LogHelmValues enables logging of every composed values document.
	LogHelmValues bool `json:"logHelmValues,omitempty"`
}

// AstroUnit bundles a fixed CPU/memory/pod ratio.
type AstroUnit struct {
	// CPU is millicores per unit.
	CPU int64 `json:"cpu"`
	// Memory is MiB per unit.
	Memory int64 `json:"memory"`
	// Pods is the pod allowance per unit of extra capacity.
	Pods int64 `json:"pods"`
	// ActualConns is metadata database connections per unit.
	ActualConns float64 `json:"actualConns"`
	// AirflowConns is client connections per unit.
	AirflowConns float64 `json:"airflowConns"`
}

// ComponentDefinition is the static sizing of one deployable component.
type ComponentDefinition struct {
	Name string `json:"name"`

	// AU maps an AU type (default, limit, minimum, ...) to a size in units.
	AU map[string]float64 `json:"au"`

	// Extra lists additional named values the component carries per AU type.
	Extra []ExtraDefinition `json:"extra,omitempty"`
}

// Size returns the component size for the given AU type.
func (c *ComponentDefinition) Size(auType string) (float64, error) {
	size, ok := c.AU[auType]
	if !ok {
		return 0, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
			fmt.Sprintf("component %q does not declare AU type %q", c.Name, auType),
			map[string]any{
				"component": c.Name,
				"auType":    auType,
			})
	}
	return size, nil
}

// ExtraDefinition is a named value attached to a component, with one amount
// per AU type. In the catalog it reads as {name: x, default: 1, limit: 10}.
type ExtraDefinition struct {
	Name    string
	Amounts map[string]float64
}

// Amount returns the extra's value for the given AU type.
func (e ExtraDefinition) Amount(auType string) (float64, bool) {
	v, ok := e.Amounts[auType]
	return v, ok
}

// UnmarshalJSON reads the flat {name, <auType>: n...} catalog shape.
func (e *ExtraDefinition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("extra definition must be an object: %w", err)
	}

	e.Amounts = make(map[string]float64, len(raw))
	for key, msg := range raw {
		if key == "name" {
			if err := json.Unmarshal(msg, &e.Name); err != nil {
				return fmt.Errorf("extra name must be a string: %w", err)
			}
			continue
		}
		var n float64
		if err := json.Unmarshal(msg, &n); err != nil {
			return fmt.Errorf("extra %q: value for %q must be a number: %w", e.Name, key, err)
		}
		e.Amounts[key] = n
	}
	return nil
}

// MarshalJSON writes the flat catalog shape back out.
func (e ExtraDefinition) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Amounts)+1)
	for k, v := range e.Amounts {
		out[k] = v
	}
	out["name"] = e.Name
	return json.Marshal(out)
}

// ExecutorDefinition names an executor and the components it deploys.
type ExecutorDefinition struct {
	Name       string   `json:"name"`
	Components []string `json:"components"`
}

// Has reports whether the executor's topology includes component.
func (e *ExecutorDefinition) Has(component string) bool {
	for _, c := range e.Components {
		if c == component {
			return true
		}
	}
	return false
}

// ElasticsearchConfig holds the search backend connection settings.
// A nil or empty Connection means search is not configured.
type ElasticsearchConfig struct {
	Connection map[string]any `json:"connection,omitempty"`
}

// Configured reports whether a search connection is present.
func (e ElasticsearchConfig) Configured() bool {
	return len(e.Connection) > 0
}

// HelmConfig carries platform chart settings.
type HelmConfig struct {
	BaseDomain  string `json:"baseDomain"`
	ReleaseName string `json:"releaseName"`

	// SingleNamespace is set when the platform and every deployment share one
	// namespace, which leaves no isolation boundary for quotas.
	SingleNamespace bool `json:"singleNamespace,omitempty"`
}

// FindComponent returns the component definition with the given name.
func (c *Catalog) FindComponent(name string) (*ComponentDefinition, bool) {
	for i := range c.Components {
		if c.Components[i].Name == name {
			return &c.Components[i], true
		}
	}
	return nil, false
}

// FindExecutor returns the executor definition with the given name.
func (c *Catalog) FindExecutor(name string) (*ExecutorDefinition, bool) {
	for i := range c.Executors {
		if c.Executors[i].Name == name {
			return &c.Executors[i], true
		}
	}
	return nil, false
}

// ComponentNames returns the sorted names of all catalog components.
func (c *Catalog) ComponentNames() []string {
	names := make([]string, 0, len(c.Components))
	for _, comp := range c.Components {
		names = append(names, comp.Name)
	}
	sort.Strings(names)
	return names
}

// ExecutorNames returns the executor names in catalog order.
func (c *Catalog) ExecutorNames() []string {
	names := make([]string, 0, len(c.Executors))
	for _, e := range c.Executors {
		names = append(names, e.Name)
	}
	return names
}

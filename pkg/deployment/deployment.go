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

package deployment

import (
	"encoding/json"
	"fmt"
	"sort"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/resources"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"
)

// Deployment is the stored record of one Airflow deployment. It is read-only
// to everything in this module.
type Deployment struct {
	ReleaseName string     `json:"releaseName"`
	Properties  []Property `json:"properties,omitempty"`
	Config      Config     `json:"config,omitempty"`
}

// Property is one legacy key/value pair attached to a deployment.
type Property struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Config is the deployment's own configuration: the executor plus one entry
// per component it overrides. Top-level keys that are neither the executor
// nor an object are kept in Extra and emitted unchanged.
type Config struct {
	Executor   string
	Components map[string]ComponentConfig
	Extra      map[string]any
}

// ComponentConfig is one component's override entry. Keys other than
// resources and replicas (env, image, ...) are kept in Fields.
type ComponentConfig struct {
	Resources *Resources
	Replicas  *int
	Fields    map[string]any
}

// Resources holds a component's requests and limits overrides. Other keys
// of the block (claims, ...) are kept in Fields.
type Resources struct {
	Requests resources.List
	Limits   resources.List
	Fields   map[string]any
}

const (
	configExecutorKey    = "executor"
	resourcesRequestsKey = "requests"
	resourcesLimitsKey   = "limits"
)

// Parse decodes a deployment record from YAML or JSON.
func Parse(data []byte) (*Deployment, error) {
	var d Deployment
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to decode deployment", err)
	}
	return &d, nil
}

// ComponentNames returns the overridden component names, sorted.
func (c Config) ComponentNames() []string {
	names := make([]string, 0, len(c.Components))
	for name := range c.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Component returns the override entry for name.
func (c Config) Component(name string) (ComponentConfig, bool) {
	cc, ok := c.Components[name]
	return cc, ok
}

// ReplicaCount returns the replicas declared for component, or 1.
func (c Config) ReplicaCount(component string) int {
	if cc, ok := c.Components[component]; ok && cc.Replicas != nil {
		return *cc.Replicas
	}
	return 1
}

// UnmarshalJSON splits the flat stored shape into executor, components and
// passthrough keys.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("deployment config must be an object: %w", err)
	}

	*c = Config{}
	for key, msg := range raw {
		if key == configExecutorKey {
			if err := json.Unmarshal(msg, &c.Executor); err != nil {
				return fmt.Errorf("deployment config executor must be a string: %w", err)
			}
			continue
		}

		if isObject(msg) {
			var cc ComponentConfig
			if err := json.Unmarshal(msg, &cc); err != nil {
				return fmt.Errorf("deployment config %q: %w", key, err)
			}
			if c.Components == nil {
				c.Components = make(map[string]ComponentConfig)
			}
			c.Components[key] = cc
			continue
		}

		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("deployment config %q: %w", key, err)
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[key] = v
	}
	return nil
}

// MarshalJSON writes the flat stored shape.
func (c Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Components)+len(c.Extra)+1)
	for k, v := range c.Extra {
		out[k] = v
	}
	for k, v := range c.Components {
		out[k] = v
	}
	if c.Executor != "" {
		out[configExecutorKey] = c.Executor
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads resources and replicas and keeps every other key.
func (cc *ComponentConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*cc = ComponentConfig{}
	for key, msg := range raw {
		switch key {
		case "resources":
			var r Resources
			if err := json.Unmarshal(msg, &r); err != nil {
				return fmt.Errorf("resources: %w", err)
			}
			cc.Resources = ptr.To(r)
		case "replicas":
			var n int
			if err := json.Unmarshal(msg, &n); err != nil {
				return fmt.Errorf("replicas must be an integer: %w", err)
			}
			cc.Replicas = ptr.To(n)
		default:
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if cc.Fields == nil {
				cc.Fields = make(map[string]any)
			}
			cc.Fields[key] = v
		}
	}
	return nil
}

// MarshalJSON writes the flat stored shape.
func (cc ComponentConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(cc.Map())
}

// Map returns the entry as a plain mapping, resources leaves in their
// original form.
func (cc ComponentConfig) Map() map[string]any {
	out := make(map[string]any, len(cc.Fields)+2)
	for k, v := range cc.Fields {
		out[k] = v
	}
	if cc.Resources != nil {
		out["resources"] = cc.Resources.Map()
	}
	if cc.Replicas != nil {
		out["replicas"] = *cc.Replicas
	}
	return out
}

// UnmarshalJSON reads requests and limits as quantity lists and keeps every
// other key.
func (r *Resources) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Resources{}
	for key, msg := range raw {
		var err error
		switch key {
		case resourcesRequestsKey:
			err = json.Unmarshal(msg, &r.Requests)
		case resourcesLimitsKey:
			err = json.Unmarshal(msg, &r.Limits)
		default:
			var v any
			if err = json.Unmarshal(msg, &v); err == nil {
				if r.Fields == nil {
					r.Fields = make(map[string]any)
				}
				r.Fields[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes the block back in its stored shape.
func (r Resources) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// Map returns the resources block as a plain mapping.
func (r Resources) Map() map[string]any {
	out := make(map[string]any, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	if r.Requests != nil {
		out[resourcesRequestsKey] = r.Requests.Values()
	}
	if r.Limits != nil {
		out[resourcesLimitsKey] = r.Limits.Values()
	}
	return out
}

func isObject(msg json.RawMessage) bool {
	for _, b := range msg {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

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

// Package overrides rewrites a deployment's own configuration into the
// canonical shape merged on top of the computed values: resource leaves carry
// units and requests always equal limits.
package overrides

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/NVIDIA/airflow-values/pkg/deployment"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/resources"
	"github.com/NVIDIA/airflow-values/pkg/values"
)

const (
	keyExecutor  = "executor"
	keyResources = "resources"
	keyReplicas  = "replicas"
	keyRequests  = "requests"
	keyLimits    = "limits"
)

// units maps resource names to the suffix appended to bare numbers.
var units = map[string]string{
	resources.CPU:    "m",
	resources.Memory: "Mi",
}

// Normalize returns cfg as a values document. Components that declare a
// resources block get unit-suffixed leaves and symmetric requests/limits
// (limits win when both are present). Everything else passes through.
func Normalize(cfg deployment.Config) (values.Values, error) {
	out := make(values.Values, len(cfg.Components)+len(cfg.Extra)+1)
	for k, v := range cfg.Extra {
		out[k] = v
	}
	if cfg.Executor != "" {
		out[keyExecutor] = cfg.Executor
	}

	for _, name := range cfg.ComponentNames() {
		entry, err := NormalizeComponent(name, cfg.Components[name])
		if err != nil {
			return nil, err
		}
		out[name] = entry
	}

	if err := CheckSymmetry(out); err != nil {
		return nil, err
	}

	return values.Merge(out), nil
}

// NormalizeComponent returns one component entry in canonical form.
func NormalizeComponent(name string, cc deployment.ComponentConfig) (map[string]any, error) {
	entry := make(map[string]any, len(cc.Fields)+2)
	for k, v := range cc.Fields {
		entry[k] = v
	}
	if cc.Replicas != nil {
		entry[keyReplicas] = *cc.Replicas
	}
	if cc.Resources == nil {
		return entry, nil
	}

	requests, err := normalizeList(name, keyRequests, cc.Resources.Requests)
	if err != nil {
		return nil, err
	}
	limits, err := normalizeList(name, keyLimits, cc.Resources.Limits)
	if err != nil {
		return nil, err
	}

	switch {
	case limits != nil:
		requests = copyLeaves(limits)
	case requests != nil:
		limits = copyLeaves(requests)
	}

	block := make(map[string]any, len(cc.Resources.Fields)+2)
	for k, v := range cc.Resources.Fields {
		block[k] = v
	}
	if requests != nil {
		block[keyRequests] = requests
	}
	if limits != nil {
		block[keyLimits] = limits
	}
	entry[keyResources] = block

	return entry, nil
}

// Symmetrize returns a copy of doc in which every top-level entry with a
// resources block has requests equal to limits. Limits win when both are
// present; a block with only requests gets them copied into limits.
func Symmetrize(doc values.Values) values.Values {
	out := values.Merge(doc)
	for _, entry := range out {
		res, ok := resourcesBlock(entry)
		if !ok {
			continue
		}
		if limits, ok := res[keyLimits]; ok {
			res[keyRequests] = values.CloneValue(limits)
		} else if requests, ok := res[keyRequests]; ok {
			res[keyLimits] = values.CloneValue(requests)
		}
	}
	return out
}

// CheckSymmetry verifies that requests equal limits for every top-level
// entry of doc that carries a resources block.
func CheckSymmetry(doc values.Values) error {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res, ok := resourcesBlock(doc[name])
		if !ok {
			continue
		}
		if !reflect.DeepEqual(res[keyRequests], res[keyLimits]) {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvariantViolation,
				fmt.Sprintf("component %q resources.requests differ from resources.limits", name),
				map[string]any{
					"component": name,
					"requests":  res[keyRequests],
					"limits":    res[keyLimits],
				})
		}
	}
	return nil
}

func resourcesBlock(entry any) (map[string]any, bool) {
	m, ok := values.AsMap(entry)
	if !ok {
		return nil, false
	}
	return values.AsMap(m[keyResources])
}

func normalizeList(component, field string, list resources.List) (map[string]any, error) {
	if list == nil {
		return nil, nil
	}

	keys := make([]string, 0, len(list))
	for k := range list {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(list))
	for _, key := range keys {
		v, err := normalizeLeaf(key, list[key])
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.CodeOf(err),
				fmt.Sprintf("component %q resources.%s.%s is malformed", component, field, key), err,
				map[string]any{
					"component": component,
					"field":     fmt.Sprintf("resources.%s.%s", field, key),
					"value":     list[key].Value(),
				})
		}
		out[key] = v
	}
	return out, nil
}

func normalizeLeaf(key string, q resources.Quantity) (any, error) {
	if unit, ok := units[key]; ok {
		return q.WithUnit(unit)
	}
	// other resource names keep their form once validated
	if _, err := q.WithUnit(""); err != nil {
		return nil, err
	}
	return q.Value(), nil
}

func copyLeaves(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

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
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
)

// Well-known property keys.
const (
	PropertyExtraAU          = "extra_au"
	PropertyComponentVersion = "component_version"
	PropertyAlertEmails      = "alert_emails"
)

// Fields are the top-level deployment fields that replaced legacy properties.
type Fields struct {
	ExtraAU        float64  `json:"extraAu,omitempty"`
	AirflowVersion string   `json:"airflowVersion,omitempty"`
	AlertEmails    []string `json:"alertEmails,omitempty"`
}

// DefaultConfig returns the configuration given to a new deployment that
// was created without one.
func DefaultConfig() Config {
	return Config{Executor: catalog.ExecutorCelery}
}

// Property returns the value of the property with key.
func (d *Deployment) Property(key string) (any, bool) {
	for _, p := range d.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// ExtraAU returns the purchased extra capacity, 0 when the property is unset.
func (d *Deployment) ExtraAU() (float64, error) {
	v, ok := d.Property(PropertyExtraAU)
	if !ok || v == nil {
		return 0, nil
	}
	n, err := toFloat(v)
	if err == nil && (math.IsNaN(n) || math.IsInf(n, 0)) {
		err = fmt.Errorf("%v is not finite", v)
	}
	if err != nil {
		return 0, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"extra capacity property is not a number", err,
			map[string]any{"field": PropertyExtraAU, "value": v})
	}
	return n, nil
}

// Executor returns the configured executor or def when none is set.
func (d *Deployment) Executor(def string) string {
	if d.Config.Executor != "" {
		return d.Config.Executor
	}
	return def
}

// PropertiesToMap flattens a property list into a key/value mapping. Later
// duplicates win.
func PropertiesToMap(props []Property) map[string]any {
	out := make(map[string]any, len(props))
	for _, p := range props {
		out[p.Key] = p.Value
	}
	return out
}

// MapToProperties turns a mapping into a property list sorted by key.
func MapToProperties(m map[string]any) []Property {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	props := make([]Property, 0, len(keys))
	for _, k := range keys {
		props = append(props, Property{Key: k, Value: m[k]})
	}
	return props
}

// MapPropertiesToFields maps legacy properties to their top-level fields.
// Alert emails are stored as a JSON array string.
func MapPropertiesToFields(props map[string]any) (Fields, error) {
	var f Fields

	if v, ok := props[PropertyExtraAU]; ok && v != nil {
		n, err := toFloat(v)
		if err != nil {
			return Fields{}, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"extra capacity property is not a number", err,
				map[string]any{"field": PropertyExtraAU, "value": v})
		}
		f.ExtraAU = n
	}

	if v, ok := props[PropertyComponentVersion]; ok && v != nil {
		f.AirflowVersion = fmt.Sprint(v)
	}

	if v, ok := props[PropertyAlertEmails]; ok && v != nil {
		emails, err := toStrings(v)
		if err != nil {
			return Fields{}, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"alert emails property is not a list", err,
				map[string]any{"field": PropertyAlertEmails})
		}
		f.AlertEmails = emails
	}

	return f, nil
}

// MapFieldsToProperties maps top-level fields back to legacy properties.
// Unset fields are omitted.
func MapFieldsToProperties(f Fields) (map[string]any, error) {
	out := make(map[string]any, 3)
	if f.ExtraAU != 0 {
		out[PropertyExtraAU] = f.ExtraAU
	}
	if f.AirflowVersion != "" {
		out[PropertyComponentVersion] = f.AirflowVersion
	}
	if len(f.AlertEmails) > 0 {
		b, err := json.Marshal(f.AlertEmails)
		if err != nil {
			return nil, fmt.Errorf("failed to encode alert emails: %w", err)
		}
		out[PropertyAlertEmails] = string(b)
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list item %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		var out []string
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

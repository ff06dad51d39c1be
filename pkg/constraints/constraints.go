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

package constraints

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/deployment"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/resources"
	"github.com/NVIDIA/airflow-values/pkg/topology"
	"github.com/NVIDIA/airflow-values/pkg/values"
	corev1 "k8s.io/api/core/v1"
)

// SafetyMultiplier reserves quota headroom for rolling upgrades, when old and
// new pod generations run side by side. Existing clusters depend on it.
const SafetyMultiplier = 2

// Result is the outcome of a constraints calculation. Amounts are raw
// millicores and MiB.
type Result struct {
	Executor string `json:"executor"`

	// Primary is the sum of component limits times replicas.
	Primary resources.Amount `json:"primary"`
	// Pods is the number of component pods, one per replica.
	Pods int64 `json:"pods"`
	// Sidecars is the overhead of auxiliary containers.
	Sidecars resources.Amount `json:"sidecars"`
	// Extra is the purchased extra capacity.
	Extra     resources.Amount `json:"extra"`
	ExtraPods int64            `json:"extraPods"`
	ExtraAU   float64          `json:"extraAu"`

	// TotalAU is the number of units the deployment occupies, for pool sizing.
	TotalAU float64 `json:"totalAu"`

	Quota             resources.Amount `json:"quota"`
	QuotaPods         int64            `json:"quotaPods"`
	MetadataPoolSize  int64            `json:"metadataPoolSize"`
	MaxClientConn     int64            `json:"maxClientConn"`
	AllowPodLaunching bool             `json:"allowPodLaunching"`
}

// Calculate derives quotas and pool sizes for d. It does not look at the
// single-namespace setting; use Compute for the values block.
func Calculate(d *deployment.Deployment, cat *catalog.Catalog) (*Result, error) {
	au := cat.AstroUnit

	exec, err := topology.ResolveExecutor(cat.Executors, d.Executor(topology.DefaultExecutor))
	if err != nil {
		return nil, err
	}

	r := &Result{Executor: exec.Name}

	for _, name := range exec.Components {
		comp, ok := cat.FindComponent(name)
		if !ok {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
				fmt.Sprintf("executor %q requires component %q which is not in the catalog", exec.Name, name),
				map[string]any{"executor": exec.Name, "component": name})
		}

		size, err := comp.Size(catalog.AUTypeDefault)
		if err != nil {
			return nil, err
		}

		amount, err := declaredLimits(d, name, resources.ToResources(au, size))
		if err != nil {
			return nil, err
		}

		replicas := int64(d.Config.ReplicaCount(name))
		r.Primary = r.Primary.Add(amount.Scale(replicas))
		r.Pods += replicas
	}

	r.Sidecars = topology.Sidecars(au, exec, d.Config.ReplicaCount)

	r.ExtraAU, err = d.ExtraAU()
	if err != nil {
		return nil, err
	}
	r.Extra = resources.ToResources(au, r.ExtraAU)
	r.ExtraPods = int64(math.Floor(float64(au.Pods) * r.ExtraAU))

	r.TotalAU = float64(r.Primary.CPU+r.Extra.CPU) / float64(au.CPU)

	r.Quota = r.Primary.Scale(SafetyMultiplier).
		Add(r.Sidecars.Scale(SafetyMultiplier)).
		Add(r.Extra)
	r.QuotaPods = r.Pods*SafetyMultiplier + r.ExtraPods

	r.MetadataPoolSize = int64(math.Floor(au.ActualConns * r.TotalAU))
	r.MaxClientConn = int64(math.Floor(au.AirflowConns * r.TotalAU))
	r.AllowPodLaunching = r.ExtraAU > 0

	if err := r.check(); err != nil {
		return nil, err
	}

	slog.Debug("calculated constraints",
		"release", d.ReleaseName,
		"executor", r.Executor,
		"totalAu", r.TotalAU,
		"quotaCpu", r.Quota.CPU,
		"quotaMemory", r.Quota.Memory,
		"quotaPods", r.QuotaPods)

	return r, nil
}

// Compute returns the constraints values block for d: quotas, pgbouncer pool
// sizing and, with extra capacity, allowPodLaunching. In single-namespace mode
// there is no boundary to enforce quotas against and the block is empty.
func Compute(d *deployment.Deployment, cat *catalog.Catalog) (values.Values, error) {
	if cat.Helm.SingleNamespace {
		return values.Values{}, nil
	}

	r, err := Calculate(d, cat)
	if err != nil {
		return nil, err
	}
	return r.Values(), nil
}

// Values renders r as a values block.
func (r *Result) Values() values.Values {
	quota := r.Quota.WithUnits()

	out := values.Values{
		"quotas": map[string]any{
			string(corev1.ResourcePods):           r.QuotaPods,
			string(corev1.ResourceRequestsCPU):    quota.CPU,
			string(corev1.ResourceRequestsMemory): quota.Memory,
			string(corev1.ResourceLimitsCPU):      quota.CPU,
			string(corev1.ResourceLimitsMemory):   quota.Memory,
		},
		"pgbouncer": map[string]any{
			"metadataPoolSize": r.MetadataPoolSize,
			"maxClientConn":    r.MaxClientConn,
		},
	}
	if r.AllowPodLaunching {
		out["allowPodLaunching"] = true
	}
	return out
}

func (r *Result) check() error {
	amounts := []struct {
		what   string
		amount resources.Amount
	}{
		{"primary", r.Primary},
		{"sidecars", r.Sidecars},
		{"extra", r.Extra},
		{"quota", r.Quota},
	}
	for _, a := range amounts {
		if err := a.amount.Check(a.what); err != nil {
			return err
		}
	}

	if r.Pods < 0 || r.QuotaPods < 0 {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvariantViolation,
			"pod count resolved to a negative number",
			map[string]any{"field": "pods", "pods": r.Pods, "quotaPods": r.QuotaPods})
	}

	if math.IsNaN(r.TotalAU) || math.IsInf(r.TotalAU, 0) {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvariantViolation,
			"total AU is not a finite number",
			map[string]any{"field": "totalAu", "totalAu": r.TotalAU})
	}

	return nil
}

// declaredLimits returns the limits the deployment declares for component,
// falling back per field to def. Requests stand in for limits when only
// requests are declared, matching override normalization.
func declaredLimits(d *deployment.Deployment, component string, def resources.Amount) (resources.Amount, error) {
	cc, ok := d.Config.Component(component)
	if !ok || cc.Resources == nil {
		return def, nil
	}

	list := cc.Resources.Limits
	if list == nil {
		list = cc.Resources.Requests
	}

	amount, err := list.Amount(def)
	if err != nil {
		return resources.Amount{}, cnserrors.WrapWithContext(cnserrors.CodeOf(err),
			fmt.Sprintf("component %q declares malformed resources", component), err,
			map[string]any{"component": component})
	}
	return amount, nil
}

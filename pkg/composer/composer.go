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

package composer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/constraints"
	"github.com/NVIDIA/airflow-values/pkg/deployment"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/overrides"
	"github.com/NVIDIA/airflow-values/pkg/resources"
	"github.com/NVIDIA/airflow-values/pkg/values"
)

// Layer names, lowest precedence first.
const (
	LayerBase          = "base"
	LayerDirect        = "direct"
	LayerIngress       = "ingress"
	LayerResources     = "resources"
	LayerLimitRange    = "limitRange"
	LayerConstraints   = "constraints"
	LayerRegistry      = "registry"
	LayerElasticsearch = "elasticsearch"
	LayerOverrides     = "overrides"
)

// Layer is one named partial values document.
type Layer struct {
	Name  string
	Build func() (values.Values, error)
}

// Layers returns the composition layers for d in merge order. Later layers
// win on key collisions; deployment overrides come last.
func Layers(cat *catalog.Catalog, d *deployment.Deployment, direct values.Values) []Layer {
	return []Layer{
		{LayerBase, func() (values.Values, error) { return values.Values(cat.Values), nil }},
		{LayerDirect, func() (values.Values, error) { return direct, nil }},
		{LayerIngress, func() (values.Values, error) { return Ingress(cat), nil }},
		{LayerResources, func() (values.Values, error) {
			return resources.DefaultResources(cat, catalog.AUTypeDefault, true)
		}},
		{LayerLimitRange, func() (values.Values, error) { return constraints.LimitRange(cat), nil }},
		{LayerConstraints, func() (values.Values, error) { return constraints.Compute(d, cat) }},
		{LayerRegistry, func() (values.Values, error) { return Registry(cat, d), nil }},
		{LayerElasticsearch, func() (values.Values, error) { return Elasticsearch(cat, d), nil }},
		{LayerOverrides, func() (values.Values, error) { return overrides.Normalize(d.Config) }},
	}
}

// Compose builds the final values document for d. Any layer error aborts the
// composition; no partial document is returned.
func Compose(cat *catalog.Catalog, d *deployment.Deployment, direct values.Values) (values.Values, error) {
	start := time.Now()

	doc, err := compose(cat, d, direct)
	composeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		composeTotal.WithLabelValues(string(cnserrors.CodeOf(err))).Inc()
		return nil, err
	}
	composeTotal.WithLabelValues(resultOK).Inc()

	if cat.LogHelmValues {
		logValues(d.ReleaseName, doc)
	}
	return doc, nil
}

func compose(cat *catalog.Catalog, d *deployment.Deployment, direct values.Values) (values.Values, error) {
	if cat == nil || d == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "catalog and deployment are required")
	}

	layers := Layers(cat, d, direct)
	docs := make([]values.Values, 0, len(layers))
	for _, layer := range layers {
		doc, err := layer.Build()
		if err != nil {
			layerErrors.WithLabelValues(layer.Name).Inc()
			return nil, layerError(layer.Name, d.ReleaseName, err)
		}
		slog.Debug("built values layer", "layer", layer.Name, "keys", len(doc))
		docs = append(docs, doc)
	}

	// base and direct values may carry their own resources blocks
	out := overrides.Symmetrize(values.Merge(docs...))

	if err := overrides.CheckSymmetry(out); err != nil {
		return nil, err
	}
	return out, nil
}

// layerError wraps err with the layer name, keeping the cause's code and
// context.
func layerError(layer, release string, err error) error {
	ctx := cnserrors.ContextOf(err)
	if ctx == nil {
		ctx = make(map[string]any, 2)
	}
	ctx["layer"] = layer
	ctx["release"] = release

	return cnserrors.WrapWithContext(cnserrors.CodeOf(err),
		fmt.Sprintf("failed to build %s layer", layer), err, ctx)
}

func logValues(release string, doc values.Values) {
	out, err := doc.ToYAML()
	if err != nil {
		slog.Warn("failed to render helm values for logging", "release", release, "error", err)
		return
	}
	slog.Info("final helm values", "release", release, "values", string(out))
}

// Ingress returns the ingress block. The ingress class follows the platform
// release name.
func Ingress(cat *catalog.Catalog) values.Values {
	return values.Values{
		"ingress": map[string]any{
			"baseDomain": cat.Helm.BaseDomain,
			"class":      cat.Helm.ReleaseName + "-nginx",
		},
	}
}

// Registry returns the image registry identity for d. Credentials live in a
// per-deployment secret and are not part of the values.
func Registry(cat *catalog.Catalog, d *deployment.Deployment) values.Values {
	return values.Values{
		"registry": map[string]any{
			"connection": map[string]any{
				"user":  d.ReleaseName,
				"host":  "registry." + cat.Helm.BaseDomain,
				"email": "admin@" + cat.Helm.BaseDomain,
			},
		},
	}
}

// Elasticsearch returns the search connection for d, or an empty document
// when no connection is configured. Workers then log to stdout, so their
// persistent volumes are disabled.
func Elasticsearch(cat *catalog.Catalog, d *deployment.Deployment) values.Values {
	if !cat.Elasticsearch.Configured() {
		return values.Values{}
	}

	connection := values.Merge(
		values.Values{"user": d.ReleaseName},
		values.Values(cat.Elasticsearch.Connection),
	)

	return values.Values{
		"elasticsearch": map[string]any{
			"connection": map[string]any(connection),
		},
		catalog.ComponentWorkers: map[string]any{
			"persistence": map[string]any{"enabled": false},
		},
	}
}

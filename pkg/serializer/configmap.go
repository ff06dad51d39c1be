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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/NVIDIA/airflow-values/pkg/defaults"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap sources and destinations.
	ConfigMapURIScheme = "cm://"

	// ConfigMapDataKey is the data key stem; the format extension is appended.
	ConfigMapDataKey = "values"

	fieldManager = "airflow-values"
)

// ConfigMapWriter writes a serialized document to a Kubernetes ConfigMap,
// creating or updating it with server-side apply.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	opts      *options
}

// NewConfigMapWriter creates a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...Option) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalizeFormat(format),
		opts:      newOptions(opts),
	}
}

// Serialize stores v under data["values.<ext>"] together with the format and
// a timestamp.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kc, err := w.opts.kube()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	content, err := encode(w.format, v)
	if err != nil {
		return err
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "airflow-values",
			"app.kubernetes.io/managed-by": fieldManager,
		}).
		WithData(map[string]string{
			ConfigMapDataKey + "." + w.format.Extension(): string(content),
			"format":    string(w.format),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = kc.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, configMap, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	path, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}

// readConfigMap returns the stored document and its format. The format-keyed
// entry wins; otherwise the first .yaml, .yml or .json key is used.
func readConfigMap(ctx context.Context, o *options, namespace, name string) ([]byte, Format, error) {
	kc, err := o.kube()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	cm, err := kc.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f := Format(cm.Data["format"]); !f.IsUnknown() && f != FormatTable {
		format = f
	}
	if content, ok := cm.Data[ConfigMapDataKey+"."+format.Extension()]; ok {
		return []byte(content), format, nil
	}

	keys := make([]string, 0, len(cm.Data))
	for k := range cm.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if f, ok := documentFormat(k); ok {
			return []byte(cm.Data[k]), f, nil
		}
	}

	return nil, "", fmt.Errorf("ConfigMap %s/%s has no JSON or YAML data", namespace, name)
}

func documentFormat(key string) (Format, bool) {
	lower := strings.ToLower(key)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, true
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML, true
	default:
		return "", false
	}
}

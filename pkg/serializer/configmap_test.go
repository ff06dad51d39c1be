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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid", uri: "cm://astronomer/quasar-values", wantNamespace: "astronomer", wantName: "quasar-values"},
		{name: "spaces trimmed", uri: "cm://astronomer / quasar-values ", wantNamespace: "astronomer", wantName: "quasar-values"},
		{name: "missing scheme", uri: "astronomer/quasar-values", wantErr: true},
		{name: "wrong scheme", uri: "http://astronomer/quasar-values", wantErr: true},
		{name: "missing name", uri: "cm://astronomer/", wantErr: true},
		{name: "missing namespace", uri: "cm:///quasar-values", wantErr: true},
		{name: "missing separator", uri: "cm://astronomer", wantErr: true},
		{name: "only scheme", uri: "cm://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, namespace)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	kc := fake.NewClientset()
	w := NewConfigMapWriter("astronomer", "quasar-values", FormatYAML, WithKubeClient(kc))

	require.NoError(t, w.Serialize(t.Context(), sampleValues))
	require.NoError(t, w.Close())

	cm, err := kc.CoreV1().ConfigMaps("astronomer").Get(t.Context(), "quasar-values", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Contains(t, cm.Data["values.yaml"], "baseDomain: example.com")
	assert.NotEmpty(t, cm.Data["timestamp"])
	assert.Equal(t, "airflow-values", cm.Labels["app.kubernetes.io/name"])

	// written documents read back through the same URI
	got, err := FromFile[map[string]any](t.Context(), "cm://astronomer/quasar-values", WithKubeClient(kc))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"baseDomain": "example.com"}, (*got)["ingress"])
}

func TestDocumentFormat(t *testing.T) {
	f, ok := documentFormat("values.JSON")
	assert.True(t, ok)
	assert.Equal(t, FormatJSON, f)

	_, ok = documentFormat("format")
	assert.False(t, ok)
}

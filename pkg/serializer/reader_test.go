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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

type sample struct {
	ReleaseName string         `json:"releaseName"`
	Config      map[string]any `json:"config"`
}

const sampleYAML = `releaseName: quasar-nebula-1234
config:
  executor: LocalExecutor
`

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"yaml", FormatYAML, sampleYAML},
		{"json", FormatJSON, `{"releaseName":"quasar-nebula-1234","config":{"executor":"LocalExecutor"}}`},
		{"json read as yaml", FormatYAML, `{"releaseName":"quasar-nebula-1234","config":{"executor":"LocalExecutor"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			require.NoError(t, err)

			var got sample
			require.NoError(t, r.Deserialize(&got))
			assert.Equal(t, "quasar-nebula-1234", got.ReleaseName)
			assert.Equal(t, "LocalExecutor", got.Config["executor"])
		})
	}
}

func TestNewReader_Errors(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)

	var r *Reader
	assert.Error(t, r.Deserialize(&sample{}))
	assert.NoError(t, r.Close())
}

func TestReader_InvalidDocument(t *testing.T) {
	r, err := NewReader(FormatYAML, strings.NewReader("releaseName: [unclosed"))
	require.NoError(t, err)
	assert.Error(t, r.Deserialize(&sample{}))
}

func TestFromFile_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	got, err := FromFile[sample](t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "quasar-nebula-1234", got.ReleaseName)

	_, err = FromFile[sample](t.Context(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromFile_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/deployment.yaml" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, HttpReaderUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(sampleYAML))
	}))
	defer srv.Close()

	got, err := FromFile[sample](t.Context(), srv.URL+"/deployment.yaml")
	require.NoError(t, err)
	assert.Equal(t, "quasar-nebula-1234", got.ReleaseName)

	_, err = FromFile[sample](t.Context(), srv.URL+"/missing.yaml")
	assert.Error(t, err)
}

func TestFromFile_ConfigMap(t *testing.T) {
	tests := []struct {
		name string
		data map[string]string
		err  bool
	}{
		{
			name: "format keyed entry",
			data: map[string]string{"format": "yaml", "values.yaml": sampleYAML},
		},
		{
			name: "any document key",
			data: map[string]string{"deployment.yml": sampleYAML, "notes": "ignored"},
		},
		{
			name: "no document",
			data: map[string]string{"notes": "nothing here"},
			err:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			//nolint:staticcheck // SA1019: NewSimpleClientset is sufficient for Get
			kc := fake.NewSimpleClientset(&corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{Name: "quasar", Namespace: "astronomer"},
				Data:       tt.data,
			})

			got, err := FromFile[sample](t.Context(), "cm://astronomer/quasar", WithKubeClient(kc))
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "quasar-nebula-1234", got.ReleaseName)
		})
	}
}

func TestFromFile_ConfigMapMissing(t *testing.T) {
	//nolint:staticcheck // SA1019: NewSimpleClientset is sufficient for Get
	kc := fake.NewSimpleClientset()
	_, err := FromFile[sample](t.Context(), "cm://astronomer/missing", WithKubeClient(kc))
	assert.Error(t, err)
}

func TestReadLimited(t *testing.T) {
	_, err := readLimited(strings.NewReader(strings.Repeat("a", MaxDocumentBytes+1)))
	assert.Error(t, err)

	data, err := readLimited(strings.NewReader("ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

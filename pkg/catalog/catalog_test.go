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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `
astroUnit:
  cpu: 1000
  memory: 4096
  pods: 5
  actualConns: 0.5
  airflowConns: 5
maxPodAu: 10
components:
  - name: scheduler
    au: {default: 1, limit: 4}
executors:
  - name: LocalExecutor
    components: [scheduler]
helm:
  baseDomain: example.com
  releaseName: platform
`

func TestDefault(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, int64(100), cat.AstroUnit.CPU)
	assert.Equal(t, int64(384), cat.AstroUnit.Memory)
	assert.Equal(t, float64(35), cat.MaxPodAU)
	assert.Equal(t, []string{ExecutorLocal, ExecutorCelery, ExecutorKubernetes}, cat.ExecutorNames())
	assert.False(t, cat.Elasticsearch.Configured())
	assert.False(t, cat.Helm.SingleNamespace)

	workers, ok := cat.FindComponent(ComponentWorkers)
	require.True(t, ok)
	require.Len(t, workers.Extra, 2)
	grace, ok := workers.Extra[0].Amount(AUTypeDefault)
	require.True(t, ok)
	assert.Equal(t, float64(600), grace)

	celery, ok := cat.FindExecutor(ExecutorCelery)
	require.True(t, ok)
	assert.True(t, celery.Has(ComponentRedis))
	assert.False(t, celery.Has("triggerer"))
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)

	a.Components[0].AU[AUTypeDefault] = 99
	assert.NotEqual(t, float64(99), b.Components[0].AU[AUTypeDefault])
}

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)

	assert.Equal(t, int64(5), cat.AstroUnit.Pods)
	assert.Equal(t, []string{ComponentScheduler}, cat.ComponentNames())

	_, err = Parse([]byte("astroUnit: [not, a, map]"))
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
}

func TestValidate(t *testing.T) {
	valid := func() *Catalog {
		cat, err := Parse([]byte(minimalCatalog))
		require.NoError(t, err)
		return cat
	}

	tests := []struct {
		name    string
		mutate  func(c *Catalog)
		wantErr string
	}{
		{
			name:   "valid catalog",
			mutate: func(c *Catalog) {},
		},
		{
			name:    "zero cpu per unit",
			mutate:  func(c *Catalog) { c.AstroUnit.CPU = 0 },
			wantErr: "astroUnit.cpu must be positive",
		},
		{
			name: "duplicate component",
			mutate: func(c *Catalog) {
				c.Components = append(c.Components, c.Components[0])
			},
			wantErr: `duplicate component "scheduler"`,
		},
		{
			name: "executor references unknown component",
			mutate: func(c *Catalog) {
				c.Executors[0].Components = append(c.Executors[0].Components, "redis")
			},
			wantErr: `executor "LocalExecutor" references unknown component "redis"`,
		},
		{
			name:    "missing default AU",
			mutate:  func(c *Catalog) { delete(c.Components[0].AU, AUTypeDefault) },
			wantErr: `component "scheduler" does not declare au.default`,
		},
		{
			name:    "negative AU",
			mutate:  func(c *Catalog) { c.Components[0].AU[AUTypeLimit] = -1 },
			wantErr: "au.limit must be a non-negative finite number",
		},
		{
			name:    "missing release name",
			mutate:  func(c *Catalog) { c.Helm.ReleaseName = "" },
			wantErr: "helm.releaseName is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := valid()
			tt.mutate(cat)
			err := cat.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cat := &Catalog{}
	err := cat.Validate()
	require.Error(t, err)

	var se *cnserrors.StructuredError
	require.ErrorAs(t, err, &se)
	problems, ok := se.Context["problems"].([]string)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(problems), 4)
}

func TestComponentDefinition_Size(t *testing.T) {
	comp := ComponentDefinition{Name: "scheduler", AU: map[string]float64{"default": 1.5}}

	size, err := comp.Size(AUTypeDefault)
	require.NoError(t, err)
	assert.Equal(t, 1.5, size)

	_, err = comp.Size("burst")
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
}

func TestExtraDefinition_JSON(t *testing.T) {
	var extra ExtraDefinition
	require.NoError(t, json.Unmarshal([]byte(`{"name":"replicas","default":1,"limit":10}`), &extra))
	assert.Equal(t, "replicas", extra.Name)
	assert.Equal(t, map[string]float64{"default": 1, "limit": 10}, extra.Amounts)

	out, err := json.Marshal(extra)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"replicas","default":1,"limit":10}`, string(out))

	err = json.Unmarshal([]byte(`{"name":"replicas","default":"one"}`), &extra)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		cat, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "astronomer", cat.Helm.ReleaseName)
	})

	t.Run("external file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o600))

		cat, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "platform", cat.Helm.ReleaseName)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
	})
}

func TestLoadSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(minimalCatalog))
	}))
	defer srv.Close()

	t.Run("http", func(t *testing.T) {
		cat, err := LoadSource(t.Context(), srv.URL+"/catalog.yaml")
		require.NoError(t, err)
		assert.InDelta(t, 10, cat.MaxPodAU, 0)
	})

	t.Run("http not found", func(t *testing.T) {
		_, err := LoadSource(t.Context(), srv.URL+"/missing.yaml")
		require.Error(t, err)
	})

	t.Run("local path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o600))

		cat, err := LoadSource(t.Context(), path)
		require.NoError(t, err)
		assert.Len(t, cat.Components, len(cat.ComponentNames()))
	})

	t.Run("empty uses embedded", func(t *testing.T) {
		cat, err := LoadSource(t.Context(), "")
		require.NoError(t, err)
		assert.NotEmpty(t, cat.Executors)
	})
}

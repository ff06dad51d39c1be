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

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Serve blocks until shutdown, so these tests cover its parts: build
// variables, catalog loading and the route table.

func TestConstants(t *testing.T) {
	assert.Equal(t, "airflow-values-api", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestLoadCatalog(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		cat, err := loadCatalog(t.Context(), "")
		require.NoError(t, err)
		assert.Contains(t, cat.ExecutorNames(), catalog.ExecutorCelery)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadCatalog(t.Context(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("astroUnit: {cpu: 0}"), 0o600))
		_, err := loadCatalog(t.Context(), path)
		require.Error(t, err)
	})
}

func testRoutes(t *testing.T) map[string]http.HandlerFunc {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return routes(cat)
}

func TestRouteConfiguration(t *testing.T) {
	r := testRoutes(t)
	assert.Len(t, r, 3)
	for _, path := range []string{"/v1/values", "/v1/constraints", "/v1/resources"} {
		assert.NotNil(t, r[path], path)
	}
}

func TestValuesEndpoint(t *testing.T) {
	h := testRoutes(t)["/v1/values"]

	body := `{"deployment": {"releaseName": "quasar-nebula-1234", "config": {"executor": "CeleryExecutor"}}}`
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/v1/values", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "registry.astronomer.local")
}

func TestValuesEndpoint_Concurrent(t *testing.T) {
	h := testRoutes(t)["/v1/values"]

	var wg sync.WaitGroup
	codes := make([]int, 20)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := `{"deployment": {"releaseName": "r", "config": {"executor": "LocalExecutor"}}}`
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/v1/values", strings.NewReader(body)))
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

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

package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/airflow-values/pkg/serializer"
)

const testDeployment = `
releaseName: quasar-nebula-1234
properties:
  - key: extra_au
    value: 2
config:
  executor: CeleryExecutor
  workers:
    replicas: 2
    resources:
      limits:
        cpu: 2000
        memory: 7680
`

// run executes the CLI with args and decodes the JSON written to a temp file.
func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	out := filepath.Join(t.TempDir(), "out.json")
	full := append([]string{name}, args...)
	full = append(full, "--output", out, "--format", "json")

	if err := newRootCmd().Run(t.Context(), full); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{"yaml", "yaml", serializer.FormatYAML, false},
		{"json", "json", serializer.FormatJSON, false},
		{"table", "table", serializer.FormatTable, false},
		{"xml", "xml", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(t.Context(), []string{"test"}))
		})
	}
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t,
		[]string{"values", "constraints", "resources", "normalize", "catalog", "image"}, names)
}

func TestValuesCmd(t *testing.T) {
	dep := writeFile(t, "deployment.yaml", testDeployment)
	direct := writeFile(t, "values.yaml", "nodeSelector:\n  pool: file\nextraEnv: [A]\n")

	doc, err := run(t, "values",
		"--deployment", dep,
		"--values", direct,
		"--set", "nodeSelector.pool=airflow",
		"--set", "webserver.replicas=3")
	require.NoError(t, err)

	assert.Equal(t, "CeleryExecutor", doc["executor"])
	assert.Equal(t, map[string]any{"pool": "airflow"}, doc["nodeSelector"])
	assert.Equal(t, []any{"A"}, doc["extraEnv"])

	registry := doc["registry"].(map[string]any)["connection"].(map[string]any)
	assert.Equal(t, "quasar-nebula-1234", registry["user"])
	assert.Equal(t, "registry.astronomer.local", registry["host"])

	workers := doc["workers"].(map[string]any)
	res := workers["resources"].(map[string]any)
	assert.Equal(t, res["limits"], res["requests"])
	assert.Equal(t, "2000m", res["limits"].(map[string]any)["cpu"])
	assert.InDelta(t, 2, workers["replicas"], 0)

	webserver := doc["webserver"].(map[string]any)
	assert.InDelta(t, 3, webserver["replicas"], 0)

	assert.Contains(t, doc, "quotas")
}

func TestValuesCmd_Errors(t *testing.T) {
	dep := writeFile(t, "deployment.yaml", testDeployment)

	tests := []struct {
		name string
		args []string
	}{
		{"missing deployment", []string{"values"}},
		{"deployment not found", []string{"values", "--deployment", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad set", []string{"values", "--deployment", dep, "--set", "novalue"}},
		{"bad catalog", []string{"--catalog", filepath.Join(t.TempDir(), "nope.yaml"), "values", "--deployment", dep}},
		{"unknown executor", []string{"values", "--deployment",
			writeFile(t, "bad.yaml", "releaseName: r\nconfig: {executor: DaskExecutor}\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestValuesCmd_UnknownFormat(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dep := writeFile(t, "deployment.yaml", testDeployment)
	err := newRootCmd().Run(t.Context(), []string{name, "values", "--deployment", dep, "--format", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestConstraintsCmd(t *testing.T) {
	dep := writeFile(t, "deployment.yaml", testDeployment)

	doc, err := run(t, "constraints", "--deployment", dep)
	require.NoError(t, err)

	assert.Contains(t, doc["values"], "quotas")
	assert.Contains(t, doc["limitRange"], "limits")

	summary := doc["summary"].(map[string]any)
	assert.Equal(t, "CeleryExecutor", summary["executor"])
	assert.InDelta(t, 2, summary["extraAu"], 0)
}

func TestResourcesCmd(t *testing.T) {
	doc, err := run(t, "resources")
	require.NoError(t, err)
	assert.Equal(t, "500m", doc["scheduler"].(map[string]any)["resources"].(map[string]any)["limits"].(map[string]any)["cpu"])

	doc, err = run(t, "resources", "--type", "limit", "--units=false")
	require.NoError(t, err)
	assert.InDelta(t, 3000, doc["scheduler"].(map[string]any)["resources"].(map[string]any)["limits"].(map[string]any)["cpu"], 0)

	_, err = run(t, "resources", "--type", "burst")
	require.Error(t, err)
}

func TestNormalizeCmd(t *testing.T) {
	dep := writeFile(t, "deployment.yaml", testDeployment)

	doc, err := run(t, "normalize", "--deployment", dep)
	require.NoError(t, err)

	want := map[string]any{
		"executor": "CeleryExecutor",
		"workers": map[string]any{
			"replicas": float64(2),
			"resources": map[string]any{
				"requests": map[string]any{"cpu": "2000m", "memory": "7680Mi"},
				"limits":   map[string]any{"cpu": "2000m", "memory": "7680Mi"},
			},
		},
	}
	assert.Equal(t, want, doc)
}

func TestCatalogCmd(t *testing.T) {
	doc, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, doc, "astroUnit")
	assert.Contains(t, doc, "executors")

	custom := writeFile(t, "catalog.yaml", `
astroUnit: {cpu: 1000, memory: 4096, pods: 5, actualConns: 0.5, airflowConns: 5}
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
`)
	doc, err = run(t, "--catalog", custom, "catalog")
	require.NoError(t, err)
	assert.Equal(t, "example.com", doc["helm"].(map[string]any)["baseDomain"])
}

func TestImageCmd(t *testing.T) {
	doc, err := run(t, "image", "--release", "quasar-nebula-1234", "--tag", "cli-9", "--tag", "cli-10,latest")
	require.NoError(t, err)

	assert.Equal(t, "cli-10", doc["latest"])
	assert.Equal(t, "cli-11", doc["next"])
	assert.Equal(t, "registry.astronomer.local/quasar-nebula-1234/airflow:cli-11", doc["reference"])

	_, err = run(t, "image")
	require.Error(t, err)
}

func TestNextImage(t *testing.T) {
	tests := []struct {
		name    string
		release string
		tags    []string
		want    *ImageInfo
		wantErr bool
	}{
		{
			name:    "no tags",
			release: "r",
			want:    &ImageInfo{Next: "cli-1", Reference: "registry.example.com/r/airflow:cli-1"},
		},
		{
			name:    "numeric ordering",
			release: "r",
			tags:    []string{"cli-2", "cli-12", "cli-3", "v1.0"},
			want:    &ImageInfo{Latest: "cli-12", Next: "cli-13", Reference: "registry.example.com/r/airflow:cli-13"},
		},
		{
			name:    "invalid release",
			release: "Not Valid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextImage("example.com", tt.release, tt.tags)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitTags([]string{"a, b", "", " c "}))
	assert.Nil(t, splitTags(nil))
}

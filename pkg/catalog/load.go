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
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/serializer"
	"sigs.k8s.io/yaml"
)

// EnvCatalogPath names the environment variable holding an external catalog path.
const EnvCatalogPath = "AIRFLOW_VALUES_CATALOG"

// maxCatalogSize bounds the size of an external catalog file.
const maxCatalogSize = 10 * 1024 * 1024

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Default returns a freshly parsed copy of the embedded catalog.
func Default() (*Catalog, error) {
	cat, err := Parse(defaultCatalog)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "embedded catalog is invalid", err)
	}
	return cat, nil
}

// Load reads a catalog from path, or returns the embedded default when path is
// empty. The result is validated before it is returned.
func Load(path string) (*Catalog, error) {
	if path == "" {
		slog.Debug("using embedded catalog")
		return Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
			"catalog file not accessible", err, map[string]any{"path": path})
	}
	if info.IsDir() {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"catalog path is a directory", map[string]any{"path": path})
	}
	if info.Size() > maxCatalogSize {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("catalog file exceeds %d bytes", maxCatalogSize),
			map[string]any{"path": path, "size": info.Size()})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
			"failed to read catalog file", err, map[string]any{"path": path})
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded catalog",
		"path", path,
		"components", len(cat.Components),
		"executors", len(cat.Executors))

	return cat, nil
}

// LoadSource reads a catalog from a local path, an http(s) URL or a
// cm://namespace/name ConfigMap. Local paths go through Load.
func LoadSource(ctx context.Context, source string, opts ...serializer.Option) (*Catalog, error) {
	if !isRemote(source) {
		return Load(source)
	}

	data, err := serializer.ReadSource(ctx, source, opts...)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.CodeOf(err),
			"failed to read catalog", err, map[string]any{"source": source})
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded catalog",
		"source", source,
		"components", len(cat.Components),
		"executors", len(cat.Executors))

	return cat, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, serializer.ConfigMapURIScheme) ||
		strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}

// Parse decodes a YAML or JSON catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to decode catalog", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

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
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/composer"
	"github.com/NVIDIA/airflow-values/pkg/defaults"
	"github.com/NVIDIA/airflow-values/pkg/logging"
	"github.com/NVIDIA/airflow-values/pkg/server"
)

const (
	name           = "airflow-values-api"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/airflow-values/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// The catalog is read once at startup from AIRFLOW_VALUES_CATALOG, or the
// embedded default when unset.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cat, err := loadCatalog(ctx, os.Getenv(catalog.EnvCatalogPath))
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(cat)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func loadCatalog(ctx context.Context, source string) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.CatalogLoadTimeout)
	defer cancel()

	cat, err := catalog.LoadSource(ctx, source)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded",
		"source", source,
		"components", cat.ComponentNames(),
		"executors", cat.ExecutorNames(),
		"singleNamespace", cat.Helm.SingleNamespace)

	return cat, nil
}

func routes(cat *catalog.Catalog) map[string]http.HandlerFunc {
	return composer.NewHandler(cat).Routes()
}

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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/defaults"
	"github.com/NVIDIA/airflow-values/pkg/deployment"
	"github.com/NVIDIA/airflow-values/pkg/serializer"
)

// Flag constructors return fresh flags so each command tree keeps its own
// parsed state.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination (default: stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name).`,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

func deploymentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "deployment",
		Aliases:  []string{"d"},
		Required: true,
		Usage: `Path/URI of the deployment record (YAML or JSON).
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig used for cm:// sources and outputs (default: KUBECONFIG, ~/.kube/config, in-cluster)",
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

func serializerOptions(cmd *cli.Command) []serializer.Option {
	var opts []serializer.Option
	if kc := cmd.String("kubeconfig"); kc != "" {
		opts = append(opts, serializer.WithKubeconfig(kc))
	}
	return opts
}

// loadCatalog reads the catalog named by --catalog, or the embedded default.
func loadCatalog(ctx context.Context, cmd *cli.Command) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.CatalogLoadTimeout)
	defer cancel()

	source := cmd.String("catalog")
	cat, err := catalog.LoadSource(ctx, source, serializerOptions(cmd)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %q: %w", source, err)
	}
	return cat, nil
}

// loadDeployment reads the deployment record named by --deployment.
func loadDeployment(ctx context.Context, cmd *cli.Command) (*deployment.Deployment, error) {
	path := cmd.String("deployment")
	d, err := serializer.FromFile[deployment.Deployment](ctx, path, serializerOptions(cmd)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployment from %q: %w", path, err)
	}
	return d, nil
}

// writeOutput serializes v to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"), serializerOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("failed to create output writer: %w", err)
	}
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	return ser.Serialize(ctx, v)
}

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

	"github.com/NVIDIA/airflow-values/pkg/composer"
	"github.com/NVIDIA/airflow-values/pkg/serializer"
	"github.com/NVIDIA/airflow-values/pkg/values"
)

func valuesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "values",
		EnableShellCompletion: true,
		Usage:                 "Compose the Helm values document for a deployment",
		Description: `Merges, lowest precedence first:
  - catalog base values
  - direct values (--values, then --set)
  - ingress, resources, limit range and constraints
  - registry and elasticsearch connections
  - the deployment's own configuration

Example:
  airflow-values values --deployment quasar-nebula-1234.yaml \
    --set nodeSelector.pool=airflow \
    --output cm://astronomer/quasar-nebula-1234-values`,
		Flags: []cli.Flag{
			deploymentFlag(),
			&cli.StringFlag{
				Name:  "values",
				Usage: "Path/URI of a values document applied as direct values",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Direct value override as dot.path=value (repeatable)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			direct, err := directValues(ctx, cmd)
			if err != nil {
				return err
			}

			cat, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}

			d, err := loadDeployment(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := composer.Compose(cat, d, direct)
			if err != nil {
				return fmt.Errorf("failed to compose values for %q: %w", d.ReleaseName, err)
			}

			slog.Debug("values composed", "release", d.ReleaseName, "keys", len(doc))
			return writeOutput(ctx, cmd, doc)
		},
	}
}

// directValues merges the --values document with the --set assignments.
func directValues(ctx context.Context, cmd *cli.Command) (values.Values, error) {
	set, err := values.ParseSet(cmd.StringSlice("set"))
	if err != nil {
		return nil, fmt.Errorf("invalid --set flag: %w", err)
	}

	var file values.Values
	if path := cmd.String("values"); path != "" {
		v, err := serializer.FromFile[values.Values](ctx, path, serializerOptions(cmd)...)
		if err != nil {
			return nil, fmt.Errorf("failed to load values from %q: %w", path, err)
		}
		file = *v
	}

	return values.Merge(file, set), nil
}

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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/resources"
)

func resourcesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resources",
		EnableShellCompletion: true,
		Usage:                 "Show per-component resources from the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Value: catalog.AUTypeDefault,
				Usage: "AU type to size components with (e.g. default, limit, minimum)",
			},
			&cli.BoolFlag{
				Name:  "units",
				Value: true,
				Usage: "Render millicores and MiB with units; --units=false prints raw numbers",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cat, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}

			auType := cmd.String("type")
			doc, err := resources.DefaultResources(cat, auType, cmd.Bool("units"))
			if err != nil {
				return fmt.Errorf("failed to map resources for AU type %q: %w", auType, err)
			}

			return writeOutput(ctx, cmd, doc)
		},
	}
}

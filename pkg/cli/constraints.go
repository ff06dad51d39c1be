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

	"github.com/NVIDIA/airflow-values/pkg/composer"
)

func constraintsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "constraints",
		EnableShellCompletion: true,
		Usage:                 "Show resource quota, limit range and pool sizing for a deployment",
		Description: `Prints the constraints block with the totals it was derived from:
primary and sidecar resources, extra capacity, quota pods and the pgbouncer
pool sizes. In single-namespace mode only an empty document is printed.`,
		Flags: []cli.Flag{
			deploymentFlag(),
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

			d, err := loadDeployment(ctx, cmd)
			if err != nil {
				return err
			}

			resp, err := composer.Constraints(cat, d)
			if err != nil {
				return fmt.Errorf("failed to calculate constraints for %q: %w", d.ReleaseName, err)
			}

			return writeOutput(ctx, cmd, resp)
		},
	}
}

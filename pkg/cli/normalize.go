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

	"github.com/NVIDIA/airflow-values/pkg/overrides"
)

func normalizeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "normalize",
		EnableShellCompletion: true,
		Usage:                 "Show the deployment's own configuration in canonical form",
		Description: `Resource leaves get their units (m, Mi) and requests are made equal
to limits. This is the top layer of the values document.`,
		Flags: []cli.Flag{
			deploymentFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			d, err := loadDeployment(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := overrides.Normalize(d.Config)
			if err != nil {
				return fmt.Errorf("failed to normalize configuration of %q: %w", d.ReleaseName, err)
			}

			return writeOutput(ctx, cmd, doc)
		},
	}
}

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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/airflow-values/pkg/deployment"
)

// ImageInfo describes the next image a release would push.
type ImageInfo struct {
	Latest    string `json:"latest,omitempty"`
	Next      string `json:"next"`
	Reference string `json:"reference"`
}

func imageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "image",
		EnableShellCompletion: true,
		Usage:                 "Compute the next image tag and registry reference for a release",
		Description: `Given the tags already pushed for a release, prints the latest cli-N
tag, the next one and the full registry reference.

Example:
  airflow-values image --release quasar-nebula-1234 --tag cli-1 --tag cli-2`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "release",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "Deployment release name",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Existing image tag (repeatable, or comma separated)",
			},
			&cli.StringFlag{
				Name:  "base-domain",
				Usage: "Platform base domain (default: catalog helm.baseDomain)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			baseDomain := cmd.String("base-domain")
			if baseDomain == "" {
				cat, err := loadCatalog(ctx, cmd)
				if err != nil {
					return err
				}
				baseDomain = cat.Helm.BaseDomain
			}

			info, err := nextImage(baseDomain, cmd.String("release"), splitTags(cmd.StringSlice("tag")))
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, info)
		},
	}
}

func nextImage(baseDomain, release string, tags []string) (*ImageInfo, error) {
	latest := deployment.FindLatestTag(tags)
	next, err := deployment.GenerateNextTag(latest)
	if err != nil {
		return nil, fmt.Errorf("failed to generate next tag after %q: %w", latest, err)
	}

	ref, err := deployment.ImageReference(baseDomain, release, next)
	if err != nil {
		return nil, fmt.Errorf("invalid image reference for %q: %w", release, err)
	}

	return &ImageInfo{
		Latest:    latest,
		Next:      next,
		Reference: ref.String(),
	}, nil
}

func splitTags(in []string) []string {
	var out []string
	for _, v := range in {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

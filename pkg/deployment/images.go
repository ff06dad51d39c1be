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

package deployment

import (
	"fmt"
	"strconv"
	"strings"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/distribution/reference"
)

// Image tag conventions for deployment images pushed by the CLI.
const (
	ImageTagPrefix      = "cli-"
	DefaultNextImageTag = ImageTagPrefix + "1"
	imageName           = "airflow"
)

// FindLatestTag returns the CLI tag with the highest build number, or "" when
// tags has none. Build numbers compare numerically, so cli-10 beats cli-9.
func FindLatestTag(tags []string) string {
	latest := ""
	best := -1
	for _, tag := range tags {
		n, ok := tagNumber(tag)
		if !ok {
			continue
		}
		if n > best {
			best = n
			latest = tag
		}
	}
	return latest
}

// GenerateNextTag returns the tag following latest.
func GenerateNextTag(latest string) (string, error) {
	if latest == "" {
		return DefaultNextImageTag, nil
	}
	n, ok := tagNumber(latest)
	if !ok {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("image tag %q is not a %sN tag", latest, ImageTagPrefix),
			map[string]any{"value": latest})
	}
	return ImageTagPrefix + strconv.Itoa(n+1), nil
}

// ImageReference returns the platform registry reference for a deployment
// image: registry.<baseDomain>/<releaseName>/airflow:<tag>.
func ImageReference(baseDomain, releaseName, tag string) (reference.NamedTagged, error) {
	raw := fmt.Sprintf("registry.%s/%s/%s", baseDomain, releaseName, imageName)
	named, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid image repository", err, map[string]any{"value": raw})
	}
	tagged, err := reference.WithTag(named, tag)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid image tag", err, map[string]any{"value": tag})
	}
	return tagged, nil
}

func tagNumber(tag string) (int, bool) {
	suffix, ok := strings.CutPrefix(tag, ImageTagPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

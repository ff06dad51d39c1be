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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestTag(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"empty", nil, ""},
		{"no cli tags", []string{"latest", "v1"}, ""},
		{"single", []string{"cli-1"}, "cli-1"},
		{"numeric order", []string{"cli-9", "cli-10", "cli-2"}, "cli-10"},
		{"ignores others", []string{"latest", "cli-3", "cli-x", "release-99"}, "cli-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindLatestTag(tt.tags))
		})
	}
}

func TestGenerateNextTag(t *testing.T) {
	next, err := GenerateNextTag("")
	require.NoError(t, err)
	assert.Equal(t, DefaultNextImageTag, next)

	next, err = GenerateNextTag("cli-9")
	require.NoError(t, err)
	assert.Equal(t, "cli-10", next)

	_, err = GenerateNextTag("latest")
	assert.Error(t, err)
}

func TestImageReference(t *testing.T) {
	ref, err := ImageReference("astronomer.example.com", "quasar-nebula-1234", "cli-3")
	require.NoError(t, err)
	assert.Equal(t, "registry.astronomer.example.com/quasar-nebula-1234/airflow:cli-3", ref.String())
	assert.Equal(t, "cli-3", ref.Tag())

	_, err = ImageReference("example.com", "Bad_Release", "cli-1")
	assert.Error(t, err)

	_, err = ImageReference("example.com", "ok", "bad tag")
	assert.Error(t, err)
}

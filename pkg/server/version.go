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

package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is served when the client does not ask for one.
	DefaultAPIVersion = "v1"

	// APIVersionHeader carries the negotiated version on every response.
	APIVersionHeader = "X-API-Version"

	vendorMediaPrefix = "application/vnd.nvidia.airflow-values."
)

var supportedAPIVersions = map[string]struct{}{
	"v1": {},
}

// negotiateAPIVersion picks the first supported version named by a vendor
// media type in the Accept header, e.g.
// application/vnd.nvidia.airflow-values.v1+json. Anything else falls back
// to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, accept := range r.Header.Values("Accept") {
		for _, mediaType := range strings.Split(accept, ",") {
			if v, ok := vendorVersion(mediaType); ok && isValidAPIVersion(v) {
				return v
			}
		}
	}
	return DefaultAPIVersion
}

// vendorVersion extracts "v1" from "application/vnd.nvidia.airflow-values.v1+json;q=0.9".
func vendorVersion(mediaType string) (string, bool) {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	rest, ok := strings.CutPrefix(strings.TrimSpace(mediaType), vendorMediaPrefix)
	if !ok {
		return "", false
	}
	version, _, _ := strings.Cut(rest, "+")
	return version, version != ""
}

func isValidAPIVersion(version string) bool {
	_, ok := supportedAPIVersions[version]
	return ok
}

// SetAPIVersionHeader records the negotiated version on the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(APIVersionHeader, version)
}

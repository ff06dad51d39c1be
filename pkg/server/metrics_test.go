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
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteLabel(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/values", nil)
	assert.Equal(t, "unmatched", routeLabel(r))

	r.Pattern = "/v1/values"
	assert.Equal(t, "/v1/values", routeLabel(r))
}

func TestMetricsMiddleware_LabelsByRoute(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/v1/constraints": okHandler}))
	s.setReady(true)
	h := s.httpServer.Handler

	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/v1/constraints", "200"))
	unknownBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/", "200"))

	for range 3 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/constraints", nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	assert.Equal(t, before+3, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/v1/constraints", "200")))
	assert.Equal(t, unknownBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/", "200")))
	assert.Zero(t, testutil.ToFloat64(requestsInFlight))
}

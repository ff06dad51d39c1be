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
	"time"

	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/serializer"
)

// Probe states reported by /health and /ready.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// HealthResponse is the body of both probe endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}

// handleHealth is the liveness probe. It succeeds as long as the process can
// serve HTTP, regardless of readiness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !probeMethod(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.probe(StatusHealthy, ""))
}

// handleReady is the readiness probe. The server is ready between Start and
// Shutdown, which is after the catalog has been loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !probeMethod(w, r) {
		return
	}

	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable,
			s.probe(StatusNotReady, "server is starting or shutting down"))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.probe(StatusReady, ""))
}

func (s *Server) probe(status, reason string) HealthResponse {
	now := time.Now().UTC()
	resp := HealthResponse{
		Status:    status,
		Version:   s.config.Version,
		Timestamp: now,
		Reason:    reason,
	}

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started.IsZero() {
		resp.Uptime = now.Sub(started).Truncate(time.Second).String()
	}
	return resp
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// probeMethod accepts GET and HEAD and answers anything else with 405.
func probeMethod(w http.ResponseWriter, r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return true
	}
	w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
	WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}

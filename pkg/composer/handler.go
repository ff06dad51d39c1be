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

package composer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NVIDIA/airflow-values/pkg/catalog"
	"github.com/NVIDIA/airflow-values/pkg/constraints"
	"github.com/NVIDIA/airflow-values/pkg/defaults"
	"github.com/NVIDIA/airflow-values/pkg/deployment"
	cnserrors "github.com/NVIDIA/airflow-values/pkg/errors"
	"github.com/NVIDIA/airflow-values/pkg/resources"
	"github.com/NVIDIA/airflow-values/pkg/serializer"
	"github.com/NVIDIA/airflow-values/pkg/server"
	"github.com/NVIDIA/airflow-values/pkg/values"
)

// Request is the body of values and constraints requests. JSON and YAML are
// both accepted.
type Request struct {
	Deployment *deployment.Deployment `json:"deployment"`
	Values     values.Values          `json:"values,omitempty"`
}

// ConstraintsResponse carries the constraints values block together with
// the totals it was derived from. Summary is omitted in single-namespace mode.
type ConstraintsResponse struct {
	Values     values.Values       `json:"values"`
	LimitRange values.Values       `json:"limitRange"`
	Summary    *constraints.Result `json:"summary,omitempty"`
}

// Constraints returns the constraints block, the limit range and the sizing
// summary for d.
func Constraints(cat *catalog.Catalog, d *deployment.Deployment) (*ConstraintsResponse, error) {
	resp := &ConstraintsResponse{
		Values:     values.Values{},
		LimitRange: constraints.LimitRange(cat),
	}
	if cat.Helm.SingleNamespace {
		return resp, nil
	}

	result, err := constraints.Calculate(d, cat)
	if err != nil {
		return nil, err
	}
	resp.Values = result.Values()
	resp.Summary = result
	return resp, nil
}

// Handler serves values computations against one immutable catalog.
type Handler struct {
	catalog *catalog.Catalog
}

// NewHandler returns a Handler for cat.
func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{catalog: cat}
}

// Routes returns the API routes served by h.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/values":      h.HandleValues,
		"/v1/constraints": h.HandleConstraints,
		"/v1/resources":   h.HandleResources,
	}
}

// HandleValues composes the values document for the posted deployment.
func (h *Handler) HandleValues(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	doc, err := Compose(h.catalog, req.Deployment, req.Values)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to compose values",
			map[string]any{"release": req.Deployment.ReleaseName})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, doc)
}

// HandleConstraints returns quotas and pool sizing for the posted deployment.
func (h *Handler) HandleConstraints(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	resp, err := Constraints(h.catalog, req.Deployment)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to calculate constraints",
			map[string]any{"release": req.Deployment.ReleaseName})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleResources returns the catalog's per-component resources.
//
// Query parameters:
//   - type: AU type to size with (default "default")
//   - units: "false" returns raw millicores and MiB (default true)
func (h *Handler) HandleResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	auType := r.URL.Query().Get("type")
	if auType == "" {
		auType = catalog.AUTypeDefault
	}

	includeUnits := true
	if raw := r.URL.Query().Get("units"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
				"units must be a boolean", false, map[string]any{"units": raw})
			return
		}
		includeUnits = v
	}

	doc, err := resources.DefaultResources(h.catalog, auType, includeUnits)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to map resources", map[string]any{"type": auType})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, doc)
}

// decode reads a POSTed Request. On failure the error response has already
// been written.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValuesHandlerTimeout)
	defer cancel()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Failed to read request body", false, map[string]any{"error": err.Error()})
		return nil, false
	}
	if ctx.Err() != nil {
		server.WriteError(w, r, http.StatusGatewayTimeout, cnserrors.ErrCodeTimeout,
			"Request timed out", true, nil)
		return nil, false
	}

	var req Request
	if err := serializer.Unmarshal(body, &req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return nil, false
	}
	if req.Deployment == nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"deployment is required", false, nil)
		return nil, false
	}

	slog.Debug("decoded request",
		"release", req.Deployment.ReleaseName,
		"executor", req.Deployment.Executor(""),
		"directKeys", len(req.Values))

	return &req, true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{allowed},
		})
}

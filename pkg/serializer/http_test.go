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

package serializer

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]any{"pods": 12})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 12, got["pods"], 0)
}

func TestRespondJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"bad": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestNewHttpReader(t *testing.T) {
	r := NewHttpReader()
	assert.Equal(t, HttpReaderUserAgent, r.UserAgent)
	require.NotNil(t, r.Client)

	custom := &http.Client{}
	r = NewHttpReader(WithClient(custom), WithTotalTimeout(5*time.Second), WithUserAgent("test"))
	assert.Same(t, custom, r.Client)
	assert.Equal(t, 5*time.Second, r.Client.Timeout)
	assert.Equal(t, "test", r.UserAgent)

	r = NewHttpReader(WithInsecureSkipVerify(true))
	tr, ok := r.Client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestHttpReader_ReadWithContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("astroUnit: {}"))
		case "/slow":
			<-r.Context().Done()
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	r := NewHttpReader()

	data, err := r.ReadWithContext(t.Context(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "astroUnit: {}", string(data))

	_, err = r.ReadWithContext(t.Context(), srv.URL+"/fail")
	assert.Error(t, err)

	_, err = r.ReadWithContext(t.Context(), "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = r.ReadWithContext(ctx, srv.URL+"/slow")
	assert.Error(t, err)
}

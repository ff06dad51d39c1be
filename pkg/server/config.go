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
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/airflow-values/pkg/defaults"
	"golang.org/x/time/rate"
)

// Environment variables read by NewConfig.
const (
	EnvAddress         = "ADDRESS"
	EnvPort            = "PORT"
	EnvRateLimit       = "RATE_LIMIT"
	EnvRateLimitBurst  = "RATE_LIMIT_BURST"
	EnvMaxBodyBytes    = "MAX_BODY_BYTES"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Config is the listener, limits and timeouts of a Server.
type Config struct {
	Name    string
	Version string

	// Handlers maps mux patterns to API handlers, each wrapped with the
	// middleware chain.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// RateLimit is requests per second across all API routes.
	RateLimit      rate.Limit
	RateLimitBurst int

	// MaxBodyBytes caps request bodies; zero disables the cap.
	MaxBodyBytes int64

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the defaults with environment overrides applied.
// Values that do not parse, or are out of range, are logged and ignored.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		MaxBodyBytes:      defaults.ServerMaxBodyBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if addr, ok := os.LookupEnv(EnvAddress); ok {
		cfg.Address = addr
	}
	if port, ok := envInt(EnvPort, 1, 65535); ok {
		cfg.Port = int(port)
	}
	if limit, ok := envInt(EnvRateLimit, 1, 1_000_000); ok {
		cfg.RateLimit = rate.Limit(limit)
	}
	if burst, ok := envInt(EnvRateLimitBurst, 1, 1_000_000); ok {
		cfg.RateLimitBurst = int(burst)
	}
	if size, ok := envInt(EnvMaxBodyBytes, 0, 64<<20); ok {
		cfg.MaxBodyBytes = size
	}
	// match the pod's termination grace period
	if seconds, ok := envInt(EnvShutdownTimeout, 1, 3600); ok {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}

// envInt reads an integer in [lo, hi] from the environment.
func envInt(key string, lo, hi int64) (int64, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < lo || n > hi {
		slog.Warn("ignoring invalid server setting", "env", key, "value", raw, "min", lo, "max", hi)
		return 0, false
	}
	return n, true
}

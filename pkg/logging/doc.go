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

// Package logging configures log/slog for the airflow-values binaries.
//
// Every entry is JSON on stderr and carries the module and version it was
// emitted from. The level comes from LOG_LEVEL (debug, info, warn, error;
// case-insensitive, unknown values mean info). At debug level entries also
// carry their source location.
//
//	logging.SetDefaultStructuredLogger("airflow-values", version)
//	slog.Info("composed values", "release", d.ReleaseName, "layers", n)
//
// The CLI overrides the environment with --log-level through
// SetDefaultStructuredLoggerWithLevel. NewLogLogger bridges slog into
// APIs that still take a *log.Logger, such as http.Server.ErrorLog.
package logging

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

package catalog

// Executor names.
const (
	ExecutorLocal      = "LocalExecutor"
	ExecutorCelery     = "CeleryExecutor"
	ExecutorKubernetes = "KubernetesExecutor"
)

// Component names.
const (
	ComponentScheduler = "scheduler"
	ComponentWorkers   = "workers"
	ComponentWebserver = "webserver"
	ComponentFlower    = "flower"
	ComponentRedis     = "redis"
	ComponentPgbouncer = "pgbouncer"
	ComponentStatsd    = "statsd"
)

// AU types every component is expected to declare.
const (
	AUTypeDefault = "default"
	AUTypeLimit   = "limit"
)

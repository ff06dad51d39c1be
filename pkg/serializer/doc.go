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

// Package serializer reads and writes values documents and their inputs.
//
// Output goes to stdout, a file, or a ConfigMap (cm://namespace/name) as
// JSON, YAML, or a flattened key/value table:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, output)
//	defer w.Close()
//	if err := w.Serialize(ctx, doc); err != nil {
//	    return err
//	}
//
// Input is read from a local path, an http(s) URL, or a ConfigMap:
//
//	d, err := serializer.FromFile[deployment.Deployment](ctx, "cm://astronomer/quasar-nebula-1234")
//
// JSON and YAML input are both decoded through sigs.k8s.io/yaml so that json
// struct tags and custom JSON unmarshalers apply to either.
//
// HTTP handlers reply through RespondJSON, which encodes into a buffer before
// touching headers so a failed encode never leaves a partial response.
package serializer

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
	"github.com/NVIDIA/airflow-values/pkg/k8s/client"
)

// Option configures where ConfigMap and http(s) sources are read from or
// written to.
type Option func(*options)

type options struct {
	kubeClient client.Interface
	kubeconfig string
	httpReader *HttpReader
}

// WithKubeClient uses c for ConfigMap access instead of discovering one.
func WithKubeClient(c client.Interface) Option {
	return func(o *options) {
		o.kubeClient = c
	}
}

// WithKubeconfig builds the Kubernetes client from the given kubeconfig.
func WithKubeconfig(path string) Option {
	return func(o *options) {
		o.kubeconfig = path
	}
}

// WithHttpReader uses r to fetch http(s) sources.
func WithHttpReader(r *HttpReader) Option {
	return func(o *options) {
		o.httpReader = r
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// kube returns the injected client or one built from the kubeconfig.
func (o *options) kube() (client.Interface, error) {
	if o.kubeClient != nil {
		return o.kubeClient, nil
	}
	var (
		c   client.Interface
		err error
	)
	if o.kubeconfig != "" {
		c, _, err = client.GetKubeClientWithConfig(o.kubeconfig)
	} else {
		c, _, err = client.GetKubeClient()
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (o *options) http() *HttpReader {
	if o.httpReader != nil {
		return o.httpReader
	}
	return NewHttpReader()
}

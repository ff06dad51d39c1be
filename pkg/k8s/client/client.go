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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is an alias for kubernetes.Interface so callers and tests can
// pass fake clientsets.
type Interface = kubernetes.Interface

type cachedClient struct {
	client Interface
	config *rest.Config
	err    error
}

var (
	mu    sync.Mutex
	cache = map[string]*cachedClient{}
)

// GetKubeClient returns the shared client built from the discovered
// kubeconfig. The first result, error included, is cached.
func GetKubeClient() (Interface, *rest.Config, error) {
	return GetKubeClientWithConfig("")
}

// GetKubeClientWithConfig returns the shared client for the given kubeconfig
// path. An empty path means discovery (see ResolveKubeconfig).
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if c, ok := cache[kubeconfig]; ok {
		return c.client, c.config, c.err
	}

	c := &cachedClient{}
	var cs *kubernetes.Clientset
	cs, c.config, c.err = BuildKubeClient(kubeconfig)
	if c.err == nil {
		c.client = cs
	}
	cache[kubeconfig] = c
	return c.client, c.config, c.err
}

// ResolveKubeconfig returns the kubeconfig path to use: the argument, then
// KUBECONFIG, then ~/.kube/config when it exists. An empty result means
// in-cluster configuration.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient creates a new, uncached client.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var (
		config *rest.Config
		err    error
	)

	path := ResolveKubeconfig(kubeconfig)
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

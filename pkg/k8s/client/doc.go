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

// Package client provides the Kubernetes client used to store and load
// snapshots in ConfigMaps.
//
// GetKubeClient builds the client once per process and caches it:
//
//	cs, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// The kubeconfig is taken from, in order: an explicit path passed to
// GetKubeClientWithConfig, the KUBECONFIG variable, ~/.kube/config. Without
// any of them the in-cluster service account is used, so hostprobe can run
// as a Pod and publish its snapshot to a ConfigMap.
package client

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

// Package defaults provides centralized configuration constants for hostprobe.
//
// This package defines timeout values and size limits used across the
// codebase. Centralizing these values ensures consistency and makes tuning
// easier.
//
// # Categories
//
//   - Analysis client timeouts: For the outbound text-analysis request
//   - HTTP client timeouts: For fetching snapshots from http(s) URLs
//   - ConfigMap timeouts: For Kubernetes ConfigMap output and input
//   - Command timeouts: For subprocesses spawned by probes
//   - Limits: Payload ceiling, process count, token budget
//
// # Usage
//
//	import "github.com/NVIDIA/hostprobe/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
//	defer cancel()
//
// Host probes deliberately have no timeout of their own; only the remote
// analysis call and subprocesses are bounded.
package defaults

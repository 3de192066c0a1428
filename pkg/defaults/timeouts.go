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

package defaults

import "time"

// Analysis client timeouts for the outbound text-analysis request.
const (
	// AnalysisTimeout is the total time budget for one analysis request,
	// including connection setup and reading the response body.
	AnalysisTimeout = 60 * time.Second

	// AnalysisConnectTimeout is the timeout for establishing the connection.
	AnalysisConnectTimeout = 10 * time.Second

	// AnalysisTLSHandshakeTimeout is the timeout for the TLS handshake.
	AnalysisTLSHandshakeTimeout = 10 * time.Second
)

// HTTP client timeouts for fetching remote snapshots.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second

	// ConfigMapReadTimeout is the timeout for reading a snapshot back from a ConfigMap.
	ConfigMapReadTimeout = 15 * time.Second
)

// Command timeouts for subprocesses spawned by probes.
const (
	// ProgramListTimeout bounds the package-manager listing subprocess.
	// Probes otherwise inherit whatever latency the OS query has.
	ProgramListTimeout = 2 * time.Minute
)

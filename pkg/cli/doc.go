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

// Package cli implements the command-line interface for the hostprobe tool.
//
// # Overview
//
// hostprobe collects a snapshot of the local machine and can ask a language
// model to analyze it. Every snapshot has five sections (system, hardware,
// programs, network, processes); a section whose probe failed carries an
// {"error": "<reason>"} marker instead of data.
//
// # Commands
//
// snapshot - Capture a host snapshot (default command):
//
//	hostprobe snapshot [--output FILE|cm://ns/name] [--format json|yaml|table] [--summary]
//
// Output defaults to JSON on stdout. With --summary only a short localized
// summary is printed, unless --output is also given.
//
// analyze - Send a snapshot for analysis:
//
//	hostprobe analyze [--api-key KEY] [--prompt TEXT] [--snapshot FILE] [--language en|pt-BR]
//
// Prints the answer on stdout, or "analysis unavailable" on stderr.
//
// # Global Flags
//
//	--config      Config file (default: $HOME/.hostprobe.yaml or ./.hostprobe.yaml)
//	--log-level   Log level: debug, info, warn, error
//	--quiet       Only log errors
//	--help, -h    Show command help
//	--version, -v Show version information
//
// # Environment Variables
//
//	HOSTPROBE_*        Any config key, for example HOSTPROBE_MODEL
//	ANTHROPIC_API_KEY  API key for analyze
//	LOG_LEVEL          Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG         Kubeconfig for cm:// locations
//
// # Exit Codes
//
//	0  Collection succeeded, even with failed sections or no analysis answer
//	1  Invalid flags, unreadable config or unwritable output
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/hostprobe/pkg/cli.version=1.0.0'"
package cli

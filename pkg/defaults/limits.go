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

// Payload and record limits.
const (
	// PayloadCeiling is the maximum serialized snapshot size, in bytes, that is
	// sent to the analysis service unmodified. Larger snapshots are summarized.
	PayloadCeiling = 50_000

	// MaxProcesses is the number of top CPU consumers kept in the processes section.
	MaxProcesses = 20

	// AnalysisMaxTokens is the default completion token budget for analysis.
	AnalysisMaxTokens = 4000

	// MaxResponseBytes caps how much of an analysis response body is read.
	MaxResponseBytes = 4 << 20
)

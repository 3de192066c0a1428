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

// Package analyzer prepares a host snapshot for remote analysis and sends it
// to a Messages-style language model endpoint.
//
// Shaping keeps the request within a size ceiling: a snapshot whose JSON form
// exceeds [defaults.PayloadCeiling] bytes is replaced by a [Summary] carrying
// only OS identity, CPU count, memory and per-partition usage.
//
//	payload, err := analyzer.Shape(snap, "")
//	if err != nil {
//	    return err
//	}
//	answer, ok := analyzer.NewClient().Analyze(ctx, apiKey, payload)
//	if !ok {
//	    fmt.Fprintln(os.Stderr, "analysis unavailable")
//	}
//
// Analysis failures never surface as errors. [Client.Analyze] logs the cause
// with a structured error code and reports the answer as absent.
package analyzer

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

package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess     = "success"
	outcomeUnavailable = "unavailable"
)

var (
	analysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostprobe_analysis_requests_total",
			Help: "Total number of analysis requests by outcome",
		},
		[]string{"outcome"}, // success or unavailable
	)

	analysisRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostprobe_analysis_request_duration_seconds",
			Help:    "Time taken by the remote analysis request",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60},
		},
	)

	analysisPayloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostprobe_analysis_payload_bytes",
			Help:    "Size of the message content sent for analysis",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 8),
		},
	)
)

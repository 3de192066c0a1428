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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

var (
	snapshotCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostprobe_snapshot_collection_duration_seconds",
			Help:    "Time taken to collect a complete host snapshot",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	snapshotCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostprobe_snapshot_collector_duration_seconds",
			Help:    "Time taken by individual section collectors",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"section"},
	)

	snapshotSectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostprobe_snapshot_sections_total",
			Help: "Total number of collected sections by outcome",
		},
		[]string{"section", "outcome"}, // ok or failed
	)

	snapshotFailedSections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostprobe_snapshot_failed_sections",
			Help: "Number of failed sections in the last collected snapshot",
		},
	)
)

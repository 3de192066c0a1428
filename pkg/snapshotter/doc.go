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

// Package snapshotter captures a point-in-time record of the current host.
//
// # Types
//
// HostSnapshotter: production implementation that collects from the current host
//
//	type HostSnapshotter struct {
//	    Version    string                // Snapshotter version
//	    Factory    collector.Factory     // Collector factory (optional)
//	    Serializer serializer.Serializer // Output serializer (optional)
//	}
//
// Snapshot: the captured record, one field per section
//
//	type Snapshot struct {
//	    System    measurement.Section[measurement.SystemInfo]
//	    Hardware  measurement.Section[measurement.HardwareInfo]
//	    Programs  measurement.Section[[]string]
//	    Network   measurement.Section[measurement.NetworkInfo]
//	    Processes measurement.Section[[]measurement.Process]
//	}
//
// # Usage
//
// Collect and inspect:
//
//	hs := &snapshotter.HostSnapshotter{Version: "v1.0.0"}
//	snap := hs.Collect(ctx)
//	for _, name := range snap.Failed() {
//	    fmt.Println("unavailable:", name)
//	}
//
// Collect and write to a file:
//
//	ser, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "host.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hs := &snapshotter.HostSnapshotter{Version: "v1.0.0", Serializer: ser}
//	if err := hs.Measure(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Partial Results
//
// Collectors run sequentially in a fixed order. A collector error never
// aborts the run: the section becomes Failed and the rest are still
// collected, so a snapshot always carries all five sections. A cancelled
// context turns every section collected after cancellation into Failed.
// Running Collect again overwrites every section.
//
// # Observability
//
// The snapshotter exports Prometheus metrics:
//   - hostprobe_snapshot_collection_duration_seconds: total collection time
//   - hostprobe_snapshot_collector_duration_seconds{section}: per-collector timing
//   - hostprobe_snapshot_sections_total{section,outcome}: ok and failed sections
//   - hostprobe_snapshot_failed_sections: failed sections in the last run
//
// Every run logs with a random run_id attribute so the lines of one
// collection can be correlated.
package snapshotter

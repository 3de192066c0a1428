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

// Package collector defines the probe contract used to build host snapshots.
//
// # Core Interface
//
// Every probe implements a single generic method:
//
//	type Collector[T any] interface {
//	    Collect(ctx context.Context) (T, error)
//	}
//
// A probe checks ctx before touching the host and returns an error only when
// it cannot produce a meaningful payload. Individual fields that cannot be
// read degrade to nil or are omitted instead.
//
// # Factory Pattern
//
// The Factory interface abstracts probe creation so the snapshotter can be
// tested with fakes:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithMaxProcesses(10),
//	)
//	hw, err := factory.CreateHardwareCollector().Collect(ctx)
//
// # Subpackages
//
//   - collector/system - OS identity (gopsutil host)
//   - collector/hardware - CPU, memory and disks (gopsutil cpu, mem, disk; sysfs)
//   - collector/programs - installed programs (dpkg, /Applications)
//   - collector/network - interface addresses (gopsutil net)
//   - collector/processes - top CPU consumers (gopsutil process)
//   - collector/file - line-oriented file parser shared by probes
//
// Each subpackage reads the host through a small Provider interface whose
// default implementation is backed by gopsutil.
package collector

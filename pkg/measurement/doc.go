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

// Package measurement defines the payload of every host snapshot section and
// the Section type that records whether the probe behind it succeeded.
//
// # Sections
//
// A snapshot has five sections, identified by Name:
//   - system: OS identity (SystemInfo)
//   - hardware: CPU, memory and disks (HardwareInfo)
//   - programs: installed program names ([]string)
//   - network: interface addresses (NetworkInfo)
//   - processes: top CPU consumers ([]Process)
//
// # Ok and Failed
//
// Section[T] is a two-state variant:
//
//	s := measurement.Ok(measurement.NetworkInfo{Interfaces: ifaces})
//	f := measurement.Failed[measurement.NetworkInfo](err)
//
// An Ok section serializes as its payload. A Failed section serializes as a
// single-key object:
//
//	{"error": "failed to list network interfaces: permission denied"}
//
// Both JSON and YAML decoding recognise that shape, so a saved snapshot
// reloads into the same Section values.
//
// # Field-level degradation
//
// Fields that a probe could not read are nil pointers and serialize as null.
// OptionalString and Finite help adapters produce values that always
// serialize.
package measurement

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
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

// ErrNotCollected is the reason carried by sections of a snapshot that has
// not been through a collection run yet.
var ErrNotCollected = errors.New("not collected")

// ErrMissingSection is the reason given to sections absent from a decoded snapshot.
var ErrMissingSection = errors.New("section missing from snapshot")

// Snapshot is one host record with exactly five sections, each either Ok
// with its payload or Failed with a reason.
type Snapshot struct {
	System    measurement.Section[measurement.SystemInfo]   `json:"system" yaml:"system"`
	Hardware  measurement.Section[measurement.HardwareInfo] `json:"hardware" yaml:"hardware"`
	Programs  measurement.Section[[]string]                 `json:"programs" yaml:"programs"`
	Network   measurement.Section[measurement.NetworkInfo]  `json:"network" yaml:"network"`
	Processes measurement.Section[[]measurement.Process]    `json:"processes" yaml:"processes"`
}

// NewSnapshot creates a snapshot whose sections are all Failed with ErrNotCollected.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		System:    measurement.Failed[measurement.SystemInfo](ErrNotCollected),
		Hardware:  measurement.Failed[measurement.HardwareInfo](ErrNotCollected),
		Programs:  measurement.Failed[[]string](ErrNotCollected),
		Network:   measurement.Failed[measurement.NetworkInfo](ErrNotCollected),
		Processes: measurement.Failed[[]measurement.Process](ErrNotCollected),
	}
}

// Outcomes maps every section name to its failure, or nil when the section is Ok.
func (s *Snapshot) Outcomes() map[measurement.Name]error {
	return map[measurement.Name]error{
		measurement.NameSystem:    s.System.Error(),
		measurement.NameHardware:  s.Hardware.Error(),
		measurement.NamePrograms:  s.Programs.Error(),
		measurement.NameNetwork:   s.Network.Error(),
		measurement.NameProcesses: s.Processes.Error(),
	}
}

// Failed returns the names of failed sections in collection order.
func (s *Snapshot) Failed() []measurement.Name {
	outcomes := s.Outcomes()
	res := make([]measurement.Name, 0, len(outcomes))
	for _, name := range measurement.Names {
		if outcomes[name] != nil {
			res = append(res, name)
		}
	}
	return res
}

// snapshotFields has the same layout as Snapshot without its decoders.
type snapshotFields Snapshot

// missingSections returns fields whose sections are all Failed with
// ErrMissingSection, so keys absent from the input stay Failed.
func missingSections() snapshotFields {
	return snapshotFields{
		System:    measurement.Failed[measurement.SystemInfo](ErrMissingSection),
		Hardware:  measurement.Failed[measurement.HardwareInfo](ErrMissingSection),
		Programs:  measurement.Failed[[]string](ErrMissingSection),
		Network:   measurement.Failed[measurement.NetworkInfo](ErrMissingSection),
		Processes: measurement.Failed[[]measurement.Process](ErrMissingSection),
	}
}

// UnmarshalJSON decodes a snapshot. A section key that is absent decodes as
// Failed rather than as an empty Ok section.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	fields := missingSections()
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = Snapshot(fields)
	return nil
}

// UnmarshalYAML decodes a snapshot with the same absent-key rule as UnmarshalJSON.
func (s *Snapshot) UnmarshalYAML(node *yaml.Node) error {
	fields := missingSections()
	if err := node.Decode(&fields); err != nil {
		return err
	}
	*s = Snapshot(fields)
	return nil
}

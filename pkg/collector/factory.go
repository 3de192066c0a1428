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

package collector

import (
	"github.com/NVIDIA/hostprobe/pkg/collector/hardware"
	"github.com/NVIDIA/hostprobe/pkg/collector/network"
	"github.com/NVIDIA/hostprobe/pkg/collector/processes"
	"github.com/NVIDIA/hostprobe/pkg/collector/programs"
	"github.com/NVIDIA/hostprobe/pkg/collector/system"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateSystemCollector() Collector[measurement.SystemInfo]
	CreateHardwareCollector() Collector[measurement.HardwareInfo]
	CreateProgramsCollector() Collector[[]string]
	CreateNetworkCollector() Collector[measurement.NetworkInfo]
	CreateProcessCollector() Collector[[]measurement.Process]
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithMaxProcesses sets how many processes the process collector keeps.
func WithMaxProcesses(n int) Option {
	return func(f *DefaultFactory) {
		f.MaxProcesses = n
	}
}

// WithProgramLister forces a program listing strategy instead of detecting
// it from the host platform.
func WithProgramLister(l programs.Lister) Option {
	return func(f *DefaultFactory) {
		f.ProgramLister = l
	}
}

// DefaultFactory creates collectors backed by the running host.
type DefaultFactory struct {
	MaxProcesses  int
	ProgramLister programs.Lister
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		MaxProcesses: defaults.MaxProcesses,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateSystemCollector creates a system identity collector.
func (f *DefaultFactory) CreateSystemCollector() Collector[measurement.SystemInfo] {
	return &system.Collector{}
}

// CreateHardwareCollector creates a hardware collector.
func (f *DefaultFactory) CreateHardwareCollector() Collector[measurement.HardwareInfo] {
	return &hardware.Collector{}
}

// CreateProgramsCollector creates an installed programs collector.
func (f *DefaultFactory) CreateProgramsCollector() Collector[[]string] {
	return &programs.Collector{Lister: f.ProgramLister}
}

// CreateNetworkCollector creates a network interface collector.
func (f *DefaultFactory) CreateNetworkCollector() Collector[measurement.NetworkInfo] {
	return &network.Collector{}
}

// CreateProcessCollector creates a top-process collector.
func (f *DefaultFactory) CreateProcessCollector() Collector[[]measurement.Process] {
	return &processes.Collector{Limit: f.MaxProcesses}
}

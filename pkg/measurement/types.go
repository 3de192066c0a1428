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

package measurement

import (
	"math"

	"k8s.io/utils/ptr"
)

// Name identifies one section of a host snapshot.
type Name string

// String returns the string representation of the section Name.
func (n Name) String() string {
	return string(n)
}

const (
	NameSystem    Name = "system"
	NameHardware  Name = "hardware"
	NamePrograms  Name = "programs"
	NameNetwork   Name = "network"
	NameProcesses Name = "processes"
)

// Names is the list of all sections in collection order.
var Names = []Name{
	NameSystem,
	NameHardware,
	NamePrograms,
	NameNetwork,
	NameProcesses,
}

// Address families recorded for network addresses.
const (
	FamilyIPv4   = "AF_INET"
	FamilyIPv6   = "AF_INET6"
	FamilyLink   = "AF_LINK"
	FamilyPacket = "AF_PACKET"
)

// SystemInfo describes the identity of the host operating system.
// Every field except Timestamp is nullable: a lookup that fails leaves it nil.
type SystemInfo struct {
	OS             *string  `json:"os" yaml:"os"`
	OSVersion      *string  `json:"os_version" yaml:"os_version"`
	OSRelease      *string  `json:"os_release" yaml:"os_release"`
	Platform       *string  `json:"platform" yaml:"platform"`
	PlatformFamily *string  `json:"platform_family" yaml:"platform_family"`
	Architecture   []string `json:"architecture" yaml:"architecture"`
	Machine        *string  `json:"machine" yaml:"machine"`
	Processor      *string  `json:"processor" yaml:"processor"`
	Hostname       *string  `json:"hostname" yaml:"hostname"`
	BootTime       *string  `json:"boot_time" yaml:"boot_time"`

	// Timestamp is the capture time in RFC 3339 format.
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// HardwareInfo describes CPU, memory and disk capacity.
type HardwareInfo struct {
	CPUCount  *int        `json:"cpu_count" yaml:"cpu_count"`
	CPUFreq   *CPUFreq    `json:"cpu_freq,omitempty" yaml:"cpu_freq,omitempty"`
	Memory    *Memory     `json:"memory" yaml:"memory"`
	DiskUsage []DiskUsage `json:"disk_usage" yaml:"disk_usage"`
}

// CPUFreq holds CPU frequencies in MHz.
type CPUFreq struct {
	Current float64 `json:"current" yaml:"current"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
}

// Memory holds virtual memory totals in bytes and the used percentage.
type Memory struct {
	Total     uint64  `json:"total" yaml:"total"`
	Available uint64  `json:"available" yaml:"available"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

// DiskUsage holds usage of one mounted partition in bytes.
type DiskUsage struct {
	Device     string `json:"device" yaml:"device"`
	Mountpoint string `json:"mountpoint" yaml:"mountpoint"`
	Fstype     string `json:"fstype" yaml:"fstype"`
	Total      uint64 `json:"total" yaml:"total"`
	Used       uint64 `json:"used" yaml:"used"`
	Free       uint64 `json:"free" yaml:"free"`
}

// NetworkInfo maps interface names to their addresses.
type NetworkInfo struct {
	Interfaces map[string][]Address `json:"interfaces" yaml:"interfaces"`
}

// Address is one address bound to a network interface.
type Address struct {
	Family  string `json:"family" yaml:"family"`
	Address string `json:"address" yaml:"address"`
	Netmask string `json:"netmask,omitempty" yaml:"netmask,omitempty"`
}

// Process summarizes one running process.
type Process struct {
	Name       string  `json:"name" yaml:"name"`
	CPUPercent float64 `json:"cpu_percent" yaml:"cpu_percent"`
}

// OptionalString returns nil for an empty string and a pointer to s otherwise.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return ptr.To(s)
}

// Finite replaces NaN and infinities with zero so the value always serializes.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

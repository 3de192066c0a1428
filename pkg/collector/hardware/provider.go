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

package hardware

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/NVIDIA/hostprobe/pkg/collector/file"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

var (
	filePathFreqCurrent = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq"
	filePathFreqMin     = "/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_min_freq"
	filePathFreqMax     = "/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq"
)

// Provider reads raw hardware facts.
type Provider interface {
	CPUCount(ctx context.Context) (int, error)
	CPUFreq(ctx context.Context) (*measurement.CPUFreq, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error)
}

// HostProvider reads facts from the running host with gopsutil and sysfs.
type HostProvider struct {
	// Parser reads sysfs attributes; defaults to a parser over the host root.
	Parser *file.Parser
}

// CPUCount returns the number of logical CPUs.
func (HostProvider) CPUCount(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// CPUFreq returns CPU frequencies in MHz from sysfs, falling back to the
// nominal frequency reported by the CPU info table.
func (h HostProvider) CPUFreq(ctx context.Context) (*measurement.CPUFreq, error) {
	parser := h.Parser
	if parser == nil {
		parser = file.NewParser()
	}

	if freq, err := SysfsFreq(parser); err == nil {
		return freq, nil
	}

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 || infos[0].Mhz <= 0 {
		return nil, fmt.Errorf("cpu frequency not reported")
	}

	mhz := measurement.Finite(infos[0].Mhz)
	return &measurement.CPUFreq{Current: mhz, Max: mhz}, nil
}

// VirtualMemory returns memory totals.
func (HostProvider) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

// Partitions returns the mounted physical partitions.
func (HostProvider) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

// Usage returns usage of the filesystem mounted at mountpoint.
func (HostProvider) Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, mountpoint)
}

// SysfsFreq reads cpu0 frequencies from the cpufreq sysfs attributes, which
// are expressed in kHz. The current frequency is required; min and max are
// left at zero when unreadable.
func SysfsFreq(parser *file.Parser) (*measurement.CPUFreq, error) {
	cur, err := parser.GetUint(filePathFreqCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to read current cpu frequency: %w", err)
	}

	freq := &measurement.CPUFreq{Current: khzToMHz(cur)}
	if v, err := parser.GetUint(filePathFreqMin); err == nil {
		freq.Min = khzToMHz(v)
	}
	if v, err := parser.GetUint(filePathFreqMax); err == nil {
		freq.Max = khzToMHz(v)
	}

	return freq, nil
}

func khzToMHz(khz uint64) float64 {
	return float64(khz) / 1000
}

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
	"errors"
	"fmt"
	"log/slog"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

// Collector gathers CPU, memory and disk capacity.
type Collector struct {
	// Provider defaults to HostProvider.
	Provider Provider
}

// Collect returns the hardware section. CPU frequency is omitted when no
// source reports it and partitions whose usage cannot be read are skipped.
// An error is returned only when CPU count, memory and the partition table
// are all unavailable, or ctx is done.
func (c *Collector) Collect(ctx context.Context) (measurement.HardwareInfo, error) {
	slog.Debug("collecting hardware")

	if err := ctx.Err(); err != nil {
		return measurement.HardwareInfo{}, err
	}

	p := c.Provider
	if p == nil {
		p = HostProvider{}
	}

	res := measurement.HardwareInfo{
		DiskUsage: []measurement.DiskUsage{},
	}

	countErr := c.collectCPU(ctx, p, &res)
	memErr := c.collectMemory(ctx, p, &res)
	diskErr := c.collectDisks(ctx, p, &res)

	if countErr != nil && memErr != nil && diskErr != nil {
		return measurement.HardwareInfo{}, fmt.Errorf("failed to read hardware: %w",
			errors.Join(countErr, memErr, diskErr))
	}

	return res, nil
}

func (c *Collector) collectCPU(ctx context.Context, p Provider, res *measurement.HardwareInfo) error {
	n, err := p.CPUCount(ctx)
	if err != nil {
		slog.Debug("cpu count unavailable", slog.String("error", err.Error()))
	} else {
		res.CPUCount = ptr.To(n)
	}

	freq, ferr := p.CPUFreq(ctx)
	if ferr != nil {
		slog.Debug("cpu frequency unavailable", slog.String("error", ferr.Error()))
	} else if freq != nil {
		res.CPUFreq = &measurement.CPUFreq{
			Current: measurement.Finite(freq.Current),
			Min:     measurement.Finite(freq.Min),
			Max:     measurement.Finite(freq.Max),
		}
	}

	if err != nil {
		return fmt.Errorf("cpu count: %w", err)
	}
	return nil
}

func (c *Collector) collectMemory(ctx context.Context, p Provider, res *measurement.HardwareInfo) error {
	vm, err := p.VirtualMemory(ctx)
	if err != nil {
		slog.Debug("virtual memory unavailable", slog.String("error", err.Error()))
		return fmt.Errorf("virtual memory: %w", err)
	}
	if vm == nil {
		return fmt.Errorf("virtual memory: not reported")
	}

	res.Memory = &measurement.Memory{
		Total:     vm.Total,
		Available: vm.Available,
		Percent:   measurement.Finite(vm.UsedPercent),
	}
	return nil
}

func (c *Collector) collectDisks(ctx context.Context, p Provider, res *measurement.HardwareInfo) error {
	parts, err := p.Partitions(ctx)
	if err != nil {
		slog.Debug("partition table unavailable", slog.String("error", err.Error()))
		return fmt.Errorf("partitions: %w", err)
	}

	for _, part := range parts {
		usage, err := p.Usage(ctx, part.Mountpoint)
		if err != nil || usage == nil {
			slog.Debug("skipping partition without usage",
				slog.String("mountpoint", part.Mountpoint))
			continue
		}

		res.DiskUsage = append(res.DiskUsage, measurement.DiskUsage{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
			Total:      usage.Total,
			Used:       usage.Used,
			Free:       usage.Free,
		})
	}
	return nil
}

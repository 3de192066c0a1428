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

package processes

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

// Proc is one entry of the process table. *process.Process satisfies it.
type Proc interface {
	NameWithContext(ctx context.Context) (string, error)
	CPUPercentWithContext(ctx context.Context) (float64, error)
}

// Provider lists the process table.
type Provider interface {
	Processes(ctx context.Context) ([]Proc, error)
}

// HostProvider reads the process table of the running host with gopsutil.
type HostProvider struct{}

// Processes returns every process visible to the caller.
func (HostProvider) Processes(ctx context.Context) ([]Proc, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]Proc, len(procs))
	for i, p := range procs {
		res[i] = p
	}
	return res, nil
}

// Collector gathers the top CPU consumers.
type Collector struct {
	// Provider defaults to HostProvider.
	Provider Provider

	// Limit defaults to defaults.MaxProcesses.
	Limit int
}

// Collect returns at most Limit processes ordered by CPU percent, highest
// first. Ties keep discovery order. Processes that exit or deny access while
// being read are skipped.
func (c *Collector) Collect(ctx context.Context) ([]measurement.Process, error) {
	slog.Debug("collecting processes")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := c.Provider
	if p == nil {
		p = HostProvider{}
	}
	limit := c.Limit
	if limit <= 0 {
		limit = defaults.MaxProcesses
	}

	procs, err := p.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	res := make([]measurement.Process, 0, len(procs))
	skipped := 0
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			skipped++
			continue
		}
		pct, err := proc.CPUPercentWithContext(ctx)
		if err != nil {
			skipped++
			continue
		}
		res = append(res, measurement.Process{
			Name:       name,
			CPUPercent: measurement.Finite(pct),
		})
	}

	if skipped > 0 {
		slog.Debug("skipped unreadable processes", slog.Int("count", skipped))
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CPUPercent > res[j].CPUPercent
	})

	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

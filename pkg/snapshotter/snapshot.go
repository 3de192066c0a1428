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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
)

// HostSnapshotter collects a snapshot of the current host. It runs the
// system, hardware, programs, network and processes collectors in that order
// and records each outcome as an Ok or Failed section. A HostSnapshotter owns
// one snapshot and is not safe for concurrent collection.
type HostSnapshotter struct {
	// Version is the snapshotter version.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer

	snap *Snapshot
}

// Snapshot returns the owned record, creating an uncollected one if needed.
func (h *HostSnapshotter) Snapshot() *Snapshot {
	if h.snap == nil {
		h.snap = NewSnapshot()
	}
	return h.snap
}

// Collect runs every collector sequentially and overwrites all five sections.
// Collector failures never abort the run; they become Failed sections.
func (h *HostSnapshotter) Collect(ctx context.Context) *Snapshot {
	log := h.logger()
	log.Debug("starting host snapshot")

	start := time.Now()

	h.collectSystem(ctx, log)
	h.collectHardware(ctx, log)
	h.collectPrograms(ctx, log)
	h.collectNetwork(ctx, log)
	h.collectProcesses(ctx, log)

	elapsed := time.Since(start)
	snapshotCollectionDuration.Observe(elapsed.Seconds())

	failed := h.snap.Failed()
	snapshotFailedSections.Set(float64(len(failed)))

	log.Info("snapshot collection complete",
		slog.Duration("duration", elapsed),
		slog.Int("failed_sections", len(failed)))

	return h.snap
}

// CollectSystem runs only the system collector and stores its section.
func (h *HostSnapshotter) CollectSystem(ctx context.Context) measurement.Section[measurement.SystemInfo] {
	return h.collectSystem(ctx, h.logger())
}

// CollectHardware runs only the hardware collector and stores its section.
func (h *HostSnapshotter) CollectHardware(ctx context.Context) measurement.Section[measurement.HardwareInfo] {
	return h.collectHardware(ctx, h.logger())
}

// CollectPrograms runs only the programs collector and stores its section.
func (h *HostSnapshotter) CollectPrograms(ctx context.Context) measurement.Section[[]string] {
	return h.collectPrograms(ctx, h.logger())
}

// CollectNetwork runs only the network collector and stores its section.
func (h *HostSnapshotter) CollectNetwork(ctx context.Context) measurement.Section[measurement.NetworkInfo] {
	return h.collectNetwork(ctx, h.logger())
}

// CollectProcesses runs only the processes collector and stores its section.
func (h *HostSnapshotter) CollectProcesses(ctx context.Context) measurement.Section[[]measurement.Process] {
	return h.collectProcesses(ctx, h.logger())
}

// Measure collects a snapshot and serializes it with the configured Serializer.
func (h *HostSnapshotter) Measure(ctx context.Context) error {
	snap := h.Collect(ctx)

	if h.Serializer == nil {
		h.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := h.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

func (h *HostSnapshotter) collectSystem(ctx context.Context, log *slog.Logger) measurement.Section[measurement.SystemInfo] {
	s := run(ctx, log, measurement.NameSystem, h.factory().CreateSystemCollector())
	h.Snapshot().System = s
	return s
}

func (h *HostSnapshotter) collectHardware(ctx context.Context, log *slog.Logger) measurement.Section[measurement.HardwareInfo] {
	s := run(ctx, log, measurement.NameHardware, h.factory().CreateHardwareCollector())
	h.Snapshot().Hardware = s
	return s
}

func (h *HostSnapshotter) collectPrograms(ctx context.Context, log *slog.Logger) measurement.Section[[]string] {
	s := run(ctx, log, measurement.NamePrograms, h.factory().CreateProgramsCollector())
	h.Snapshot().Programs = s
	return s
}

func (h *HostSnapshotter) collectNetwork(ctx context.Context, log *slog.Logger) measurement.Section[measurement.NetworkInfo] {
	s := run(ctx, log, measurement.NameNetwork, h.factory().CreateNetworkCollector())
	h.Snapshot().Network = s
	return s
}

func (h *HostSnapshotter) collectProcesses(ctx context.Context, log *slog.Logger) measurement.Section[[]measurement.Process] {
	s := run(ctx, log, measurement.NameProcesses, h.factory().CreateProcessCollector())
	h.Snapshot().Processes = s
	return s
}

func (h *HostSnapshotter) factory() collector.Factory {
	if h.Factory == nil {
		h.Factory = collector.NewDefaultFactory()
	}
	return h.Factory
}

// logger returns a logger tagged with a fresh run ID.
func (h *HostSnapshotter) logger() *slog.Logger {
	return slog.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("snapshotter_version", h.Version),
	)
}

// run executes one collector and converts its result into a section.
func run[T any](ctx context.Context, log *slog.Logger, name measurement.Name, c collector.Collector[T]) measurement.Section[T] {
	start := time.Now()
	v, err := c.Collect(ctx)
	snapshotCollectorDuration.WithLabelValues(name.String()).Observe(time.Since(start).Seconds())

	if err != nil {
		snapshotSectionTotal.WithLabelValues(name.String(), outcomeFailed).Inc()
		log.Warn("section collection failed",
			slog.String("section", name.String()),
			slog.String("error", err.Error()))
		return measurement.Failed[T](err)
	}

	snapshotSectionTotal.WithLabelValues(name.String(), outcomeOK).Inc()
	log.Debug("section collected", slog.String("section", name.String()))
	return measurement.Ok(v)
}

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

package system

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

// Collector gathers the operating system identity of the host.
type Collector struct {
	// Provider defaults to HostProvider.
	Provider Provider

	// Now defaults to time.Now and stamps the capture time.
	Now func() time.Time

	// GOOS defaults to runtime.GOOS and selects the binary linkage label.
	GOOS string
}

// Collect returns the system section. Each failing lookup leaves its fields
// nil; an error is returned only when every lookup fails or ctx is done.
func (c *Collector) Collect(ctx context.Context) (measurement.SystemInfo, error) {
	slog.Debug("collecting system identity")

	if err := ctx.Err(); err != nil {
		return measurement.SystemInfo{}, err
	}

	p := c.Provider
	if p == nil {
		p = HostProvider{}
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	res := measurement.SystemInfo{
		Architecture: architecture(c.goos()),
		Timestamp:    now().UTC().Format(time.RFC3339),
	}

	var failures []error

	info, err := p.Info(ctx)
	if err != nil {
		slog.Debug("host info unavailable", slog.String("error", err.Error()))
		failures = append(failures, fmt.Errorf("host info: %w", err))
	} else if info != nil {
		if info.OS != "" {
			res.OS = ptr.To(cases.Title(language.Und).String(info.OS))
		}
		res.OSVersion = measurement.OptionalString(info.PlatformVersion)
		res.OSRelease = measurement.OptionalString(info.KernelVersion)
		res.Platform = measurement.OptionalString(info.Platform)
		res.PlatformFamily = measurement.OptionalString(info.PlatformFamily)
		res.Machine = measurement.OptionalString(info.KernelArch)
	}

	if bt, err := p.BootTime(ctx); err != nil {
		slog.Debug("boot time unavailable", slog.String("error", err.Error()))
		failures = append(failures, fmt.Errorf("boot time: %w", err))
	} else {
		res.BootTime = ptr.To(time.Unix(int64(bt), 0).UTC().Format(time.RFC3339))
	}

	if name, err := p.Hostname(); err != nil {
		slog.Debug("hostname unavailable", slog.String("error", err.Error()))
		failures = append(failures, fmt.Errorf("hostname: %w", err))
	} else {
		res.Hostname = measurement.OptionalString(name)
	}

	if model, err := p.CPUModel(ctx); err != nil {
		slog.Debug("cpu model unavailable", slog.String("error", err.Error()))
		failures = append(failures, fmt.Errorf("cpu model: %w", err))
	} else {
		res.Processor = measurement.OptionalString(model)
	}

	if len(failures) == 4 {
		return measurement.SystemInfo{}, fmt.Errorf("failed to read system identity: %w", failures[0])
	}

	return res, nil
}

func (c *Collector) goos() string {
	if c.GOOS != "" {
		return c.GOOS
	}
	return runtime.GOOS
}

// architecture returns the pointer width and executable format of this binary.
func architecture(goos string) []string {
	bits := strconv.Itoa(strconv.IntSize) + "bit"

	switch goos {
	case "darwin", "ios":
		return []string{bits, "Mach-O"}
	case "windows":
		return []string{bits, "WindowsPE"}
	default:
		return []string{bits, "ELF"}
	}
}

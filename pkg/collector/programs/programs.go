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

package programs

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Collector gathers the names of installed programs.
type Collector struct {
	// Lister is chosen from the host platform on first use when nil.
	Lister Lister

	// Family returns the platform family; defaults to gopsutil host platform information.
	Family func(ctx context.Context) (string, error)
}

// Collect returns installed program names. Listing failures yield an empty
// list; only a done ctx is reported as an error.
func (c *Collector) Collect(ctx context.Context) ([]string, error) {
	slog.Debug("collecting installed programs")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.Lister == nil {
		c.Lister = NewLister(runtime.GOOS, c.family(ctx))
		slog.Debug("selected program lister", slog.String("lister", listerName(c.Lister)))
	}

	names := c.Lister.List(ctx)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (c *Collector) family(ctx context.Context) string {
	get := c.Family
	if get == nil {
		get = platformFamily
	}

	family, err := get(ctx)
	if err != nil {
		slog.Debug("platform family unavailable", slog.String("error", err.Error()))
		return ""
	}
	return family
}

func platformFamily(ctx context.Context) (string, error) {
	_, family, _, err := host.PlatformInformationWithContext(ctx)
	return family, err
}

func listerName(l Lister) string {
	switch l.(type) {
	case *DpkgLister:
		return "dpkg"
	case *ApplicationsLister:
		return "applications"
	default:
		return "none"
	}
}

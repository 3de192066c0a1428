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
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// Provider reads raw operating system facts.
type Provider interface {
	Info(ctx context.Context) (*host.InfoStat, error)
	BootTime(ctx context.Context) (uint64, error)
	Hostname() (string, error)
	CPUModel(ctx context.Context) (string, error)
}

// HostProvider reads facts from the running host with gopsutil.
type HostProvider struct{}

// Info returns kernel and distribution identity.
func (HostProvider) Info(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

// BootTime returns the boot time in seconds since the epoch.
func (HostProvider) BootTime(ctx context.Context) (uint64, error) {
	return host.BootTimeWithContext(ctx)
}

// Hostname returns the kernel host name.
func (HostProvider) Hostname() (string, error) {
	return os.Hostname()
}

// CPUModel returns the model name of the first CPU.
func (HostProvider) CPUModel(ctx context.Context) (string, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no cpu info reported")
	}
	return infos[0].ModelName, nil
}

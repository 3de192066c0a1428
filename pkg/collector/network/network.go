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

package network

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"runtime"
	"strconv"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

// Provider lists network interfaces with their addresses.
type Provider interface {
	Interfaces(ctx context.Context) (psnet.InterfaceStatList, error)
}

// HostProvider reads interfaces from the running host with gopsutil.
type HostProvider struct{}

// Interfaces returns every interface of the host.
func (HostProvider) Interfaces(ctx context.Context) (psnet.InterfaceStatList, error) {
	return psnet.InterfacesWithContext(ctx)
}

// Collector gathers interface addresses. No interface or address is filtered out.
type Collector struct {
	// Provider defaults to HostProvider.
	Provider Provider

	// GOOS defaults to runtime.GOOS and selects the hardware address family.
	GOOS string
}

// Collect returns the network section, or an error if interfaces cannot be listed.
func (c *Collector) Collect(ctx context.Context) (measurement.NetworkInfo, error) {
	slog.Debug("collecting network interfaces")

	if err := ctx.Err(); err != nil {
		return measurement.NetworkInfo{}, err
	}

	p := c.Provider
	if p == nil {
		p = HostProvider{}
	}

	ifaces, err := p.Interfaces(ctx)
	if err != nil {
		return measurement.NetworkInfo{}, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	res := measurement.NetworkInfo{
		Interfaces: make(map[string][]measurement.Address, len(ifaces)),
	}

	linkFamily := measurement.FamilyLink
	if c.goos() == "linux" {
		linkFamily = measurement.FamilyPacket
	}

	for _, iface := range ifaces {
		addrs := make([]measurement.Address, 0, len(iface.Addrs)+1)
		for _, a := range iface.Addrs {
			addr, ok := parseAddr(a.Addr)
			if !ok {
				slog.Debug("skipping unparsable address",
					slog.String("interface", iface.Name),
					slog.String("address", a.Addr))
				continue
			}
			addrs = append(addrs, addr)
		}
		if iface.HardwareAddr != "" {
			addrs = append(addrs, measurement.Address{
				Family:  linkFamily,
				Address: iface.HardwareAddr,
			})
		}
		if existing, ok := res.Interfaces[iface.Name]; ok {
			addrs = append(existing, addrs...)
		}
		res.Interfaces[iface.Name] = addrs
	}

	return res, nil
}

func (c *Collector) goos() string {
	if c.GOOS != "" {
		return c.GOOS
	}
	return runtime.GOOS
}

// parseAddr splits an address in CIDR notation into the address and its
// netmask. Addresses without a prefix length carry no netmask.
//
//	192.168.1.10/24 -> AF_INET 192.168.1.10 255.255.255.0
//	fe80::1%eth0/64 -> AF_INET6 fe80::1%eth0 ffff:ffff:ffff:ffff::
func parseAddr(cidr string) (measurement.Address, bool) {
	host, bits, hasPrefix := strings.Cut(cidr, "/")

	ip, err := netip.ParseAddr(host)
	if err != nil {
		return measurement.Address{}, false
	}

	res := measurement.Address{
		Family:  measurement.FamilyIPv6,
		Address: ip.String(),
	}
	if ip.Is4() || ip.Is4In6() {
		res.Family = measurement.FamilyIPv4
		res.Address = ip.Unmap().String()
	}

	if hasPrefix {
		ones, err := strconv.Atoi(bits)
		size := ip.Unmap().BitLen()
		if err == nil && ones >= 0 && ones <= size {
			res.Netmask = net.IP(net.CIDRMask(ones, size)).String()
		}
	}

	return res, true
}

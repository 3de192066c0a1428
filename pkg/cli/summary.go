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

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

const summaryTopProcesses = 5

// Brazilian Portuguese translations of the summary labels. Untranslated
// keys print as-is.
var summaryPortuguese = map[string]string{
	"SYSTEM SUMMARY":        "RESUMO DO SISTEMA",
	"Hostname:":             "Nome do host:",
	"Memory:":               "Memória:",
	"Disks:":                "Discos:",
	"Programs:":             "Programas:",
	"Interfaces:":           "Interfaces:",
	"Top processes:":        "Principais processos:",
	"unknown":               "desconhecido",
	"unavailable: %s":       "indisponível: %s",
	"%d logical cores":      "%d núcleos lógicos",
	"%s total, %.1f%% used": "%s no total, %.1f%% em uso",
	"%s of %s used":         "%s de %s em uso",
	"%d installed":          "%d instalados",
	"%d with %d addresses":  "%d com %d endereços",
	"Failed sections:":      "Seções com falha:",
	"none":                  "nenhum",
}

func init() {
	for key, msg := range summaryPortuguese {
		if err := message.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			panic(fmt.Sprintf("invalid summary translation %q: %v", key, err))
		}
	}
}

// writeSummary prints a condensed, localized view of snap. OS and CPU lines
// are always present, failed sections print their reason.
func writeSummary(w io.Writer, snap *snapshotter.Snapshot, tag language.Tag) {
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", p.Sprintf(label), value)
	}
	failed := func(err error) string {
		return p.Sprintf("unavailable: %s", err)
	}

	fmt.Fprintf(tw, "=== %s ===\n", p.Sprintf("SYSTEM SUMMARY"))

	if sys, ok := snap.System.Get(); ok {
		row("OS:", osLine(p, sys))
		row("Hostname:", orUnknown(p, sys.Hostname))
	} else {
		row("OS:", failed(snap.System.Error()))
	}

	if hw, ok := snap.Hardware.Get(); ok {
		row("CPU:", cpuLine(p, hw))
		if hw.Memory != nil {
			row("Memory:", p.Sprintf("%s total, %.1f%% used", humanize.IBytes(hw.Memory.Total), hw.Memory.Percent))
		} else {
			row("Memory:", p.Sprintf("unknown"))
		}
		for i, d := range hw.DiskUsage {
			label := ""
			if i == 0 {
				label = "Disks:"
			}
			row(label, fmt.Sprintf("%s  %s", d.Mountpoint, p.Sprintf("%s of %s used", humanize.IBytes(d.Used), humanize.IBytes(d.Total))))
		}
	} else {
		row("CPU:", failed(snap.Hardware.Error()))
	}

	if progs, ok := snap.Programs.Get(); ok {
		row("Programs:", p.Sprintf("%d installed", len(progs)))
	} else {
		row("Programs:", failed(snap.Programs.Error()))
	}

	if nw, ok := snap.Network.Get(); ok {
		addrs := 0
		for _, list := range nw.Interfaces {
			addrs += len(list)
		}
		row("Interfaces:", p.Sprintf("%d with %d addresses", len(nw.Interfaces), addrs))
	} else {
		row("Interfaces:", failed(snap.Network.Error()))
	}

	if procs, ok := snap.Processes.Get(); ok {
		row("Top processes:", topProcesses(p, procs))
	} else {
		row("Top processes:", failed(snap.Processes.Error()))
	}

	names := make([]string, 0, len(measurement.Names))
	for _, n := range snap.Failed() {
		names = append(names, n.String())
	}
	if len(names) == 0 {
		row("Failed sections:", p.Sprintf("none"))
	} else {
		row("Failed sections:", strings.Join(names, ", "))
	}

	_ = tw.Flush()
}

func osLine(p *message.Printer, sys measurement.SystemInfo) string {
	parts := make([]string, 0, 3)
	for _, s := range []*string{sys.OS, sys.OSVersion} {
		if s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	if len(parts) == 0 {
		return p.Sprintf("unknown")
	}
	if sys.Machine != nil && *sys.Machine != "" {
		parts = append(parts, "("+*sys.Machine+")")
	}
	return strings.Join(parts, " ")
}

func cpuLine(p *message.Printer, hw measurement.HardwareInfo) string {
	if hw.CPUCount == nil {
		return p.Sprintf("unknown")
	}
	line := p.Sprintf("%d logical cores", *hw.CPUCount)
	if hw.CPUFreq != nil && hw.CPUFreq.Current > 0 {
		line += fmt.Sprintf(" @ %.0f MHz", hw.CPUFreq.Current)
	}
	return line
}

func topProcesses(p *message.Printer, procs []measurement.Process) string {
	if len(procs) == 0 {
		return p.Sprintf("none")
	}
	n := min(len(procs), summaryTopProcesses)
	parts := make([]string, 0, n)
	for _, proc := range procs[:n] {
		parts = append(parts, fmt.Sprintf("%s (%.1f%%)", proc.Name, proc.CPUPercent))
	}
	return strings.Join(parts, ", ")
}

func orUnknown(p *message.Printer, s *string) string {
	if s == nil || *s == "" {
		return p.Sprintf("unknown")
	}
	return *s
}

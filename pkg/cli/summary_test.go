package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

func TestWriteSummaryUncollected(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, snapshotter.NewSnapshot(), language.English)

	out := buf.String()
	assert.Contains(t, out, "=== SYSTEM SUMMARY ===")
	assert.Contains(t, out, "OS:")
	assert.Contains(t, out, "CPU:")
	assert.Contains(t, out, "unavailable: not collected")
	assert.Contains(t, out, "system, hardware, programs, network, processes")
}

func TestWriteSummaryCollected(t *testing.T) {
	snap := snapshotter.NewSnapshot()
	snap.System = measurement.Ok(measurement.SystemInfo{OS: ptr.To("Linux"), OSVersion: ptr.To("22.04"), Machine: ptr.To("x86_64")})
	snap.Hardware = measurement.Ok(measurement.HardwareInfo{
		CPUCount: ptr.To(8),
		CPUFreq:  &measurement.CPUFreq{Current: 2400},
		Memory:   &measurement.Memory{Total: 8 << 30, Percent: 25},
	})
	snap.Programs = measurement.Ok([]string{})
	snap.Network = measurement.Ok(measurement.NetworkInfo{Interfaces: map[string][]measurement.Address{}})
	snap.Processes = measurement.Ok([]measurement.Process{{Name: "a", CPUPercent: 3}})

	var buf bytes.Buffer
	writeSummary(&buf, snap, language.English)

	out := buf.String()
	assert.Contains(t, out, "Linux 22.04 (x86_64)")
	assert.Contains(t, out, "8 logical cores @ 2400 MHz")
	assert.Contains(t, out, "8.0 GiB total")
	assert.Contains(t, out, "0 installed")
	assert.Contains(t, out, "a (3.0%)")
	assert.Contains(t, out, "none")
}

func TestWriteSummaryPortuguese(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, snapshotter.NewSnapshot(), language.BrazilianPortuguese)

	out := buf.String()
	assert.Contains(t, out, "RESUMO DO SISTEMA")
	assert.Contains(t, out, "indisponível")
}

func TestWriteSummaryByteUnits(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		used  uint64
		want  string
	}{
		{"bytes", 1023, 0, "0 B of 1023 B used"},
		{"kibibytes", 1536, 1024, "1.0 KiB of 1.5 KiB used"},
		{"gibibytes", 500 << 30, 8 << 30, "8.0 GiB of 500 GiB used"},
		{"tebibytes", 1 << 40, 1 << 40, "1.0 TiB of 1.0 TiB used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotter.NewSnapshot()
			snap.Hardware = measurement.Ok(measurement.HardwareInfo{
				DiskUsage: []measurement.DiskUsage{{Mountpoint: "/data", Total: tt.total, Used: tt.used}},
			})

			var buf bytes.Buffer
			writeSummary(&buf, snap, language.English)
			assert.Contains(t, buf.String(), "/data  "+tt.want)
		})
	}
}

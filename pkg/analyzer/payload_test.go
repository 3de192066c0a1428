package analyzer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

func testSnapshot() *snapshotter.Snapshot {
	snap := snapshotter.NewSnapshot()
	snap.System = measurement.Ok(measurement.SystemInfo{
		OS:        ptr.To("Linux"),
		OSVersion: ptr.To("22.04"),
		Hostname:  ptr.To("node-1"),
	})
	snap.Hardware = measurement.Ok(measurement.HardwareInfo{
		CPUCount: ptr.To(4),
		Memory:   &measurement.Memory{Total: 8589934592, Available: 4294967296, Percent: 50},
		DiskUsage: []measurement.DiskUsage{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4", Total: 1000000000000, Used: 500000000000, Free: 500000000000},
		},
	})
	snap.Programs = measurement.Ok([]string{"bash", "curl"})
	return snap
}

func TestShapeSmallSnapshot(t *testing.T) {
	snap := testSnapshot()

	p, err := Shape(snap, "check this")
	require.NoError(t, err)
	assert.False(t, p.Summarized)
	assert.Same(t, snap, p.Data)
	assert.Equal(t, "check this", p.Prompt)
}

func TestShapeDefaultPrompt(t *testing.T) {
	p, err := Shape(testSnapshot(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt(language.English), p.Prompt)

	p, err = Shaper{Language: language.BrazilianPortuguese}.Shape(testSnapshot(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt(language.BrazilianPortuguese), p.Prompt)
}

func TestShapeNilSnapshot(t *testing.T) {
	_, err := Shape(nil, "")
	assert.Error(t, err)
}

func TestShapeLargeSnapshotIsSummarized(t *testing.T) {
	snap := testSnapshot()
	snap.Programs = measurement.Ok([]string{strings.Repeat("x", 60000)})

	p, err := Shape(snap, "analyze")
	require.NoError(t, err)
	require.True(t, p.Summarized)

	sum, ok := p.Data.(*Summary)
	require.True(t, ok)
	assert.Equal(t, SummaryNote, sum.Note)
	assert.Equal(t, "Linux", *sum.OS)
	assert.Equal(t, 4, *sum.CPUCount)
	assert.Equal(t, uint64(8589934592), *sum.MemoryTotal)
	require.Len(t, sum.DiskUsage, 1)
	assert.Equal(t, "/", sum.DiskUsage[0].Mountpoint)

	content, err := p.Content()
	require.NoError(t, err)
	assert.Contains(t, content, "note")
	assert.Less(t, len(content), defaults.PayloadCeiling)
}

func TestShapeHugeSummaryStaysUnderCeiling(t *testing.T) {
	disks := make([]measurement.DiskUsage, 10000)
	for i := range disks {
		disks[i] = measurement.DiskUsage{Mountpoint: "/mnt/" + strings.Repeat("m", 300), Total: 1, Used: 1}
	}
	snap := testSnapshot()
	snap.System = measurement.Ok(measurement.SystemInfo{OS: ptr.To(strings.Repeat("L", 10000))})
	snap.Hardware = measurement.Ok(measurement.HardwareInfo{DiskUsage: disks})

	p, err := Shape(snap, "")
	require.NoError(t, err)
	require.True(t, p.Summarized)

	sum := p.Data.(*Summary)
	assert.Len(t, sum.DiskUsage, maxSummaryPartitions)
	assert.Len(t, *sum.OS, maxSummaryString)
	assert.Nil(t, sum.CPUCount)
	assert.Nil(t, sum.MemoryTotal)

	data, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Less(t, len(data), defaults.PayloadCeiling)
}

func TestSummarizeFailedSections(t *testing.T) {
	sum := Summarize(snapshotter.NewSnapshot())
	assert.Nil(t, sum.OS)
	assert.Nil(t, sum.OSVersion)
	assert.Nil(t, sum.CPUCount)
	assert.NotNil(t, sum.DiskUsage)
	assert.Empty(t, sum.DiskUsage)
}

func TestShapeCustomCeiling(t *testing.T) {
	p, err := Shaper{Ceiling: 500}.Shape(testSnapshot(), "x")
	require.NoError(t, err)
	assert.True(t, p.Summarized)

	content, err := p.Content()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(content), 500)
	assert.Len(t, p.Data.(*Summary).DiskUsage, 1)
}

func TestShapeCeilingTooSmall(t *testing.T) {
	_, err := Shaper{Ceiling: 10}.Shape(testSnapshot(), "x")
	assert.ErrorIs(t, err, ErrCeilingTooSmall)
}

func escapedMountSnapshot(n int) *snapshotter.Snapshot {
	disks := make([]measurement.DiskUsage, n)
	for i := range disks {
		disks[i] = measurement.DiskUsage{Mountpoint: "/mnt/" + strings.Repeat("<", 300), Total: 10, Used: 5}
	}
	snap := testSnapshot()
	snap.System = measurement.Ok(measurement.SystemInfo{
		OS:        ptr.To(strings.Repeat("&", 300)),
		OSVersion: ptr.To(strings.Repeat(">", 300)),
	})
	snap.Hardware = measurement.Ok(measurement.HardwareInfo{DiskUsage: disks})
	return snap
}

func TestShapeEscapedSummaryStaysUnderCeiling(t *testing.T) {
	p, err := Shape(escapedMountSnapshot(100), "")
	require.NoError(t, err)
	require.True(t, p.Summarized)

	content, err := p.Content()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(content), defaults.PayloadCeiling)

	sum := p.Data.(*Summary)
	assert.NotEmpty(t, sum.DiskUsage)
	assert.Less(t, len(sum.DiskUsage), maxSummaryPartitions)
	assert.NotNil(t, sum.OS)
	assert.Equal(t, SummaryNote, sum.Note)
}

func TestShapeEscapedSummarySmallCeiling(t *testing.T) {
	const ceiling = 2000
	p, err := Shaper{Ceiling: ceiling}.Shape(escapedMountSnapshot(100), "analyze")
	require.NoError(t, err)
	require.True(t, p.Summarized)

	content, err := p.Content()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(content), ceiling)

	sum := p.Data.(*Summary)
	assert.Empty(t, sum.DiskUsage)
	assert.Nil(t, sum.OSVersion)
	assert.Equal(t, SummaryNote, sum.Note)
}

func TestTruncateKeepsRunes(t *testing.T) {
	s := strings.Repeat("a", maxSummaryString-1) + "é"
	got := truncate(s)
	assert.Equal(t, strings.Repeat("a", maxSummaryString-1), got)
	assert.Equal(t, "short", truncate("short"))
}

func TestPayloadContent(t *testing.T) {
	p := &Payload{Prompt: "hello", Data: map[string]int{"a": 1}}
	content, err := p.Content()
	require.NoError(t, err)
	assert.Equal(t, "hello\n\n{\n  \"a\": 1\n}", content)
}

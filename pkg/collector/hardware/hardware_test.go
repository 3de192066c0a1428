package hardware

import (
	"context"
	"errors"
	"math"
	"testing"
	"testing/fstest"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/collector/file"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

type fakeProvider struct {
	count    int
	countErr error
	freq     *measurement.CPUFreq
	freqErr  error
	vm       *mem.VirtualMemoryStat
	vmErr    error
	parts    []disk.PartitionStat
	partsErr error
	usage    map[string]*disk.UsageStat
}

func (f fakeProvider) CPUCount(context.Context) (int, error) { return f.count, f.countErr }
func (f fakeProvider) CPUFreq(context.Context) (*measurement.CPUFreq, error) {
	return f.freq, f.freqErr
}
func (f fakeProvider) VirtualMemory(context.Context) (*mem.VirtualMemoryStat, error) {
	return f.vm, f.vmErr
}
func (f fakeProvider) Partitions(context.Context) ([]disk.PartitionStat, error) {
	return f.parts, f.partsErr
}
func (f fakeProvider) Usage(_ context.Context, mountpoint string) (*disk.UsageStat, error) {
	u, ok := f.usage[mountpoint]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return u, nil
}

func TestCollector_Collect(t *testing.T) {
	c := &Collector{Provider: fakeProvider{
		count: 4,
		freq:  &measurement.CPUFreq{Current: 2400, Min: 800, Max: 3600},
		vm:    &mem.VirtualMemoryStat{Total: 8589934592, Available: 4294967296, UsedPercent: 50},
		parts: []disk.PartitionStat{{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"}},
		usage: map[string]*disk.UsageStat{
			"/": {Total: 1000000000000, Used: 400000000000, Free: 600000000000},
		},
	}}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)

	require.NotNil(t, got.CPUCount)
	assert.Equal(t, 4, *got.CPUCount)
	require.NotNil(t, got.Memory)
	assert.Equal(t, uint64(8589934592), got.Memory.Total)
	assert.Equal(t, 50.0, got.Memory.Percent)
	require.NotNil(t, got.CPUFreq)
	assert.Equal(t, 3600.0, got.CPUFreq.Max)
	require.Len(t, got.DiskUsage, 1)
	assert.Equal(t, measurement.DiskUsage{
		Device:     "/dev/sda1",
		Mountpoint: "/",
		Fstype:     "ext4",
		Total:      1000000000000,
		Used:       400000000000,
		Free:       600000000000,
	}, got.DiskUsage[0])
}

func TestCollector_SkipsUnreadablePartitions(t *testing.T) {
	c := &Collector{Provider: fakeProvider{
		count:   2,
		freqErr: errors.New("unsupported"),
		vm:      &mem.VirtualMemoryStat{Total: 1024, UsedPercent: math.NaN()},
		parts: []disk.PartitionStat{
			{Device: "/dev/sda1", Mountpoint: "/"},
			{Device: "/dev/sdb1", Mountpoint: "/secret"},
		},
		usage: map[string]*disk.UsageStat{"/": {Total: 10}},
	}}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.CPUFreq)
	assert.Equal(t, 0.0, got.Memory.Percent)
	require.Len(t, got.DiskUsage, 1)
	assert.Equal(t, "/", got.DiskUsage[0].Mountpoint)
}

func TestCollector_Degrades(t *testing.T) {
	boom := errors.New("boom")

	t.Run("memory only", func(t *testing.T) {
		c := &Collector{Provider: fakeProvider{
			countErr: boom,
			freqErr:  boom,
			vm:       &mem.VirtualMemoryStat{Total: 1},
			partsErr: boom,
		}}
		got, err := c.Collect(context.Background())
		require.NoError(t, err)
		assert.Nil(t, got.CPUCount)
		assert.NotNil(t, got.Memory)
		assert.NotNil(t, got.DiskUsage)
		assert.Empty(t, got.DiskUsage)
	})

	t.Run("everything fails", func(t *testing.T) {
		c := &Collector{Provider: fakeProvider{
			countErr: boom,
			freqErr:  boom,
			vmErr:    boom,
			partsErr: boom,
		}}
		_, err := c.Collect(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestCollector_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Collector{Provider: fakeProvider{}}
	_, err := c.Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSysfsFreq(t *testing.T) {
	t.Run("all attributes", func(t *testing.T) {
		parser := file.NewParser(file.WithFS(fstest.MapFS{
			"sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq": {Data: []byte("2400000\n")},
			"sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_min_freq": {Data: []byte("800000\n")},
			"sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq": {Data: []byte("3600000\n")},
		}))

		got, err := SysfsFreq(parser)
		require.NoError(t, err)
		assert.Equal(t, &measurement.CPUFreq{Current: 2400, Min: 800, Max: 3600}, got)
	})

	t.Run("current only", func(t *testing.T) {
		parser := file.NewParser(file.WithFS(fstest.MapFS{
			"sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq": {Data: []byte("1500000")},
		}))

		got, err := SysfsFreq(parser)
		require.NoError(t, err)
		assert.Equal(t, 1500.0, got.Current)
		assert.Zero(t, got.Max)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := SysfsFreq(file.NewParser(file.WithFS(fstest.MapFS{})))
		assert.Error(t, err)
	})
}

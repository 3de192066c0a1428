package snapshotter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/measurement"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
)

// mockFactory returns collectors backed by its fields. A non-nil error field
// makes the matching collector fail.
type mockFactory struct {
	system    measurement.SystemInfo
	hardware  measurement.HardwareInfo
	programs  []string
	network   measurement.NetworkInfo
	processes []measurement.Process

	systemErr, hardwareErr, programsErr, networkErr, processesErr error

	calls []string
}

func fake[T any](f *mockFactory, name string, v T, err error) collector.Collector[T] {
	return collector.CollectorFunc[T](func(ctx context.Context) (T, error) {
		f.calls = append(f.calls, name)
		if ctxErr := ctx.Err(); ctxErr != nil {
			var zero T
			return zero, ctxErr
		}
		return v, err
	})
}

func (f *mockFactory) CreateSystemCollector() collector.Collector[measurement.SystemInfo] {
	return fake(f, "system", f.system, f.systemErr)
}

func (f *mockFactory) CreateHardwareCollector() collector.Collector[measurement.HardwareInfo] {
	return fake(f, "hardware", f.hardware, f.hardwareErr)
}

func (f *mockFactory) CreateProgramsCollector() collector.Collector[[]string] {
	return fake(f, "programs", f.programs, f.programsErr)
}

func (f *mockFactory) CreateNetworkCollector() collector.Collector[measurement.NetworkInfo] {
	return fake(f, "network", f.network, f.networkErr)
}

func (f *mockFactory) CreateProcessCollector() collector.Collector[[]measurement.Process] {
	return fake(f, "processes", f.processes, f.processesErr)
}

type mockSerializer struct {
	serialized any
	err        error
}

func (m *mockSerializer) Serialize(_ context.Context, v any) error {
	m.serialized = v
	return m.err
}

func healthyFactory() *mockFactory {
	return &mockFactory{
		system: measurement.SystemInfo{OS: ptr.To("Linux"), Timestamp: "2024-05-01T12:00:00Z"},
		hardware: measurement.HardwareInfo{
			CPUCount: ptr.To(4),
			Memory:   &measurement.Memory{Total: 8589934592},
			DiskUsage: []measurement.DiskUsage{
				{Mountpoint: "/", Total: 1000000000000},
			},
		},
		programs: []string{"python3"},
		network: measurement.NetworkInfo{Interfaces: map[string][]measurement.Address{
			"lo": {{Family: measurement.FamilyIPv4, Address: "127.0.0.1", Netmask: "255.0.0.0"}},
		}},
		processes: []measurement.Process{{Name: "init", CPUPercent: 0.1}},
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot()
	require.NotNil(t, snap)
	assert.Equal(t, measurement.Names, snap.Failed())
	assert.ErrorContains(t, snap.Outcomes()[measurement.NameSystem], ErrNotCollected.Error())
}

func TestHostSnapshotter_Collect(t *testing.T) {
	f := healthyFactory()
	hs := &HostSnapshotter{Version: "test", Factory: f}

	snap := hs.Collect(context.Background())
	require.NotNil(t, snap)
	assert.Empty(t, snap.Failed())
	assert.Equal(t, []string{"system", "hardware", "programs", "network", "processes"}, f.calls)

	hw, ok := snap.Hardware.Get()
	require.True(t, ok)
	assert.Equal(t, 4, *hw.CPUCount)
	assert.Equal(t, uint64(8589934592), hw.Memory.Total)
	assert.Equal(t, uint64(1000000000000), hw.DiskUsage[0].Total)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 5)
	for _, name := range measurement.Names {
		assert.Contains(t, keys, name.String())
	}
}

func TestHostSnapshotter_PartialFailure(t *testing.T) {
	f := healthyFactory()
	f.networkErr = errors.New("netlink: permission denied")
	hs := &HostSnapshotter{Factory: f}

	snap := hs.Collect(context.Background())
	assert.Equal(t, []measurement.Name{measurement.NameNetwork}, snap.Failed())

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `{"error":"netlink: permission denied"}`, string(raw["network"]))
	assert.JSONEq(t, `["python3"]`, string(raw["programs"]))
}

func TestHostSnapshotter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hs := &HostSnapshotter{Factory: healthyFactory()}
	snap := hs.Collect(ctx)
	assert.Equal(t, measurement.Names, snap.Failed())
	assert.Equal(t, context.Canceled.Error(), snap.System.Err)
}

func TestHostSnapshotter_CollectIsIdempotent(t *testing.T) {
	f := healthyFactory()
	f.programsErr = errors.New("dpkg missing")
	hs := &HostSnapshotter{Factory: f}

	first := hs.Collect(context.Background())
	assert.True(t, first.Programs.IsFailed())

	f.programsErr = nil
	f.programs = []string{"curl"}
	second := hs.Collect(context.Background())

	assert.Same(t, first, second)
	assert.Empty(t, second.Failed())
	got, _ := second.Programs.Get()
	assert.Equal(t, []string{"curl"}, got)
}

func TestHostSnapshotter_PerFacet(t *testing.T) {
	f := healthyFactory()
	hs := &HostSnapshotter{Factory: f}

	s := hs.CollectNetwork(context.Background())
	assert.False(t, s.IsFailed())
	assert.Equal(t, []string{"network"}, f.calls)

	snap := hs.Snapshot()
	assert.False(t, snap.Network.IsFailed())
	assert.ElementsMatch(t, []measurement.Name{
		measurement.NameSystem,
		measurement.NameHardware,
		measurement.NamePrograms,
		measurement.NameProcesses,
	}, snap.Failed())

	assert.False(t, hs.CollectSystem(context.Background()).IsFailed())
	assert.False(t, hs.CollectHardware(context.Background()).IsFailed())
	assert.False(t, hs.CollectPrograms(context.Background()).IsFailed())
	assert.False(t, hs.CollectProcesses(context.Background()).IsFailed())
	assert.Empty(t, hs.Snapshot().Failed())
}

func TestHostSnapshotter_Measure(t *testing.T) {
	t.Run("uses serializer", func(t *testing.T) {
		ser := &mockSerializer{}
		hs := &HostSnapshotter{Factory: healthyFactory(), Serializer: ser}

		require.NoError(t, hs.Measure(context.Background()))
		assert.Same(t, hs.Snapshot(), ser.serialized)
	})

	t.Run("serializer error", func(t *testing.T) {
		hs := &HostSnapshotter{
			Factory:    healthyFactory(),
			Serializer: &mockSerializer{err: errors.New("disk full")},
		}
		assert.ErrorContains(t, hs.Measure(context.Background()), "disk full")
	})

	t.Run("writer output", func(t *testing.T) {
		var buf bytes.Buffer
		hs := &HostSnapshotter{
			Factory:    healthyFactory(),
			Serializer: serializer.NewWriter(serializer.FormatJSON, &buf),
		}
		require.NoError(t, hs.Measure(context.Background()))

		var got Snapshot
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, *hs.Snapshot(), got)
	})
}

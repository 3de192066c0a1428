package snapshotter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hostprobe/pkg/measurement"
)

func TestSnapshot_UnmarshalJSON_MissingSections(t *testing.T) {
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"programs":["bash"],"network":{"error":"no permission"}}`), &snap))

	programs, ok := snap.Programs.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"bash"}, programs)

	assert.EqualError(t, snap.Network.Error(), "no permission")

	assert.True(t, snap.System.IsFailed())
	assert.True(t, snap.Hardware.IsFailed())
	assert.True(t, snap.Processes.IsFailed())
	assert.EqualError(t, snap.System.Error(), ErrMissingSection.Error())
}

func TestSnapshot_UnmarshalYAML_MissingSections(t *testing.T) {
	var snap Snapshot
	require.NoError(t, yaml.Unmarshal([]byte("programs: []\n"), &snap))

	programs, ok := snap.Programs.Get()
	require.True(t, ok)
	assert.Empty(t, programs)

	assert.Equal(t, []measurement.Name{
		measurement.NameSystem,
		measurement.NameHardware,
		measurement.NameNetwork,
		measurement.NameProcesses,
	}, snap.Failed())
}

func TestSnapshot_RoundTripKeepsAllSections(t *testing.T) {
	hs := &HostSnapshotter{Factory: healthyFactory()}
	orig := hs.Collect(context.Background())

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Empty(t, got.Failed())
	assert.Equal(t, orig.Programs, got.Programs)
}

func TestSnapshot_UnmarshalJSON_Invalid(t *testing.T) {
	var snap Snapshot
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &snap))
}

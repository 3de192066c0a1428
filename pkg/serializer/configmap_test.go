package serializer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{"valid URI", "cm://monitoring/host-snapshot", "monitoring", "host-snapshot", false},
		{"valid URI with spaces", "cm://monitoring / host-snapshot ", "monitoring", "host-snapshot", false},
		{"missing scheme", "monitoring/host-snapshot", "", "", true},
		{"wrong scheme", "http://monitoring/host-snapshot", "", "", true},
		{"missing name", "cm://monitoring/", "", "", true},
		{"missing namespace", "cm:///host-snapshot", "", "", true},
		{"missing separator", "cm://monitoring", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, ns)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	cs := fake.NewClientset()
	w := NewConfigMapWriter("monitoring", "host", FormatYAML)
	w.Client = cs

	require.NoError(t, w.Serialize(context.Background(), testRecord{Name: "cm", Value: 1}))

	cm, err := cs.CoreV1().ConfigMaps("monitoring").Get(context.Background(), "host", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Contains(t, cm.Data["snapshot.yaml"], "name: cm")
	assert.NotEmpty(t, cm.Data["timestamp"])
	assert.Equal(t, "hostprobe", cm.Labels["app.kubernetes.io/name"])

	got, err := FromConfigMap[testRecord](context.Background(), cs, "monitoring", "host")
	require.NoError(t, err)
	assert.Equal(t, "cm", got.Name)
	assert.NoError(t, w.Close())
}

func TestReadConfigMap(t *testing.T) {
	cs := fake.NewClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "json-only", Namespace: "ns"},
			Data:       map[string]string{"snapshot.json": `{"name":"j"}`},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: "ns"},
			Data:       map[string]string{"other": "x"},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "table", Namespace: "ns"},
			Data:       map[string]string{"format": "table", "snapshot.txt": "FIELD VALUE"},
		},
	)
	ctx := context.Background()

	content, format, err := ReadConfigMap(ctx, cs, "ns", "json-only")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)
	assert.Equal(t, `{"name":"j"}`, content)

	_, _, err = ReadConfigMap(ctx, cs, "ns", "empty")
	assert.ErrorContains(t, err, "no snapshot data")

	_, _, err = ReadConfigMap(ctx, cs, "ns", "missing")
	assert.Error(t, err)

	_, err = FromConfigMap[testRecord](ctx, cs, "ns", "table")
	assert.Error(t, err)
}

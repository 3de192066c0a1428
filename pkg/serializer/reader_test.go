package serializer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"host.json", FormatJSON},
		{"HOST.JSON", FormatJSON},
		{"host.yaml", FormatYAML},
		{"host.yml", FormatYAML},
		{"host.txt", FormatTable},
		{"host.table", FormatTable},
		{"host", FormatJSON},
		{"https://example.com/snap/host.yaml?rev=2", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestNewReader(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)

	r, err := NewReader(FormatYAML, strings.NewReader("name: a\nvalue: 2\n"))
	require.NoError(t, err)

	var got testRecord
	require.NoError(t, r.Deserialize(&got))
	assert.Equal(t, testRecord{Name: "a", Value: 2}, got)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestReader_Deserialize_Invalid(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader("{"))
	require.NoError(t, err)
	var got testRecord
	assert.Error(t, r.Deserialize(&got))

	var nilReader *Reader
	assert.Error(t, nilReader.Deserialize(&got))
}

func TestFromFile_RoundTrip(t *testing.T) {
	in := testRecord{
		Name:   "host",
		Value:  7,
		Tags:   []string{"a", "b"},
		Labels: map[string]string{"k": "v"},
		Ptr:    ptr.To("x"),
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "record."+string(format))
			s, err := NewFileWriterOrStdout(format, path)
			require.NoError(t, err)
			require.NoError(t, s.Serialize(context.Background(), in))
			require.NoError(t, s.(Closer).Close())

			got, err := FromFile[testRecord](path)
			require.NoError(t, err)
			assert.Equal(t, in, *got)
		})
	}
}

func TestFromFile_Errors(t *testing.T) {
	_, err := FromFile[testRecord](filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err = FromFile[testRecord](path)
	assert.Error(t, err)

	_, err = FromFile[testRecord]("cm://only-namespace")
	assert.Error(t, err)
}

func TestFromFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, HttpReaderUserAgent, r.UserAgent())
		_, _ = w.Write([]byte(`{"name":"remote","value":3}`))
	}))
	defer srv.Close()

	got, err := FromFile[testRecord](srv.URL + "/host.json")
	require.NoError(t, err)
	assert.Equal(t, "remote", got.Name)
	assert.Equal(t, 3, got.Value)
}

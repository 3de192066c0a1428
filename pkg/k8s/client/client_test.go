package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKubeconfig(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv(EnvKubeconfig, "/from/env")
		assert.Equal(t, "/explicit", ResolveKubeconfig("/explicit"))
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv(EnvKubeconfig, "/from/env")
		assert.Equal(t, "/from/env", ResolveKubeconfig(""))
	})

	t.Run("home config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv(EnvKubeconfig, "")

		assert.Equal(t, "", ResolveKubeconfig(""))

		path := filepath.Join(home, ".kube", "config")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("apiVersion: v1\n"), 0o600))
		assert.Equal(t, path, ResolveKubeconfig(""))
	})
}

func TestBuildKubeClient_InvalidConfig(t *testing.T) {
	_, _, err := BuildKubeClient("/nonexistent/path/to/kubeconfig")
	assert.ErrorContains(t, err, "failed to build kube config")

	invalid := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, os.WriteFile(invalid, []byte("invalid yaml content"), 0o600))
	_, _, err = BuildKubeClient(invalid)
	assert.ErrorContains(t, err, "failed to build kube config")
}

func TestBuildKubeClient_ValidConfig(t *testing.T) {
	kubeconfig := `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`
	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, os.WriteFile(path, []byte(kubeconfig), 0o600))

	cs, cfg, err := GetKubeClientWithConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Equal(t, "https://127.0.0.1:6443", cfg.Host)
}

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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/k8s/client"
)

const (
	configMapFieldManager = "hostprobe"
	configMapKeyFormat    = "format"
	configMapKeyTimestamp = "timestamp"
	configMapKeyPrefix    = "snapshot."
)

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format

	// Client overrides the cached cluster client, mainly for tests.
	Client client.Interface
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
}

// Serialize writes the snapshot data to a ConfigMap.
// The ConfigMap will have:
//   - data.snapshot.{json|yaml|txt}: the serialized snapshot
//   - data.format: the format used
//   - data.timestamp: RFC 3339 time of the write
func (w *ConfigMapWriter) Serialize(ctx context.Context, snapshot any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs, err := w.client()
	if err != nil {
		return err
	}

	content, err := Marshal(w.format, snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	data := map[string]string{
		configMapKeyPrefix + formatExtension(w.format): string(content),
		configMapKeyFormat:    string(w.format),
		configMapKeyTimestamp: time.Now().UTC().Format(time.RFC3339),
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "hostprobe",
			"app.kubernetes.io/component": "snapshot",
		}).
		WithData(data)

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	// Server-side apply creates or updates in one call.
	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: configMapFieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	return nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func (w *ConfigMapWriter) client() (client.Interface, error) {
	if w.Client != nil {
		return w.Client, nil
	}
	cs, _, err := client.GetKubeClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return cs, nil
}

// ReadConfigMap returns the serialized snapshot stored in a ConfigMap and its format.
// The format key selects the data key; otherwise the first of yaml, json is used.
func ReadConfigMap(ctx context.Context, cs client.Interface, namespace, name string) (string, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	if f, ok := cm.Data[configMapKeyFormat]; ok {
		format := Format(f)
		if content, ok := cm.Data[configMapKeyPrefix+formatExtension(format)]; ok {
			return content, format, nil
		}
	}

	for _, format := range []Format{FormatYAML, FormatJSON} {
		if content, ok := cm.Data[configMapKeyPrefix+formatExtension(format)]; ok {
			return content, format, nil
		}
	}

	return "", "", fmt.Errorf("ConfigMap %s/%s has no snapshot data", namespace, name)
}

func formatExtension(format Format) string {
	if format == FormatTable {
		return "txt"
	}
	return string(format)
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	namespace, name, ok := strings.Cut(path, "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}

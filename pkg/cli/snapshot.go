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
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/analyzer"
	"github.com/NVIDIA/hostprobe/pkg/k8s/client"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a host snapshot (default command)",
		Description: `Capture a snapshot of the local host including:
  - Operating system identity, kernel, hostname and boot time
  - CPU count and frequency, memory and per-partition disk usage
  - Installed programs (dpkg on Debian family, /Applications on macOS)
  - Network interfaces and their addresses
  - The 20 processes using the most CPU

The snapshot can be output in JSON, YAML, or table format.

# Examples

Print the snapshot as JSON:
  hostprobe snapshot

Save as YAML and print a short summary:
  hostprobe snapshot --summary --format yaml --output host.yaml

Store in a ConfigMap:
  hostprobe snapshot --output cm://monitoring/host-snapshot`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Print a condensed summary instead of the full snapshot (unless --output is also given)",
			},
			kubeconfigFlag,
			metricsFileFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFrom(ctx)
			if err != nil {
				return err
			}

			outFormat, err := parseOutputFormat(cmd, cfg.Format)
			if err != nil {
				return err
			}

			hs := &snapshotter.HostSnapshotter{
				Version: version,
				Factory: newFactory(),
			}
			snap := hs.Collect(ctx)

			output := cmd.String("output")
			summary := cmd.Bool("summary")
			out := cmd.Root().Writer

			if output != "" || !summary {
				if err := writeSnapshot(ctx, snap, outFormat, output, cmd.String("kubeconfig"), out); err != nil {
					return err
				}
			}

			if summary {
				writeSummary(out, snap, analyzer.MatchLanguage(cfg.Language))
			}

			return writeMetrics(cmd.String("metrics-file"))
		},
	}
}

// writeSnapshot serializes snap to output, or to w when output is empty.
func writeSnapshot(ctx context.Context, snap *snapshotter.Snapshot, format serializer.Format, output, kubeconfig string, w io.Writer) error {
	var ser serializer.Serializer
	if output == "" || output == serializer.StdoutURI {
		ser = serializer.NewWriter(format, w)
	} else {
		var err error
		ser, err = serializer.NewFileWriterOrStdout(format, output)
		if err != nil {
			return err
		}
	}

	if cmw, ok := ser.(*serializer.ConfigMapWriter); ok && kubeconfig != "" {
		cs, _, err := client.GetKubeClientWithConfig(kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		cmw.Client = cs
	}

	if err := ser.Serialize(ctx, snap); err != nil {
		closeSerializer(ser)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if closer, ok := ser.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close snapshot output: %w", err)
		}
	}
	return nil
}

// writeMetrics dumps the default registry to path in Prometheus text format.
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics file %q: %w", path, err)
	}
	return nil
}

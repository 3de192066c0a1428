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
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/logging"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
)

const (
	name           = "hostprobe"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	// newFactory builds the collector factory used by snapshot and analyze.
	newFactory = func() collector.Factory {
		return collector.NewDefaultFactory(
			collector.WithMaxProcesses(defaults.MaxProcesses),
		)
	}
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Where to write the snapshot: file path, ConfigMap URI (cm://namespace/name)
	or empty for stdout.`,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (supported: %v)", serializer.SupportedFormats()),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig used for cm:// locations (default: KUBECONFIG or ~/.kube/config)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}

	metricsFileFlag = &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write collection metrics in Prometheus text format to this file",
	}
)

type configKey struct{}

// Execute runs the CLI and exits non-zero on error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Host information collector",
		Description: `Collects a snapshot of the local machine (system identity, hardware,
installed programs, network interfaces and top processes) and optionally
asks a language model to analyze it.

Each section of the snapshot is either the collected data or an
{"error": "<reason>"} marker, so a failed probe never aborts the run.`,
		DefaultCommand: "snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file (default is $HOME/.hostprobe.yaml or ./.hostprobe.yaml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log errors",
			},
		},
		Before: initRoot,
		Commands: []*cli.Command{
			snapshotCmd(),
			analyzeCmd(),
		},
	}
}

// initRoot loads configuration and configures slog before any command runs,
// so flag and config overrides take effect for every log line.
func initRoot(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	level := cfg.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if cmd.Bool("quiet") {
		level = "error"
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"config", cfg.File,
		"logLevel", level)

	return context.WithValue(ctx, configKey{}, cfg), nil
}

// configFrom returns the configuration loaded by initRoot.
func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// parseOutputFormat returns the --format flag when set, otherwise fallback.
func parseOutputFormat(cmd *cli.Command, fallback string) (serializer.Format, error) {
	value := fallback
	if cmd.IsSet("format") || value == "" {
		value = cmd.String("format")
	}
	f := serializer.Format(value)
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", value)
	}
	return f, nil
}

// closeSerializer releases file handles held by a serializer.
func closeSerializer(ser serializer.Serializer) {
	if closer, ok := ser.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}

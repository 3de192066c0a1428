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
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"

	"github.com/NVIDIA/hostprobe/pkg/analyzer"
	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

// unavailableMessage is printed to stderr when no analysis answer is available.
const unavailableMessage = "analysis unavailable"

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Collect a snapshot and ask a language model to analyze it",
		Description: `Send a host snapshot to the Messages API and print the answer.

Snapshots larger than 50000 bytes of JSON are replaced by a summary of OS
identity, CPU count, memory and disk usage before sending.

A missing answer (network error, timeout, rejected key or malformed
response) is reported as "analysis unavailable" on stderr and does not
change the exit status.

# Examples

Analyze the current host:
  ANTHROPIC_API_KEY=... hostprobe analyze

Analyze a saved snapshot with a Portuguese prompt:
  hostprobe analyze --snapshot host.json --language pt-BR

Load snapshot from ConfigMap:
  hostprobe analyze --snapshot cm://monitoring/host-snapshot`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the analysis service (also HOSTPROBE_API_KEY, ANTHROPIC_API_KEY or config api_key)",
				Sources: cli.EnvVars("HOSTPROBE_API_KEY", config.EnvAPIKey),
			},
			&cli.StringFlag{
				Name:  "prompt",
				Usage: "Instruction sent with the snapshot (default: built-in prompt for --language)",
			},
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"f"},
				Usage: `Path/URI to a previously saved snapshot to analyze instead of collecting.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Also save the collected snapshot to this file or ConfigMap URI",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("Format of the saved snapshot (supported: %v)", serializer.SupportedFormats()),
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model name (default from config)",
			},
			&cli.IntFlag{
				Name:  "max-tokens",
				Usage: "Answer token limit (default from config)",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Language of the default prompt and summary (en, pt-BR)",
			},
			&cli.StringFlag{
				Name:   "endpoint",
				Usage:  "Messages API URL (default from config)",
				Hidden: true,
			},
			kubeconfigFlag,
			metricsFileFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFrom(ctx)
			if err != nil {
				return err
			}

			opts := resolveAnalyzeOptions(cmd, cfg)
			if opts.apiKey == "" {
				return errors.New("an API key is required: set --api-key, ANTHROPIC_API_KEY or api_key in the config file")
			}
			if opts.maxTokens <= 0 {
				return fmt.Errorf("invalid --max-tokens: %d", opts.maxTokens)
			}

			snap, err := loadOrCollect(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			payload, err := analyzer.Shaper{Language: opts.language}.Shape(snap, opts.prompt)
			if err != nil {
				return fmt.Errorf("failed to prepare analysis payload: %w", err)
			}
			if payload.Summarized {
				slog.Info("snapshot exceeds payload ceiling, sending summary")
			}

			client := analyzer.NewClient(
				analyzer.WithEndpoint(opts.endpoint),
				analyzer.WithModel(opts.model),
				analyzer.WithMaxTokens(opts.maxTokens),
				analyzer.WithTimeout(cfg.Timeout),
			)

			if answer, ok := client.Analyze(ctx, opts.apiKey, payload); ok {
				fmt.Fprintln(cmd.Root().Writer, answer)
			} else {
				fmt.Fprintln(cmd.Root().ErrWriter, unavailableMessage)
			}

			return writeMetrics(cmd.String("metrics-file"))
		},
	}
}

type analyzeOptions struct {
	apiKey    string
	prompt    string
	endpoint  string
	model     string
	maxTokens int
	language  language.Tag
}

// resolveAnalyzeOptions merges explicitly set flags over config values.
func resolveAnalyzeOptions(cmd *cli.Command, cfg *config.Config) analyzeOptions {
	opts := analyzeOptions{
		apiKey:    cfg.APIKey,
		prompt:    cmd.String("prompt"),
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
	if v := cmd.String("api-key"); v != "" {
		opts.apiKey = v
	}
	if cmd.IsSet("endpoint") {
		opts.endpoint = cmd.String("endpoint")
	}
	if cmd.IsSet("model") {
		opts.model = cmd.String("model")
	}
	if cmd.IsSet("max-tokens") {
		opts.maxTokens = int(cmd.Int("max-tokens"))
	}

	lang := cfg.Language
	if cmd.IsSet("language") {
		lang = cmd.String("language")
	}
	opts.language = analyzer.MatchLanguage(lang)
	return opts
}

// loadOrCollect reads the --snapshot location, or collects a fresh snapshot
// and saves it when --output is set.
func loadOrCollect(ctx context.Context, cmd *cli.Command, cfg *config.Config) (*snapshotter.Snapshot, error) {
	if path := cmd.String("snapshot"); path != "" {
		snap, err := serializer.FromFileWithKubeconfig[snapshotter.Snapshot](path, cmd.String("kubeconfig"))
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot from %q: %w", path, err)
		}
		return snap, nil
	}

	hs := &snapshotter.HostSnapshotter{
		Version: version,
		Factory: newFactory(),
	}
	snap := hs.Collect(ctx)

	if output := cmd.String("output"); output != "" {
		format, err := parseOutputFormat(cmd, cfg.Format)
		if err != nil {
			return nil, err
		}
		if err := writeSnapshot(ctx, snap, format, output, cmd.String("kubeconfig"), cmd.Root().Writer); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

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

// Package config loads hostprobe settings from an optional YAML file and the
// environment using Viper.
//
// Lookup order, highest first: explicitly set CLI flags (applied by the
// caller), HOSTPROBE_* environment variables, the config file, then defaults.
// The API key is also read from ANTHROPIC_API_KEY.
//
// Without --config, the file is searched as .hostprobe.yaml in the home
// directory and then in the working directory; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NVIDIA/hostprobe/pkg/analyzer"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/logging"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "HOSTPROBE"
	// EnvAPIKey is the conventional environment variable for the API key.
	EnvAPIKey = "ANTHROPIC_API_KEY"
	// FileName is the config file name searched without an explicit path.
	FileName = ".hostprobe"

	KeyAPIKey    = "api_key"
	KeyEndpoint  = "endpoint"
	KeyModel     = "model"
	KeyMaxTokens = "max_tokens"
	KeyTimeout   = "timeout"
	KeyLanguage  = "language"
	KeyLogLevel  = "log_level"
	KeyFormat    = "format"
)

// Config holds resolved settings.
type Config struct {
	APIKey    string        `mapstructure:"api_key"`
	Endpoint  string        `mapstructure:"endpoint"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Language  string        `mapstructure:"language"`
	LogLevel  string        `mapstructure:"log_level"`
	Format    string        `mapstructure:"format"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// Load resolves settings. An explicit path must exist and parse; otherwise
// the default locations are searched.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyAPIKey, EnvPrefix+"_API_KEY", EnvAPIKey); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", KeyAPIKey, err)
	}
	if err := v.BindEnv(KeyLogLevel, EnvPrefix+"_LOG_LEVEL", logging.EnvLogLevel); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", KeyLogLevel, err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command could run with.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyMaxTokens, c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}
	if serializer.Format(c.Format).IsUnknown() {
		return fmt.Errorf("%s: unknown output format %q", KeyFormat, c.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyEndpoint, analyzer.DefaultEndpoint)
	v.SetDefault(KeyModel, analyzer.DefaultModel)
	v.SetDefault(KeyMaxTokens, defaults.AnalysisMaxTokens)
	v.SetDefault(KeyTimeout, defaults.AnalysisTimeout)
	v.SetDefault(KeyLanguage, "en")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyFormat, string(serializer.FormatJSON))
}

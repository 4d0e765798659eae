/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Datascope Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads server settings from an optional config file and
// DATASCOPE_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server settings.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string `mapstructure:"listen_addr"`
	// MaxUploadBytes bounds the memory parsed per upload request.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	// PreviewRows is the number of rows shown in the raw-data preview.
	PreviewRows int `mapstructure:"preview_rows"`
	// HistogramBins overrides the automatic bin count; 0 keeps the
	// default rule.
	HistogramBins int `mapstructure:"histogram_bins"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ListenAddr:     "127.0.0.1:8097",
		MaxUploadBytes: 64 << 20,
		PreviewRows:    5,
		HistogramBins:  0,
	}
}

// Load reads configuration from config.yaml in the working directory
// (if present) and from DATASCOPE_ environment variables, on top of the
// defaults.
func Load() (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("max_upload_bytes", def.MaxUploadBytes)
	v.SetDefault("preview_rows", def.PreviewRows)
	v.SetDefault("histogram_bins", def.HistogramBins)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("DATASCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

/*
Copyright 2026 The varqe Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config resolves runtime settings from flags, environment
// variables, and an optional config file, in that order of precedence.
// Environment variables use the VARQE_ prefix, so log-level becomes
// VARQE_LOG_LEVEL.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the process-level knobs, as opposed to the experiment
// document which describes the physics.
type Settings struct {
	// LogLevel is one of "info", "debug", or "trace".
	LogLevel string `yaml:"logLevel"`

	// OutputDir receives traces, plots, and summaries.
	OutputDir string `yaml:"outputDir"`

	// MetricsAddr, when non-empty, serves Prometheus metrics on the
	// given listen address.
	MetricsAddr string `yaml:"metricsAddr"`

	// TraceFormat selects the convergence trace encoding, "csv" or
	// "json".
	TraceFormat string `yaml:"traceFormat"`

	// Plot enables writing convergence and scan plots.
	Plot bool `yaml:"plot"`
}

const (
	defaultLogLevel    = "info"
	defaultOutputDir   = "out"
	defaultTraceFormat = "csv"
)

// Load resolves settings. Flags registered on fs win over environment
// variables, which win over the config file named by --config or
// VARQE_CONFIG, which wins over defaults.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("output-dir", defaultOutputDir)
	v.SetDefault("metrics-addr", "")
	v.SetDefault("trace-format", defaultTraceFormat)
	v.SetDefault("plot", true)

	v.SetEnvPrefix("VARQE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Settings{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	s := Settings{
		LogLevel:    v.GetString("log-level"),
		OutputDir:   v.GetString("output-dir"),
		MetricsAddr: v.GetString("metrics-addr"),
		TraceFormat: v.GetString("trace-format"),
		Plot:        v.GetBool("plot"),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks for invalid setting values.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "info", "debug", "trace":
	default:
		return fmt.Errorf("log level must be info, debug, or trace, got %q", s.LogLevel)
	}
	switch s.TraceFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("trace format must be csv or json, got %q", s.TraceFormat)
	}
	if s.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

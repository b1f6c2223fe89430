// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return LoadFile(configFile)
}

// Config contains the options of the solvers and of the tools running them.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options `yaml:"options"`

	sourceFile string

	// if the FuncFilter is specified
	funcFilterRegex *regexp.Regexp
}

// Options are the settings that can be specified in the options section of a config file
type Options struct {
	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// SolverMode selects when a solver pass stops: "drain" (the default) visits every reachable vertex in each pass,
	// "early-stop" stops a pass on the first vertex dequeued twice.
	SolverMode string `yaml:"solver-mode"`

	// FuncFilter is a regex restricting the functions analyzed by the tools. Functions are matched by their full
	// name, e.g. "(*example.com/pkg.T).Method".
	FuncFilter string `yaml:"func-filter"`

	// Verify can be set to true to check that each result is a fixpoint by running one more pass
	Verify bool `yaml:"verify"`

	// ReportCycles can be set to true to report the elementary cycles of each graph analyzed
	ReportCycles bool `yaml:"report-cycles"`

	// MaxCycles bounds the number of cycles reported per graph when ReportCycles is true. If MaxCycles <= 0, all cycles
	// are reported.
	MaxCycles int `yaml:"max-cycles"`

	// SilenceWarn suppresses warnings
	SilenceWarn bool `yaml:"silence-warn"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile: "",
		Options: Options{
			LogLevel:     int(InfoLevel),
			SolverMode:   DefaultSolverMode,
			FuncFilter:   "",
			Verify:       false,
			ReportCycles: false,
			MaxCycles:    DefaultMaxCycles,
			SilenceWarn:  false,
		},
	}
}

// LoadFile reads a configuration from a file
func LoadFile(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return Load(filename, b)
}

// Load parses the configuration in b. The filename is used to resolve relative paths.
func Load(filename string, b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}
	cfg.sourceFile = filename

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.LogLevel < int(ErrLevel) || cfg.LogLevel > int(TraceLevel) {
		return nil, fmt.Errorf("invalid log-level %d in %s (expected %d to %d)",
			cfg.LogLevel, filename, ErrLevel, TraceLevel)
	}

	if cfg.SolverMode == "" {
		cfg.SolverMode = DefaultSolverMode
	}
	if cfg.SolverMode != SolverModeDrain && cfg.SolverMode != SolverModeEarlyStop {
		return nil, fmt.Errorf("invalid solver-mode %q in %s", cfg.SolverMode, filename)
	}

	if cfg.FuncFilter != "" {
		r, err := regexp.Compile(cfg.FuncFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid func-filter %q in %s: %w", cfg.FuncFilter, filename, err)
		}
		cfg.funcFilterRegex = r
	}

	if cfg.MaxCycles < 0 {
		cfg.MaxCycles = DefaultMaxCycles
	}
	return cfg, nil
}

// SetFuncFilter sets the function filter. It returns an error if the filter is not a valid regex.
func (c *Config) SetFuncFilter(filter string) error {
	if filter == "" {
		c.FuncFilter = ""
		c.funcFilterRegex = nil
		return nil
	}
	r, err := regexp.Compile(filter)
	if err != nil {
		return fmt.Errorf("invalid function filter %q: %w", filter, err)
	}
	c.FuncFilter = filter
	c.funcFilterRegex = r
	return nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return path.Join(path.Dir(c.sourceFile), filename)
}

// MatchFuncFilter returns true if the function name matches the function filter set in the config file. If no filter
// has been set, any name matches.
func (c Config) MatchFuncFilter(name string) bool {
	if c.funcFilterRegex != nil {
		return c.funcFilterRegex.MatchString(name)
	}
	return true
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}

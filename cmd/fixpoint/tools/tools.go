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


// Package tools contains the flags and helpers shared by the fixpoint commands.
package tools

import (
	"flag"
	"fmt"
	"go/build"
	"os"
	"runtime"

	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"github.com/awslabs/ar-go-fixpoint/analysis/fixpoint"
	"golang.org/x/tools/go/buildutil"
)

// UnparsedCommonFlags represents an unparsed CLI sub-command flags.
type UnparsedCommonFlags struct {
	FlagSet    *flag.FlagSet
	ConfigPath *string
	Verbose    *bool
	WithTest   *bool
	Mode       *string
	FuncFilter *string
	Jobs       *int
}

// NewUnparsedCommonFlags returns an unparsed flag set with a given name.
// This is useful for creating sub-commands that have the flags -config, -verbose, -with-test, -mode, -func and -j
// but need other flags in addition.
func NewUnparsedCommonFlags(name string) UnparsedCommonFlags {
	cmd := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := cmd.String("config", "", "config file path for analysis")
	verbose := cmd.Bool("verbose", false, "verbose printing on standard error")
	withTest := cmd.Bool("with-test", false, "load tests during analysis")
	mode := cmd.String("mode", "", "solver pass termination mode: drain or early-stop (overrides config)")
	funcFilter := cmd.String("func", "", "regex restricting the functions analyzed (overrides config)")
	jobs := cmd.Int("j", runtime.NumCPU(), "number of functions analyzed in parallel")
	cmd.Var((*buildutil.TagsFlag)(&build.Default.BuildTags), "build-tags", buildutil.TagsFlagDoc)
	return UnparsedCommonFlags{
		FlagSet:    cmd,
		ConfigPath: configPath,
		Verbose:    verbose,
		WithTest:   withTest,
		Mode:       mode,
		FuncFilter: funcFilter,
		Jobs:       jobs,
	}
}

// CommonFlags represents a parsed CLI sub-command flags.
type CommonFlags struct {
	FlagSet    *flag.FlagSet
	ConfigPath string
	Verbose    bool
	WithTest   bool
	Mode       string
	FuncFilter string
	Jobs       int
}

// Parse parses args and returns the values of the common flags
func (flags UnparsedCommonFlags) Parse(args []string) (CommonFlags, error) {
	if err := flags.FlagSet.Parse(args); err != nil {
		return CommonFlags{}, fmt.Errorf("failed to parse command %s with args %v: %v", flags.FlagSet.Name(), args, err)
	}
	return CommonFlags{
		FlagSet:    flags.FlagSet,
		ConfigPath: *flags.ConfigPath,
		Verbose:    *flags.Verbose,
		WithTest:   *flags.WithTest,
		Mode:       *flags.Mode,
		FuncFilter: *flags.FuncFilter,
		Jobs:       *flags.Jobs,
	}, nil
}

// NewCommonFlags returns a parsed flag set with a given name.
// Returns an error if args are invalid.
func NewCommonFlags(name string, args []string, cmdUsage string) (CommonFlags, error) {
	flags := NewUnparsedCommonFlags(name)
	SetUsage(flags.FlagSet, cmdUsage)
	return flags.Parse(args)
}

// SetUsage sets the usage of the flag set, printing cmdUsage and the options.
func SetUsage(cmd *flag.FlagSet, cmdUsage string) {
	cmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", cmdUsage)
		fmt.Fprintf(os.Stderr, "Options:\n")
		cmd.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(os.Stderr, "  %s: %s (default: %q)\n", f.Name, f.Usage, f.DefValue)
		})
	}
}

// LoadConfig loads the config file named by the flags, or the default config if there is none, and applies the
// overrides of the command line.
func LoadConfig(flags CommonFlags) (*config.Config, error) {
	var err error
	var cfg *config.Config
	if flags.ConfigPath == "" {
		cfg = config.NewDefault()
	} else {
		cfg, err = config.LoadFile(flags.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", flags.ConfigPath, err)
		}
	}
	if flags.Verbose && cfg.LogLevel < int(config.DebugLevel) {
		cfg.LogLevel = int(config.DebugLevel)
	}
	if flags.Mode != "" {
		if _, err := fixpoint.ParseMode(flags.Mode); err != nil {
			return nil, err
		}
		cfg.SolverMode = flags.Mode
	}
	if flags.FuncFilter != "" {
		if err := cfg.SetFuncFilter(flags.FuncFilter); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

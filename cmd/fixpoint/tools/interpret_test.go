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

package tools

import (
	"strings"
	"testing"

	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"github.com/awslabs/ar-go-fixpoint/analysis/fixpoint"
)

func validateHint(t *testing.T, errorMsg string, containedHint string) {
	hint := HintForErrorMessage(errorMsg)
	if !strings.Contains(hint, containedHint) {
		t.Fatalf("incorrect hint; check and update error message if necessary")
	}
}

func TestHintForFlagAfterFiles(t *testing.T) {
	errorMsg := "error: could not load program:\n -: named files must be .go files: -v"
	containedHint := "all command line flags should be before the path"
	validateHint(t, errorMsg, containedHint)
}

func TestHintForFailedLoadProgram(t *testing.T) {
	errorMsg := "error: could not load program: errors found, exiting\n"
	containedHint := "you have provided the right arguments to load a Go program"
	validateHint(t, errorMsg, containedHint)
}

func TestHintForSolverMode(t *testing.T) {
	_, err := fixpoint.ParseMode("fast")
	validateHint(t, err.Error(), "-mode")
}

func TestHintForEntryNotInGraph(t *testing.T) {
	validateHint(t, "error: main.f: "+fixpoint.ErrEntryNotInGraph.Error(), "function has no blocks")
	if HintForErrorMessage("some other error") != "" {
		t.Errorf("expected no hint")
	}
}

func TestCommonFlags(t *testing.T) {
	flags, err := NewCommonFlags("test", []string{"-mode", "early-stop", "-func", "^main\\.", "-j", "2",
		"-verbose", "main.go"}, "usage")
	if err != nil {
		t.Fatal(err)
	}
	if flags.Mode != "early-stop" || flags.FuncFilter != "^main\\." || flags.Jobs != 2 || !flags.Verbose {
		t.Errorf("unexpected flags %+v", flags)
	}
	if args := flags.FlagSet.Args(); len(args) != 1 || args[0] != "main.go" {
		t.Errorf("unexpected arguments %v", args)
	}
	cfg, err := LoadConfig(flags)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SolverMode != "early-stop" || cfg.LogLevel != int(config.DebugLevel) {
		t.Errorf("flags should override the default config: %+v", cfg.Options)
	}
	if !cfg.MatchFuncFilter("main.f") || cfg.MatchFuncFilter("fmt.Println") {
		t.Errorf("function filter not applied")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(CommonFlags{Mode: "fast"}); err == nil {
		t.Errorf("expected an error for an unknown mode")
	}
	if _, err := LoadConfig(CommonFlags{FuncFilter: "("}); err == nil {
		t.Errorf("expected an error for an invalid filter")
	}
	if _, err := LoadConfig(CommonFlags{ConfigPath: "does-not-exist.yaml"}); err == nil {
		t.Errorf("expected an error for a missing config file")
	}
}

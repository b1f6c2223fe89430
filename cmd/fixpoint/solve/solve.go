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


// Package solve implements the reach and live commands, which run a dataflow analysis on the blocks of every
// function of a program and print the entry and exit sets of each block.
package solve

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awslabs/ar-go-fixpoint/analysis"
	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"github.com/awslabs/ar-go-fixpoint/analysis/fixpoint"
	"github.com/awslabs/ar-go-fixpoint/analysis/ssacfg"
	"github.com/awslabs/ar-go-fixpoint/cmd/fixpoint/tools"
	"github.com/awslabs/ar-go-fixpoint/internal/formatutil"
	"github.com/awslabs/ar-go-fixpoint/internal/funcutil"
	"golang.org/x/tools/go/ssa"
)

// Flags represents the parsed flags of the reach and live commands
type Flags struct {
	tools.CommonFlags
	verify bool
}

// NewFlags parses the flags of the command name
func NewFlags(name string, args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags(name)
	verify := flags.FlagSet.Bool("verify", false, "check that each result is a fixpoint by running one more pass")
	tools.SetUsage(flags.FlagSet, Usage(name))
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, verify: *verify}, nil
}

// Usage returns the usage of the command name
func Usage(name string) string {
	return fmt.Sprintf(`Print the %s of each block of the functions in your Go program.

Usage:
  fixpoint %[2]s [options] package...
  fixpoint %[2]s [options] source.go

Use the -help flag to display the options.

Examples:
%% fixpoint %[2]s -func '^main\.' hello.go
`, description(name), name)
}

func description(name string) string {
	if name == "live" {
		return "live values"
	}
	return "reaching values"
}

// Run loads the program and runs the analysis in the given direction: reaching values for Forward, live values
// for Backward.
func Run(flags Flags, dir fixpoint.Direction) error {
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	if flags.verify {
		cfg.Verify = true
	}
	logger := config.NewLogGroup(cfg)

	logger.Infof(formatutil.Faint("Reading sources") + "\n")
	program, err := analysis.LoadProgram(nil, "", ssa.InstantiateGenerics, flags.WithTest, flags.FlagSet.Args())
	if err != nil {
		return err
	}
	funcs := analysis.Functions(program.Program, cfg)
	logger.Infof(formatutil.Faint("Analyzing %d functions")+"\n", len(funcs))

	reports := funcutil.MapParallel(funcs, func(fn *ssa.Function) report {
		return analyze(fn, dir, cfg, logger)
	}, flags.Jobs)

	failed := 0
	for _, r := range reports {
		if r.err != nil {
			failed++
			logger.Errorf("%s: %v\n", formatutil.SanitizeRepr(r.fn), r.err)
			continue
		}
		fmt.Print(r.text)
	}
	if failed > 0 {
		return fmt.Errorf("analysis failed on %d functions", failed)
	}
	return nil
}

// report is the output of the analysis of one function
type report struct {
	fn   *ssa.Function
	text string
	err  error
}

// Solver builds the solver of the analysis in direction dir on the blocks of fn
func Solver(fn *ssa.Function, dir fixpoint.Direction,
	opts fixpoint.Options[*ssa.BasicBlock, ssa.Value]) (*fixpoint.Solver[*ssa.BasicBlock, ssa.Value], error) {
	g := ssacfg.Blocks(fn)
	if dir == fixpoint.Backward {
		p := ssacfg.LiveValues(fn)
		return fixpoint.NewBackward[*ssa.BasicBlock, ssa.Value](g, g.Exit(), p.Analysis(g.Exit()), opts)
	}
	p := ssacfg.DefinedValues(fn)
	return fixpoint.NewForward[*ssa.BasicBlock, ssa.Value](g, g.Entry(), p.Analysis(g.Entry()), opts)
}

func analyze(fn *ssa.Function, dir fixpoint.Direction, cfg *config.Config, logger *config.LogGroup) report {
	mode, err := fixpoint.ParseMode(cfg.SolverMode)
	if err != nil {
		return report{fn: fn, err: err}
	}
	opts := fixpoint.Options[*ssa.BasicBlock, ssa.Value]{Mode: mode, Log: logger}
	s, err := Solver(fn, dir, opts)
	if err != nil {
		return report{fn: fn, err: err}
	}
	res, err := s.Solve()
	if err != nil {
		return report{fn: fn, err: err}
	}
	logger.Debugf("%s: %s fixpoint after %d passes\n", formatutil.SanitizeRepr(fn), dir, res.Passes)
	if cfg.Verify {
		ok, err := s.IsFixpoint(res)
		if err != nil {
			return report{fn: fn, err: err}
		}
		if !ok {
			return report{fn: fn, err: fmt.Errorf("result is not a fixpoint")}
		}
	}
	var b strings.Builder
	WriteResult(&b, fn, res)
	return report{fn: fn, text: b.String()}
}

// WriteResult writes the entry and exit sets of each block of fn to w. The synthetic exit block is omitted.
func WriteResult(w io.Writer, fn *ssa.Function, res *fixpoint.Result[*ssa.BasicBlock, ssa.Value]) {
	fmt.Fprintf(w, "%s\n", formatutil.Bold(formatutil.SanitizeRepr(fn)))
	for _, b := range fn.Blocks {
		fmt.Fprintf(w, "  %s %d (%s)\n", formatutil.Cyan("block"), b.Index, b.Comment)
		fmt.Fprintf(w, "    entry: %s\n", formatSet(res.Entry(b)))
		fmt.Fprintf(w, "    exit:  %s\n", formatSet(res.Exit(b)))
	}
}

func formatSet(s fixpoint.ValueSet[ssa.Value]) string {
	values := fixpoint.SortedElements(s, valueLess)
	return formatutil.Set(funcutil.Map(values, func(v ssa.Value) string { return formatutil.Sanitize(v.Name()) }))
}

// valueLess orders values by position of definition, then by name
func valueLess(a, b ssa.Value) bool {
	if a.Pos() != b.Pos() {
		return a.Pos() < b.Pos()
	}
	return a.Name() < b.Name()
}

// Main is the entry point of the reach and live commands
func Main(name string, args []string) error {
	flags, err := NewFlags(name, args)
	if err != nil {
		return err
	}
	dir := fixpoint.Forward
	if name == "live" {
		dir = fixpoint.Backward
	}
	if err := Run(flags, dir); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, formatutil.Green("done"))
	return nil
}

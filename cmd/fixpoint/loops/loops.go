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


// Package loops implements the loops command, which prints the loops of the control-flow graph of every function of
// a program.
package loops

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/awslabs/ar-go-fixpoint/analysis"
	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"github.com/awslabs/ar-go-fixpoint/analysis/ssacfg"
	"github.com/awslabs/ar-go-fixpoint/cmd/fixpoint/tools"
	"github.com/awslabs/ar-go-fixpoint/internal/formatutil"
	"github.com/awslabs/ar-go-fixpoint/internal/funcutil"
	"github.com/awslabs/ar-go-fixpoint/internal/graphutil"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/ssa"
)

// Flags represents the parsed flags of the loops command
type Flags struct {
	tools.CommonFlags
	cycles bool
}

// NewFlags parses the flags of the loops command
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("loops")
	cycles := flags.FlagSet.Bool("cycles", false, "also print the elementary cycles of each loop (overrides config)")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, cycles: *cycles}, nil
}

// Usage of the loops command
const Usage = `Print the loops of the control-flow graphs of the functions in your Go program.
A loop is a strongly connected set of blocks. The analyses need more passes to converge on functions with nested loops.

Usage:
  fixpoint loops [options] package...
  fixpoint loops [options] source.go

Use the -help flag to display the options.

Examples:
% fixpoint loops -cycles hello.go
`

// Run loads the program and prints the loops of each function that has at least one
func Run(flags Flags, w io.Writer) error {
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	if flags.cycles {
		cfg.ReportCycles = true
	}
	logger := config.NewLogGroup(cfg)

	logger.Infof(formatutil.Faint("Reading sources") + "\n")
	program, err := analysis.LoadProgram(nil, "", ssa.InstantiateGenerics, flags.WithTest, flags.FlagSet.Args())
	if err != nil {
		return err
	}
	for _, fn := range analysis.Functions(program.Program, cfg) {
		WriteLoops(w, fn, cfg)
	}
	return nil
}

// WriteLoops writes the loops of fn to w, and their elementary cycles if the config asks for them. Nothing is
// written for functions without loops.
func WriteLoops(w io.Writer, fn *ssa.Function, cfg *config.Config) {
	g := ssacfg.Blocks(fn)
	loops := graphutil.Loops[*ssa.BasicBlock](g)
	if len(loops) == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %d loops\n", formatutil.Bold(formatutil.SanitizeRepr(fn)), len(loops))
	for _, loop := range loops {
		indices := funcutil.Map(loop, func(b *ssa.BasicBlock) int { return b.Index })
		slices.Sort(indices)
		fmt.Fprintf(w, "  %s %s\n", formatutil.Cyan("loop"), formatutil.Set(funcutil.Map(indices, strconv.Itoa)))
	}
	if !cfg.ReportCycles {
		return
	}
	cycles := graphutil.FindAllElementaryCycles(graphutil.NewIndexed[*ssa.BasicBlock](g), cfg.MaxCycles)
	for _, cycle := range cycles {
		path := funcutil.Map(cycle, func(b *ssa.BasicBlock) string { return strconv.Itoa(b.Index) })
		fmt.Fprintf(w, "  %s %s\n", formatutil.Yellow("cycle"), strings.Join(path, " -> "))
	}
	if cfg.MaxCycles > 0 && len(cycles) == cfg.MaxCycles {
		fmt.Fprintf(w, "  (stopped after %d cycles)\n", cfg.MaxCycles)
	}
}

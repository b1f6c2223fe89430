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

package main

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-go-fixpoint/analysis"
	"github.com/awslabs/ar-go-fixpoint/cmd/fixpoint/loops"
	"github.com/awslabs/ar-go-fixpoint/cmd/fixpoint/solve"
	"github.com/awslabs/ar-go-fixpoint/cmd/fixpoint/tools"
)

const usage = `fixpoint: dataflow fixpoints over Go control-flow graphs
Usage:
  fixpoint [tool] [options] <Go file path(s)>
Tools:
  - reach: prints the values defined on some path to each block of each function (forward analysis)
  - live: prints the values live on entry and exit of each block of each function (backward analysis)
  - loops: prints the loops, and optionally the elementary cycles, of the control-flow graph of each function
Examples:
  Print the live values of the main package functions: fixpoint live -func '^main\.' main.go
  Check that the results are fixpoints with the early-stop solver: fixpoint reach -mode early-stop -verify main.go`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	// hardcode help flag
	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	// hardcode version flag
	if snd := os.Args[1]; snd == "-version" || snd == "--version" {
		fmt.Println(analysis.Version)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "reach", "live":
		if err := solve.Main(cmd, args); err != nil {
			errExit(err)
		}
	case "loops":
		flags, err := loops.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := loops.Run(flags, os.Stdout); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	hint := tools.HintForErrorMessage(err.Error())
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(2)
}

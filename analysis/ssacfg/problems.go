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

package ssacfg

import (
	"github.com/awslabs/ar-go-fixpoint/analysis/fixpoint"
	"github.com/awslabs/ar-go-fixpoint/analysis/genkill"
	"golang.org/x/tools/go/ssa"
)

// IsTracked returns true for the values the analyses of this package track: parameters, free variables and values
// computed by instructions. Constants, globals and functions are not tracked.
func IsTracked(v ssa.Value) bool {
	switch v.(type) {
	case *ssa.Parameter, *ssa.FreeVar:
		return true
	case ssa.Instruction:
		return true
	}
	return false
}

// definedIn returns true if v is computed by an instruction of b
func definedIn(v ssa.Value, b *ssa.BasicBlock) bool {
	instr, ok := v.(ssa.Instruction)
	return ok && instr.Block() == b
}

// DefinedValues is the forward problem computing, at each block, the values defined on some path from the entry of
// the function. The parameters and free variables are defined at the entry.
func DefinedValues(fn *ssa.Function) genkill.Problem[*ssa.BasicBlock, ssa.Value] {
	var boundary []ssa.Value
	for _, p := range fn.Params {
		boundary = append(boundary, p)
	}
	for _, fv := range fn.FreeVars {
		boundary = append(boundary, fv)
	}
	return genkill.Problem[*ssa.BasicBlock, ssa.Value]{
		Gen: func(b *ssa.BasicBlock) []ssa.Value {
			var defs []ssa.Value
			for _, instr := range b.Instrs {
				if v, ok := instr.(ssa.Value); ok {
					defs = append(defs, v)
				}
			}
			return defs
		},
		Boundary: boundary,
	}
}

// LiveValues is the backward problem computing, at each block, the values that may be used later.
//
// The operands of a phi node are used at the end of the corresponding predecessor: they are live on entry of that
// predecessor when it does not define them.
func LiveValues(fn *ssa.Function) genkill.Problem[*ssa.BasicBlock, ssa.Value] {
	return genkill.Problem[*ssa.BasicBlock, ssa.Value]{
		Gen:  upwardExposedUses,
		Kill: func(b *ssa.BasicBlock, v ssa.Value) bool { return definedIn(v, b) },
	}
}

func upwardExposedUses(b *ssa.BasicBlock) []ssa.Value {
	var uses []ssa.Value
	seen := map[ssa.Value]bool{}
	use := func(v ssa.Value) {
		if v != nil && IsTracked(v) && !definedIn(v, b) && !seen[v] {
			seen[v] = true
			uses = append(uses, v)
		}
	}
	var operands []*ssa.Value
	for _, instr := range b.Instrs {
		if _, isPhi := instr.(*ssa.Phi); isPhi {
			continue
		}
		operands = instr.Operands(operands[:0])
		for _, op := range operands {
			use(*op)
		}
	}
	for _, succ := range b.Succs {
		i := predIndex(succ, b)
		if i < 0 {
			continue
		}
		for _, instr := range succ.Instrs {
			phi, isPhi := instr.(*ssa.Phi)
			if !isPhi {
				break
			}
			if i < len(phi.Edges) {
				use(phi.Edges[i])
			}
		}
	}
	return uses
}

func predIndex(b *ssa.BasicBlock, pred *ssa.BasicBlock) int {
	for i, p := range b.Preds {
		if p == pred {
			return i
		}
	}
	return -1
}

// Reach solves DefinedValues over the graph of fn
func Reach(fn *ssa.Function,
	opts fixpoint.Options[*ssa.BasicBlock, ssa.Value]) (*fixpoint.Result[*ssa.BasicBlock, ssa.Value], error) {
	g := Blocks(fn)
	return genkill.Forward[*ssa.BasicBlock, ssa.Value](g, g.Entry(), DefinedValues(fn), opts)
}

// Live solves LiveValues over the graph of fn. The entry set of a block holds the values live on entry of the block.
func Live(fn *ssa.Function,
	opts fixpoint.Options[*ssa.BasicBlock, ssa.Value]) (*fixpoint.Result[*ssa.BasicBlock, ssa.Value], error) {
	g := Blocks(fn)
	return genkill.Backward[*ssa.BasicBlock, ssa.Value](g, g.Exit(), LiveValues(fn), opts)
}

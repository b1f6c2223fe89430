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


// Package ssacfg runs fixpoint analyses on the control-flow graphs of SSA functions.
//
// The graph of a function is the graph of its basic blocks, extended with a synthetic exit block that succeeds every
// block without successors, so that backward analyses have a single boundary vertex.
package ssacfg

import (
	"golang.org/x/tools/go/ssa"
)

// BlockGraph is the control-flow graph of a function, with a synthetic exit block
type BlockGraph struct {
	fn   *ssa.Function
	exit *ssa.BasicBlock
}

// Blocks returns the control-flow graph of fn. The function must have been built.
func Blocks(fn *ssa.Function) *BlockGraph {
	return &BlockGraph{
		fn:   fn,
		exit: &ssa.BasicBlock{Index: len(fn.Blocks), Comment: "exit"},
	}
}

// Function returns the function of the graph
func (g *BlockGraph) Function() *ssa.Function { return g.fn }

// Entry returns the entry block of the function
func (g *BlockGraph) Entry() *ssa.BasicBlock { return g.fn.Blocks[0] }

// Exit returns the synthetic exit block. It has no instructions.
func (g *BlockGraph) Exit() *ssa.BasicBlock { return g.exit }

// Vertices returns the blocks of the function in index order, followed by the exit block
func (g *BlockGraph) Vertices() []*ssa.BasicBlock {
	blocks := make([]*ssa.BasicBlock, 0, len(g.fn.Blocks)+1)
	blocks = append(blocks, g.fn.Blocks...)
	return append(blocks, g.exit)
}

// Predecessors returns the predecessors of b
func (g *BlockGraph) Predecessors(b *ssa.BasicBlock) []*ssa.BasicBlock {
	if b == g.exit {
		return ExitBlocks(g.fn)
	}
	return b.Preds
}

// Successors returns the successors of b. The successor of a block that returns or panics is the exit block.
func (g *BlockGraph) Successors(b *ssa.BasicBlock) []*ssa.BasicBlock {
	if b == g.exit {
		return nil
	}
	if len(b.Succs) == 0 {
		return []*ssa.BasicBlock{g.exit}
	}
	return b.Succs
}

// ExitBlocks returns the blocks of fn that have no successors, in index order
func ExitBlocks(fn *ssa.Function) []*ssa.BasicBlock {
	var exits []*ssa.BasicBlock
	for _, b := range fn.Blocks {
		if len(b.Succs) == 0 {
			exits = append(exits, b)
		}
	}
	return exits
}

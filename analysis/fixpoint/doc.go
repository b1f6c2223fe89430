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


/*
Package fixpoint implements iterative dataflow solvers over control-flow graphs.

An analysis implements [Analysis]: the initial value of each vertex, the join of the sets flowing out of the
predecessors of a vertex, and the transfer function of each vertex. A [Solver] binds an analysis to a [Graph] and a
boundary vertex, and [Solver.Solve] computes the entry and exit sets of every vertex by repeating passes over the graph
until the exit sets stop changing.

For example, a forward analysis where each vertex generates its own name as a fact:

	a := fixpoint.FuncsAnalysis(fixpoint.Funcs[string, string]{
		InitFn: func(v string) fixpoint.ValueSet[string] { return fixpoint.NewValueSet[string]() },
		TransferFn: func(v string, in fixpoint.ValueSet[string]) fixpoint.ValueSet[string] {
			return fixpoint.Union(in, fixpoint.NewValueSet(v))
		},
	})
	s, err := fixpoint.NewForward[string, string](g, "entry", a, fixpoint.Options[string, string]{})
	...
	res, err := s.Solve()

# Termination

The solver has no iteration limit. It terminates when the join and transfer functions are monotone over a lattice of
finite height; it is the responsibility of the analysis to ensure this.

# Pass termination modes

In [ModeDrain] a pass visits every vertex reachable from the boundary vertex once. [ModeEarlyStop] keeps the
legacy behavior where a pass stops as soon as it dequeues a vertex that was already visited during
that pass. The vertices still queued are not dropped: the next pass visits them before the boundary vertex. Both modes compute the same fixpoint on graphs where a breadth-first traversal never dequeues a visited
vertex before the queue is empty (e.g. chains and trees), but may differ in the number of passes and, on graphs with
joins and loops, in the result.
*/
package fixpoint

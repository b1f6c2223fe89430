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

package fixpoint

// Graph is the view of a control-flow graph used by the solvers. The graph must not change while a solve is running,
// and all the methods must be free of side effects.
//
// The order in which vertices are returned determines the order in which the solver visits them, so implementations
// should return vertices in a deterministic order when reproducible results matter.
type Graph[V comparable] interface {
	// Vertices returns all the vertices of the graph
	Vertices() []V

	// Predecessors returns the vertices with an edge into v
	Predecessors(v V) []V

	// Successors returns the vertices with an edge out of v
	Successors(v V) []V
}

// Analysis is the contract a dataflow analysis implements to be solved by a Solver.
//
// None of the methods may mutate the sets they receive: the solver shares sets between the entry and exit mappings and
// uses them to detect the fixpoint. Any error returned aborts the solve and is returned to the caller as-is.
type Analysis[V comparable, T comparable] interface {
	// InitValue returns the set assigned to v before any iteration. For the boundary vertex (the entry vertex of a
	// forward analysis) this is the set of facts the analysis starts with; for the other vertices it is usually the
	// bottom element of the lattice.
	InitValue(v V) (ValueSet[T], error)

	// Join combines the sets flowing out of the predecessors of a vertex. Join must be commutative and associative,
	// and must accept an empty slice, in which case it returns the bottom element of the analysis.
	Join(sets []ValueSet[T]) (ValueSet[T], error)

	// Transfer computes the set flowing out of v from the set flowing into v.
	Transfer(v V, in ValueSet[T]) (ValueSet[T], error)
}

// Funcs implements Analysis with functions that cannot fail. A nil InitFn yields empty sets and a nil TransferFn is
// the identity. JoinFn defaults to UnionJoin.
type Funcs[V comparable, T comparable] struct {
	InitFn     func(v V) ValueSet[T]
	JoinFn     func(sets []ValueSet[T]) ValueSet[T]
	TransferFn func(v V, in ValueSet[T]) ValueSet[T]
}

// FuncsAnalysis wraps f into an Analysis
func FuncsAnalysis[V comparable, T comparable](f Funcs[V, T]) Analysis[V, T] {
	return funcsAnalysis[V, T]{f}
}

type funcsAnalysis[V comparable, T comparable] struct {
	f Funcs[V, T]
}

func (a funcsAnalysis[V, T]) InitValue(v V) (ValueSet[T], error) {
	if a.f.InitFn == nil {
		return ValueSet[T]{}, nil
	}
	return a.f.InitFn(v), nil
}

func (a funcsAnalysis[V, T]) Join(sets []ValueSet[T]) (ValueSet[T], error) {
	if a.f.JoinFn == nil {
		return UnionJoin(sets), nil
	}
	return a.f.JoinFn(sets), nil
}

func (a funcsAnalysis[V, T]) Transfer(v V, in ValueSet[T]) (ValueSet[T], error) {
	if a.f.TransferFn == nil {
		return in, nil
	}
	return a.f.TransferFn(v, in), nil
}

// UnionJoin is the join of analyses over the powerset lattice ordered by inclusion. The empty set is its bottom
// element, and the join of an empty slice of sets.
func UnionJoin[T comparable](sets []ValueSet[T]) ValueSet[T] {
	return Union(sets...)
}

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


// Package genkill solves gen/kill dataflow problems, the class of analyses over sets of facts where the transfer
// function of a vertex removes the facts it kills and adds the facts it generates. Reaching definitions and
// liveness are the usual examples.
package genkill

import (
	"github.com/awslabs/ar-go-fixpoint/analysis/fixpoint"
)

// Problem is a gen/kill problem over vertices of type V and facts of type T.
//
// The set flowing out of a vertex v is gen(v) ∪ { t ∈ in | !kill(v, t) }. Sets are joined by union, so the solution
// is the least fixpoint over the powerset of facts.
type Problem[V comparable, T comparable] struct {
	// Gen returns the facts generated by v. A nil Gen generates nothing.
	Gen func(v V) []T

	// Kill returns true if v kills the fact t. A nil Kill kills nothing.
	Kill func(v V, t T) bool

	// Boundary holds the facts at the boundary vertex: flowing into the entry of a forward problem, or out of the
	// exit of a backward problem.
	Boundary []T
}

// Analysis returns the analysis solving p, where boundary is the vertex the solver starts from
func (p Problem[V, T]) Analysis(boundary V) fixpoint.Analysis[V, T] {
	return analysis[V, T]{p: p, boundary: boundary}
}

// Forward solves p forward from the entry vertex of g
func Forward[V comparable, T comparable](g fixpoint.Graph[V], entry V, p Problem[V, T],
	opts fixpoint.Options[V, T]) (*fixpoint.Result[V, T], error) {
	s, err := fixpoint.NewForward[V, T](g, entry, p.Analysis(entry), opts)
	if err != nil {
		return nil, err
	}
	return s.Solve()
}

// Backward solves p backward from the exit vertex of g. In the result, the exit set of a vertex is the set of facts
// flowing into its transfer function.
func Backward[V comparable, T comparable](g fixpoint.Graph[V], exit V, p Problem[V, T],
	opts fixpoint.Options[V, T]) (*fixpoint.Result[V, T], error) {
	s, err := fixpoint.NewBackward[V, T](g, exit, p.Analysis(exit), opts)
	if err != nil {
		return nil, err
	}
	return s.Solve()
}

type analysis[V comparable, T comparable] struct {
	p        Problem[V, T]
	boundary V
}

func (a analysis[V, T]) InitValue(v V) (fixpoint.ValueSet[T], error) {
	if v == a.boundary {
		return fixpoint.NewValueSet(a.p.Boundary...), nil
	}
	return fixpoint.NewValueSet[T](), nil
}

func (a analysis[V, T]) Join(sets []fixpoint.ValueSet[T]) (fixpoint.ValueSet[T], error) {
	return fixpoint.UnionJoin(sets), nil
}

func (a analysis[V, T]) Transfer(v V, in fixpoint.ValueSet[T]) (fixpoint.ValueSet[T], error) {
	out := fixpoint.NewValueSet[T]()
	for _, t := range in.Elements() {
		if a.p.Kill == nil || !a.p.Kill(v, t) {
			out.Add(t)
		}
	}
	if a.p.Gen != nil {
		for _, t := range a.p.Gen(v) {
			out.Add(t)
		}
	}
	return out, nil
}

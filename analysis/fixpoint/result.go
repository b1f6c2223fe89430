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

// Result contains the sets computed by a solver: the set of facts that hold right before each vertex (EntrySet) and
// right after each vertex (ExitSet). Once returned by Solve, a result should be treated as read-only.
type Result[V comparable, T comparable] struct {
	// EntrySet maps every vertex of the graph to the facts holding on entry of the vertex
	EntrySet map[V]ValueSet[T]

	// ExitSet maps every vertex of the graph to the facts holding on exit of the vertex
	ExitSet map[V]ValueSet[T]

	// Passes is the number of passes over the graph that were needed to reach the fixpoint, including the last pass
	// that did not change any set.
	Passes int

	// pending holds the vertices an early-stopped last pass left in the queue
	pending []V
}

// Entry returns the entry set of v, or nil if v is not a vertex of the solved graph
func (r *Result[V, T]) Entry(v V) ValueSet[T] {
	return r.EntrySet[v]
}

// Exit returns the exit set of v, or nil if v is not a vertex of the solved graph
func (r *Result[V, T]) Exit(v V) ValueSet[T] {
	return r.ExitSet[v]
}

// Equal returns true when both results have the same entry and exit sets. The number of passes is ignored.
func (r *Result[V, T]) Equal(other *Result[V, T]) bool {
	if r == nil || other == nil {
		return r == other
	}
	return mappingEqual(r.EntrySet, other.EntrySet) && mappingEqual(r.ExitSet, other.ExitSet)
}

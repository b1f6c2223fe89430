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

package graphutil

import "gonum.org/v1/gonum/graph/simple"

// Indexed is a dense indexing of the vertices of a graph: each vertex is mapped to an integer in [0, Order()), in the
// order of the Vertices of the original graph. Indexed implements graph.Iterator so that the algorithms of
// github.com/yourbasic/graph can be used on any graph.
type Indexed[V comparable] struct {
	vertices []V
	index    map[V]int
	succs    [][]int
}

// NewIndexed returns the indexing of g. Successors that are not vertices of g are ignored.
func NewIndexed[V comparable](g SuccessorGraph[V]) *Indexed[V] {
	vertices := g.Vertices()
	x := &Indexed[V]{
		vertices: vertices,
		index:    make(map[V]int, len(vertices)),
		succs:    make([][]int, len(vertices)),
	}
	for i, v := range vertices {
		x.index[v] = i
	}
	for i, v := range vertices {
		for _, w := range g.Successors(v) {
			if j, ok := x.index[w]; ok {
				x.succs[i] = append(x.succs[i], j)
			}
		}
	}
	return x
}

// Order returns the number of vertices. Implements graph.Iterator
func (x *Indexed[V]) Order() int {
	return len(x.vertices)
}

// Visit calls do for each successor of v. Implements graph.Iterator
func (x *Indexed[V]) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= len(x.succs) {
		return false
	}
	for _, w := range x.succs[v] {
		if do(w, 0) {
			return true
		}
	}
	return false
}

// Vertex returns the vertex with index i
func (x *Indexed[V]) Vertex(i int) V {
	return x.vertices[i]
}

// Index returns the index of v, and false if v is not a vertex of the graph
func (x *Indexed[V]) Index(v V) (int, bool) {
	i, ok := x.index[v]
	return i, ok
}

// Gonum returns a gonum directed graph whose node IDs are the indices of the vertices. Self edges are dropped since
// gonum simple graphs cannot represent them.
func (x *Indexed[V]) Gonum() Gonum {
	g := simple.NewDirectedGraph()
	for i := range x.vertices {
		g.AddNode(simple.Node(int64(i)))
	}
	for i, succs := range x.succs {
		for _, j := range succs {
			if i != j {
				g.SetEdge(simple.Edge{F: simple.Node(int64(i)), T: simple.Node(int64(j))})
			}
		}
	}
	return NewGonum(g)
}

// Reachable returns the set of vertices reachable from the vertex from, including from itself. The set is empty if
// from is not a vertex of g.
func Reachable[V comparable](g SuccessorGraph[V], from V) map[V]bool {
	x := NewIndexed(g)
	res := map[V]bool{}
	i, ok := x.Index(from)
	if !ok {
		return res
	}
	for _, id := range x.Gonum().ReachableFrom(int64(i)) {
		res[x.Vertex(int(id))] = true
	}
	return res
}

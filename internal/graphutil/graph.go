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


// Package graphutil contains graph representations that can be solved by the dataflow solvers, adapters for the
// graph libraries used in the project, and generic graph algorithms.
package graphutil

// SuccessorGraph is a graph that can be traversed along its edges
type SuccessorGraph[V comparable] interface {
	Vertices() []V
	Successors(v V) []V
}

// Digraph is a simple directed graph stored as adjacency lists. Vertices are returned in insertion order, and
// successors and predecessors in the order the edges were added.
type Digraph[V comparable] struct {
	vertices []V
	succs    map[V][]V
	preds    map[V][]V
}

// NewDigraph returns an empty graph
func NewDigraph[V comparable]() *Digraph[V] {
	return &Digraph[V]{
		vertices: nil,
		succs:    map[V][]V{},
		preds:    map[V][]V{},
	}
}

// DigraphOf returns the graph with the edges in adjacency. The vertices are the keys of adjacency in the order of
// keys, followed by the successors that are not keys, in order of appearance.
func DigraphOf[V comparable](keys []V, adjacency map[V][]V) *Digraph[V] {
	g := NewDigraph[V]()
	for _, v := range keys {
		g.AddVertex(v)
	}
	for _, v := range keys {
		for _, w := range adjacency[v] {
			g.AddEdge(v, w)
		}
	}
	return g
}

// AddVertex adds v to the graph if it is not already a vertex, and returns true if it was added.
// @mutates g
func (g *Digraph[V]) AddVertex(v V) bool {
	if _, ok := g.succs[v]; ok {
		return false
	}
	g.vertices = append(g.vertices, v)
	g.succs[v] = nil
	g.preds[v] = nil
	return true
}

// AddEdge adds an edge from v to w, adding the vertices if they are not already in the graph. Adding an edge twice
// has no effect.
// @mutates g
func (g *Digraph[V]) AddEdge(v, w V) {
	g.AddVertex(v)
	g.AddVertex(w)
	for _, x := range g.succs[v] {
		if x == w {
			return
		}
	}
	g.succs[v] = append(g.succs[v], w)
	g.preds[w] = append(g.preds[w], v)
}

// HasVertex returns true if v is a vertex of the graph
func (g *Digraph[V]) HasVertex(v V) bool {
	_, ok := g.succs[v]
	return ok
}

// Len returns the number of vertices in the graph
func (g *Digraph[V]) Len() int {
	return len(g.vertices)
}

// Vertices returns the vertices of the graph in insertion order
func (g *Digraph[V]) Vertices() []V {
	return g.vertices
}

// Successors returns the targets of the edges out of v
func (g *Digraph[V]) Successors(v V) []V {
	return g.succs[v]
}

// Predecessors returns the sources of the edges into v
func (g *Digraph[V]) Predecessors(v V) []V {
	return g.preds[v]
}

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

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"
)

// Gonum is an adapter over a Gonum directed graph. Vertices are identified by their node IDs, and all the methods
// return IDs in increasing order.
type Gonum struct {
	Graph graph.Directed
}

// NewGonum returns the adapter for g
func NewGonum(g graph.Directed) Gonum {
	return Gonum{Graph: g}
}

// Vertices returns the IDs of all the nodes in the graph
func (g Gonum) Vertices() []int64 {
	return sortedIDs(g.Graph.Nodes())
}

// Successors returns the IDs of the nodes that can be reached directly from the node with the given id
func (g Gonum) Successors(id int64) []int64 {
	return sortedIDs(g.Graph.From(id))
}

// Predecessors returns the IDs of the nodes that can reach directly the node with the given id
func (g Gonum) Predecessors(id int64) []int64 {
	return sortedIDs(g.Graph.To(id))
}

// ReachableFrom returns the IDs of the nodes reachable from the node with the given id, including itself, in
// increasing order. It returns nil if there is no node with that id.
func (g Gonum) ReachableFrom(id int64) []int64 {
	from := g.Graph.Node(id)
	if from == nil {
		return nil
	}
	df := &traverse.DepthFirst{}
	df.Walk(g.Graph, from, nil)
	var ids []int64
	for _, n := range graph.NodesOf(g.Graph.Nodes()) {
		if df.Visited(n) {
			ids = append(ids, n.ID())
		}
	}
	slices.Sort(ids)
	return ids
}

func sortedIDs(nodes graph.Nodes) []int64 {
	list := graph.NodesOf(nodes)
	ids := make([]int64, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.ID())
	}
	slices.Sort(ids)
	return ids
}

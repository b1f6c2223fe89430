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
	"github.com/yourbasic/graph"
)

// FindAllElementaryCycles finds all elementary cycles in the graph x, stopping after limit cycles if limit > 0.
// Each cycle starts and ends with the same vertex. Self edges are cycles of length one.
// This uses Donald B. Johnson's algorithm presented in
// "Finding All The Elementary Circuits of a Directed Graph", 1975
func FindAllElementaryCycles[V comparable](x *Indexed[V], limit int) [][]V {
	s := &state{
		limit:   limit,
		blocked: map[int]bool{},
		blist:   map[int]map[int]bool{},
		stack:   []int{},
		cycles:  [][]int{},
	}
	start := 0
	for start < x.Order() && !s.full() {
		// Find the strong component containing the least vertex in the subgraph induced by vertices >= start
		sub := subgraph[V]{x, start}
		least := -1
		var component []int
		for _, c := range graph.StrongComponents(sub) {
			if !sub.cyclic(c) {
				continue
			}
			m := c[0]
			for _, v := range c {
				if v < m {
					m = v
				}
			}
			if least < 0 || m < least {
				least = m
				component = c
			}
		}
		if least < 0 {
			break
		}
		s.component = map[int]bool{}
		for _, v := range component {
			s.component[v] = true
		}
		s.blocked = map[int]bool{}
		s.blist = map[int]map[int]bool{}
		s.stack = []int{}
		s.circuit(least, least, x)
		start = least + 1
	}

	cycles := make([][]V, len(s.cycles))
	for i, c := range s.cycles {
		cycles[i] = make([]V, len(c))
		for j, v := range c {
			cycles[i][j] = x.Vertex(v)
		}
	}
	return cycles
}

// subgraph is the subgraph of an indexed graph induced by the vertices >= start
type subgraph[V comparable] struct {
	x     *Indexed[V]
	start int
}

func (s subgraph[V]) Order() int {
	return s.x.Order()
}

func (s subgraph[V]) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < s.start {
		return false
	}
	return s.x.Visit(v, func(w int, c int64) bool {
		if w < s.start {
			return false
		}
		return do(w, c)
	})
}

// cyclic returns true if the strong component c contains a cycle
func (s subgraph[V]) cyclic(c []int) bool {
	if len(c) > 1 {
		return true
	}
	if len(c) == 0 || c[0] < s.start {
		return false
	}
	return s.Visit(c[0], func(w int, _ int64) bool { return w == c[0] })
}

type state struct {
	limit     int
	component map[int]bool
	blocked   map[int]bool
	blist     map[int]map[int]bool
	stack     []int
	cycles    [][]int
}

func (s *state) full() bool {
	return s.limit > 0 && len(s.cycles) >= s.limit
}

func (s *state) unblock(u int) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		delete(s.blist[u], w)
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *state) circuit(v int, start int, x graph.Iterator) bool {
	f := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	x.Visit(v, func(w int, _ int64) bool {
		if !s.component[w] || s.full() {
			return s.full()
		}
		if w == start {
			stackCopy := make([]int, len(s.stack), len(s.stack)+1)
			copy(stackCopy, s.stack)
			stackCopy = append(stackCopy, w)
			s.cycles = append(s.cycles, stackCopy)
			f = true
		} else if !s.blocked[w] {
			if s.circuit(w, start, x) {
				f = true
			}
		}
		return false
	})

	if f {
		s.unblock(v)
	} else {
		x.Visit(v, func(w int, _ int64) bool {
			if !s.component[w] {
				return false
			}
			m := s.blist[w]
			if m != nil {
				m[v] = true
			} else {
				s.blist[w] = map[int]bool{v: true}
			}
			return false
		})
	}
	s.stack = s.stack[:len(s.stack)-1]
	return f
}

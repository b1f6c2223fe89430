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

import (
	"errors"
	"fmt"

	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"github.com/awslabs/ar-go-fixpoint/internal/graphutil"
)

// ErrEntryNotInGraph is returned when a solver is bound to a boundary vertex (the entry vertex of a forward analysis,
// the exit vertex of a backward analysis) that is not a vertex of the graph.
var ErrEntryNotInGraph = errors.New("entry vertex not in graph")

// Mode selects when a pass over the graph stops
type Mode int

const (
	// ModeDrain is a standard worklist pass: vertices already visited during the pass are skipped, and the pass ends
	// when the queue is empty.
	ModeDrain Mode = iota

	// ModeEarlyStop ends the pass as soon as a vertex already visited during the pass is dequeued. Vertices still in
	// the queue stay queued: the next pass visits them first, before the boundary vertex.
	ModeEarlyStop
)

func (m Mode) String() string {
	switch m {
	case ModeDrain:
		return "drain"
	case ModeEarlyStop:
		return "early-stop"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the mode named s. The empty string is the default mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "drain":
		return ModeDrain, nil
	case "early-stop":
		return ModeEarlyStop, nil
	default:
		return ModeDrain, fmt.Errorf("unknown solver mode %q (expected drain or early-stop)", s)
	}
}

// Direction is the direction in which facts flow in the graph
type Direction int

const (
	// Forward analyses propagate facts from the entry vertex along successor edges
	Forward Direction = iota
	// Backward analyses propagate facts from the exit vertex along predecessor edges
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// PassInfo is passed to the PostPassCallback after each pass
type PassInfo[V comparable, T comparable] struct {
	// Index of the pass, starting at 1
	Index int

	// Visited lists the vertices visited during the pass, in visit order
	Visited []V

	// Out maps each vertex to the set computed by its transfer function at the end of the pass: the exit sets of a
	// forward analysis, the entry sets of a backward analysis. The callback must not modify it.
	Out map[V]ValueSet[T]

	// Changed is false when the pass did not change any set, i.e. when this was the last pass
	Changed bool
}

// Options configures a solver. The zero value is a valid configuration.
type Options[V comparable, T comparable] struct {
	// Mode selects the pass termination rule
	Mode Mode

	// Log receives pass summaries at debug level and transfers at trace level. A nil log group disables logging.
	Log *config.LogGroup

	// PostPassCallback is called after each pass, including the pass run by IsFixpoint, if it is non-nil. Useful for
	// debugging purposes.
	PostPassCallback func(PassInfo[V, T])
}

// Solver solves an analysis over a graph. A solver holds no state between calls to Solve, and different solvers can
// run concurrently as long as their graphs are not mutated.
type Solver[V comparable, T comparable] struct {
	graph     Graph[V]
	flow      Graph[V] // graph in which facts flow from predecessors to successors
	entry     V
	analysis  Analysis[V, T]
	direction Direction
	mode      Mode
	log       *config.LogGroup
	postPass  func(PassInfo[V, T])
}

// NewForward returns a solver running analysis forward over g, starting from the entry vertex.
func NewForward[V comparable, T comparable](g Graph[V], entry V, analysis Analysis[V, T],
	opts Options[V, T]) (*Solver[V, T], error) {
	return newSolver(Forward, g, entry, analysis, opts)
}

// NewBackward returns a solver running analysis backward over g, starting from the exit vertex. The InitValue of exit
// is its exit set for every pass, and the sets flow from the successors of a vertex to the vertex.
func NewBackward[V comparable, T comparable](g Graph[V], exit V, analysis Analysis[V, T],
	opts Options[V, T]) (*Solver[V, T], error) {
	return newSolver(Backward, g, exit, analysis, opts)
}

func newSolver[V comparable, T comparable](dir Direction, g Graph[V], entry V, analysis Analysis[V, T],
	opts Options[V, T]) (*Solver[V, T], error) {
	if g == nil || analysis == nil {
		return nil, fmt.Errorf("solver needs a graph and an analysis")
	}
	found := false
	for _, v := range g.Vertices() {
		if v == entry {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %v", ErrEntryNotInGraph, entry)
	}
	var flow Graph[V] = g
	if dir == Backward {
		flow = reversed[V]{g}
	}
	s := &Solver[V, T]{
		graph:     g,
		flow:      flow,
		entry:     entry,
		analysis:  analysis,
		direction: dir,
		mode:      opts.Mode,
		log:       opts.Log,
		postPass:  opts.PostPassCallback,
	}
	if s.log.Enabled(config.DebugLevel) {
		reachable := graphutil.Reachable[V](flow, entry)
		for _, v := range g.Vertices() {
			if !reachable[v] {
				s.log.Debugf("vertex %v is not reachable from %v, its sets will keep their initial value\n", v, entry)
			}
		}
	}
	return s, nil
}

// Graph returns the graph the solver is bound to
func (s *Solver[V, T]) Graph() Graph[V] { return s.graph }

// Entry returns the boundary vertex of the solver: the entry of a forward solver, the exit of a backward solver
func (s *Solver[V, T]) Entry() V { return s.entry }

// Direction returns the direction of the solver
func (s *Solver[V, T]) Direction() Direction { return s.direction }

// Mode returns the pass termination mode of the solver
func (s *Solver[V, T]) Mode() Mode { return s.mode }

// Solve runs the analysis until the sets reach a fixpoint and returns the entry and exit set of every vertex.
// Errors returned by the analysis abort the solve and are returned unmodified.
//
// Solve does not terminate if the analysis does not converge.
func (s *Solver[V, T]) Solve() (*Result[V, T], error) {
	// in maps vertices to the input of their transfer function, out to its output
	in := map[V]ValueSet[T]{}
	out := map[V]ValueSet[T]{}
	for _, v := range s.graph.Vertices() {
		init, err := s.analysis.InitValue(v)
		if err != nil {
			return nil, err
		}
		in[v] = init
		out[v] = init
	}
	boundary := in[s.entry]

	pass := 0
	var pending []V // vertices left in the queue by an early-stopped pass
	for { // until fixpoint is reached
		pass++
		prev := out
		out = copyMapping(prev)
		visited, rest, err := s.runPass(pending, boundary, in, out)
		pending = rest
		if err != nil {
			return nil, err
		}
		changed := !mappingEqual(prev, out)
		s.log.Debugf("%s pass %d: visited %d of %d vertices, changed: %v\n",
			s.direction, pass, len(visited), len(out), changed)
		if s.postPass != nil {
			s.postPass(PassInfo[V, T]{Index: pass, Visited: visited, Out: out, Changed: changed})
		}
		if !changed {
			break
		}
	}

	if s.direction == Backward {
		return &Result[V, T]{EntrySet: out, ExitSet: in, Passes: pass, pending: pending}, nil
	}
	return &Result[V, T]{EntrySet: in, ExitSet: out, Passes: pass, pending: pending}, nil
}

// IsFixpoint runs one more pass of the analysis starting from the sets in r, and returns true if that pass does not
// change any set. In ModeEarlyStop, the pass first visits the vertices that the last pass of Solve left in its queue.
// The PostPassCallback is called after that pass. The result r is not modified.
func (s *Solver[V, T]) IsFixpoint(r *Result[V, T]) (bool, error) {
	if r == nil {
		return false, fmt.Errorf("nil result")
	}
	var in, out map[V]ValueSet[T]
	if s.direction == Backward {
		in, out = copyMapping(r.ExitSet), copyMapping(r.EntrySet)
	} else {
		in, out = copyMapping(r.EntrySet), copyMapping(r.ExitSet)
	}
	boundary, ok := in[s.entry]
	if !ok {
		return false, fmt.Errorf("%w: %v has no set in the result", ErrEntryNotInGraph, s.entry)
	}
	before := copyMapping(out)
	pending := append([]V(nil), r.pending...)
	visited, _, err := s.runPass(pending, boundary, in, out)
	if err != nil {
		return false, err
	}
	fixed := mappingEqual(before, out)
	if s.postPass != nil {
		s.postPass(PassInfo[V, T]{Index: r.Passes + 1, Visited: visited, Out: out, Changed: !fixed})
	}
	return fixed, nil
}

// runPass runs a single pass over the graph and updates the in and out mappings. The queue starts with the pending
// vertices followed by the boundary vertex; pending is only non-empty in ModeEarlyStop.
// It returns the vertices visited, in order, and the vertices still queued when the pass stopped.
func (s *Solver[V, T]) runPass(pending []V, boundary ValueSet[T], in, out map[V]ValueSet[T]) ([]V, []V, error) {
	queue := append(pending, s.entry)
	visited := map[V]bool{}
	var order []V

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if visited[v] {
			if s.mode == ModeEarlyStop {
				return order, queue, nil
			}
			continue
		}
		if _, ok := out[v]; !ok {
			s.log.Tracef("skipping %v: not a vertex of the graph\n", v)
			continue
		}
		visited[v] = true
		order = append(order, v)

		for _, next := range s.flow.Successors(v) {
			queue = append(queue, next)
		}

		entrySet, err := s.entrySet(v, boundary, out)
		if err != nil {
			return order, nil, err
		}
		in[v] = entrySet

		exitSet, err := s.analysis.Transfer(v, entrySet)
		if err != nil {
			return order, nil, err
		}
		s.log.Tracef("transfer(%v): %d -> %d facts\n", v, entrySet.Len(), exitSet.Len())
		out[v] = exitSet
	}
	return order, nil, nil
}

// entrySet computes the input of the transfer function of v. The boundary vertex always uses its initial value;
// any other vertex joins the outputs of its predecessors that have one.
func (s *Solver[V, T]) entrySet(v V, boundary ValueSet[T], out map[V]ValueSet[T]) (ValueSet[T], error) {
	if v == s.entry {
		return boundary, nil
	}
	preds := s.flow.Predecessors(v)
	inputs := make([]ValueSet[T], 0, len(preds))
	for _, p := range preds {
		if set, ok := out[p]; ok {
			inputs = append(inputs, set)
		}
	}
	return s.analysis.Join(inputs)
}

// reversed is the graph g with all its edges reversed
type reversed[V comparable] struct {
	g Graph[V]
}

func (r reversed[V]) Vertices() []V        { return r.g.Vertices() }
func (r reversed[V]) Predecessors(v V) []V { return r.g.Successors(v) }
func (r reversed[V]) Successors(v V) []V   { return r.g.Predecessors(v) }

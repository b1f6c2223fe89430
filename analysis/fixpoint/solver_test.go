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

package fixpoint_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"github.com/awslabs/ar-go-fixpoint/analysis/fixpoint"
	"github.com/awslabs/ar-go-fixpoint/internal/graphutil"
	"golang.org/x/exp/slices"
)

type stringSet = fixpoint.ValueSet[string]

func graphOf(keys []string, adjacency map[string][]string) *graphutil.Digraph[string] {
	return graphutil.DigraphOf(keys, adjacency)
}

// namesAnalysis starts with {x} at the entry vertex and adds the name of each vertex to the facts flowing through it
func namesAnalysis(entry string) fixpoint.Analysis[string, string] {
	return fixpoint.FuncsAnalysis(fixpoint.Funcs[string, string]{
		InitFn: func(v string) stringSet {
			if v == entry {
				return fixpoint.NewValueSet("x")
			}
			return fixpoint.NewValueSet[string]()
		},
		TransferFn: func(v string, in stringSet) stringSet {
			return fixpoint.Union(in, fixpoint.NewValueSet(v))
		},
	})
}

func assertSet(t *testing.T, what string, got stringSet, expected ...string) {
	t.Helper()
	if !got.Equal(fixpoint.NewValueSet(expected...)) {
		t.Errorf("%s: expected %v, got %v", what, expected,
			fixpoint.SortedElements(got, func(a, b string) bool { return a < b }))
	}
}

func solve(t *testing.T, g fixpoint.Graph[string], entry string, a fixpoint.Analysis[string, string],
	opts fixpoint.Options[string, string]) *fixpoint.Result[string, string] {
	t.Helper()
	s, err := fixpoint.NewForward[string, string](g, entry, a, opts)
	if err != nil {
		t.Fatalf("failed to create solver: %v", err)
	}
	res, err := s.Solve()
	if err != nil {
		t.Fatalf("failed to solve: %v", err)
	}
	ok, err := s.IsFixpoint(res)
	if err != nil || !ok {
		t.Fatalf("result is not a fixpoint (err: %v)", err)
	}
	return res
}

func TestTwoNodeChain(t *testing.T) {
	g := graphOf([]string{"A", "B"}, map[string][]string{"A": {"B"}})
	a := fixpoint.FuncsAnalysis(fixpoint.Funcs[string, string]{
		InitFn: func(v string) stringSet {
			if v == "A" {
				return fixpoint.NewValueSet("x")
			}
			return fixpoint.NewValueSet[string]()
		},
	})
	for _, mode := range []fixpoint.Mode{fixpoint.ModeDrain, fixpoint.ModeEarlyStop} {
		t.Run(mode.String(), func(t *testing.T) {
			res := solve(t, g, "A", a, fixpoint.Options[string, string]{Mode: mode})
			assertSet(t, "entry A", res.Entry("A"), "x")
			assertSet(t, "exit A", res.Exit("A"), "x")
			assertSet(t, "entry B", res.Entry("B"), "x")
			assertSet(t, "exit B", res.Exit("B"), "x")
			if res.Passes != 2 {
				t.Errorf("expected 2 passes, got %d", res.Passes)
			}
		})
	}
}

func TestDiamond(t *testing.T) {
	g := graphOf([]string{"A", "B", "C", "D"}, map[string][]string{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}})
	joins := 0
	a := namesAnalysis("A")
	counting := fixpoint.FuncsAnalysis(fixpoint.Funcs[string, string]{
		InitFn: func(v string) stringSet {
			s, _ := a.InitValue(v)
			return s
		},
		JoinFn: func(sets []stringSet) stringSet {
			joins++
			return fixpoint.UnionJoin(sets)
		},
		TransferFn: func(v string, in stringSet) stringSet {
			s, _ := a.Transfer(v, in)
			return s
		},
	})
	for _, mode := range []fixpoint.Mode{fixpoint.ModeDrain, fixpoint.ModeEarlyStop} {
		t.Run(mode.String(), func(t *testing.T) {
			joins = 0
			res := solve(t, g, "A", counting, fixpoint.Options[string, string]{Mode: mode})
			assertSet(t, "entry D", res.Entry("D"), "x", "A", "B", "C")
			assertSet(t, "exit D", res.Exit("D"), "x", "A", "B", "C", "D")
			assertSet(t, "exit B", res.Exit("B"), "x", "A", "B")
			assertSet(t, "exit C", res.Exit("C"), "x", "A", "C")
			if res.Passes != 2 {
				t.Errorf("expected 2 passes, got %d", res.Passes)
			}
			if joins == 0 {
				t.Errorf("join was never called")
			}
		})
	}
}

// growingAnalysis adds the size of the entry set as a new fact, until the set has max elements
func growingAnalysis(max int) fixpoint.Analysis[string, int] {
	return fixpoint.FuncsAnalysis(fixpoint.Funcs[string, int]{
		TransferFn: func(v string, in fixpoint.ValueSet[int]) fixpoint.ValueSet[int] {
			if in.Len() >= max {
				return in
			}
			return fixpoint.Union(in, fixpoint.NewValueSet(in.Len()))
		},
	})
}

func TestSelfLoop(t *testing.T) {
	t.Run("entry", func(t *testing.T) {
		g := graphOf([]string{"A"}, map[string][]string{"A": {"A"}})
		s, err := fixpoint.NewForward[string, int](g, "A", growingAnalysis(4), fixpoint.Options[string, int]{})
		if err != nil {
			t.Fatal(err)
		}
		res, err := s.Solve()
		if err != nil {
			t.Fatal(err)
		}
		// the entry set of the entry vertex never changes, so the loop has no effect
		if res.Entry("A").Len() != 0 || !res.Exit("A").Equal(fixpoint.NewValueSet(0)) {
			t.Errorf("unexpected sets for A: %v -> %v", res.Entry("A"), res.Exit("A"))
		}
		if res.Passes != 2 {
			t.Errorf("expected 2 passes, got %d", res.Passes)
		}
	})
	t.Run("inner", func(t *testing.T) {
		g := graphOf([]string{"E", "A"}, map[string][]string{"E": {"A"}, "A": {"A"}})
		for _, mode := range []fixpoint.Mode{fixpoint.ModeDrain, fixpoint.ModeEarlyStop} {
			s, err := fixpoint.NewForward[string, int](g, "E", growingAnalysis(4),
				fixpoint.Options[string, int]{Mode: mode})
			if err != nil {
				t.Fatal(err)
			}
			res, err := s.Solve()
			if err != nil {
				t.Fatal(err)
			}
			expected := fixpoint.NewValueSet(0, 1, 2, 3)
			if !res.Entry("A").Equal(expected) || !res.Exit("A").Equal(expected) {
				t.Errorf("%s: unexpected sets for A: %v -> %v", mode, res.Entry("A"), res.Exit("A"))
			}
			if res.Passes != 4 {
				t.Errorf("%s: expected 4 passes, got %d", mode, res.Passes)
			}
		}
	})
}

func TestModesDiffer(t *testing.T) {
	// In a breadth-first pass from A, B is dequeued a second time (through its self loop) before D is dequeued
	g := graphOf([]string{"A", "B", "C", "D"}, map[string][]string{"A": {"B", "C"}, "B": {"B"}, "C": {"D"}})
	var visits [][]string
	opts := fixpoint.Options[string, string]{
		PostPassCallback: func(info fixpoint.PassInfo[string, string]) {
			visits = append(visits, info.Visited)
		},
	}

	res := solve(t, g, "A", namesAnalysis("A"), opts)
	assertSet(t, "drain: exit D", res.Exit("D"), "x", "A", "C", "D")
	assertSet(t, "drain: exit B", res.Exit("B"), "x", "A", "B")
	if !slices.Equal(visits[0], []string{"A", "B", "C", "D"}) {
		t.Errorf("drain: unexpected visit order %v", visits[0])
	}
	if res.Passes != 2 {
		t.Errorf("drain: expected 2 passes, got %d", res.Passes)
	}

	// The first pass stops before D. D stays queued and is visited first in the next passes.
	visits = nil
	opts.Mode = fixpoint.ModeEarlyStop
	s, err := fixpoint.NewForward[string, string](g, "A", namesAnalysis("A"), opts)
	if err != nil {
		t.Fatal(err)
	}
	res, err = s.Solve()
	if err != nil {
		t.Fatal(err)
	}
	assertSet(t, "early-stop: entry D", res.Entry("D"), "x", "A", "C")
	assertSet(t, "early-stop: exit D", res.Exit("D"), "x", "A", "C", "D")
	assertSet(t, "early-stop: exit C", res.Exit("C"), "x", "A", "C")
	expected := [][]string{{"A", "B", "C"}, {"D", "A", "B", "C"}, {"D", "A", "B", "C"}}
	if len(visits) != len(expected) || res.Passes != len(expected) {
		t.Fatalf("early-stop: expected %d passes, got %d (%v)", len(expected), res.Passes, visits)
	}
	for i, v := range visits {
		if !slices.Equal(v, expected[i]) {
			t.Errorf("early-stop: pass %d: expected visit order %v, got %v", i+1, expected[i], v)
		}
	}

	ok, err := s.IsFixpoint(res)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("early-stop: result should be a fixpoint")
	}
	if len(visits) != len(expected)+1 || !slices.Equal(visits[len(visits)-1], []string{"D", "A", "B", "C"}) {
		t.Errorf("early-stop: verification pass should start from the queued vertices, got %v", visits)
	}
}

func TestEntryInvariance(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, map[string][]string{"A": {"B"}, "B": {"C", "A"}, "C": {"A"}})
	for _, mode := range []fixpoint.Mode{fixpoint.ModeDrain, fixpoint.ModeEarlyStop} {
		res := solve(t, g, "A", namesAnalysis("A"), fixpoint.Options[string, string]{Mode: mode})
		assertSet(t, mode.String()+": entry A", res.Entry("A"), "x")
		assertSet(t, mode.String()+": exit C", res.Exit("C"), "x", "A", "B", "C")
	}
}

func TestCoverage(t *testing.T) {
	// U is not reachable from A and keeps its initial value
	g := graphOf([]string{"A", "B", "U"}, map[string][]string{"A": {"B"}, "U": {"B"}})
	var buf bytes.Buffer
	log := config.NewLogGroupWithLevel(config.TraceLevel, &buf)
	res := solve(t, g, "A", namesAnalysis("A"), fixpoint.Options[string, string]{Log: log})
	for _, v := range g.Vertices() {
		if _, ok := res.EntrySet[v]; !ok {
			t.Errorf("no entry set for %s", v)
		}
		if _, ok := res.ExitSet[v]; !ok {
			t.Errorf("no exit set for %s", v)
		}
	}
	assertSet(t, "exit U", res.Exit("U"))
	// the initial exit set of U still flows into B
	assertSet(t, "entry B", res.Entry("B"), "x", "A")
	if res.Entry("Z") != nil {
		t.Errorf("Z is not a vertex")
	}
	logs := buf.String()
	for _, expected := range []string{"vertex U is not reachable from A", "forward pass 1", "transfer(B)"} {
		if !strings.Contains(logs, expected) {
			t.Errorf("expected %q in logs:\n%s", expected, logs)
		}
	}
}

// ghostGraph reports edges to and from a vertex that is not one of its vertices
type ghostGraph struct {
	*graphutil.Digraph[string]
}

func (g ghostGraph) Predecessors(v string) []string {
	if v == "B" {
		return []string{"ghost"}
	}
	return g.Digraph.Predecessors(v)
}

func (g ghostGraph) Successors(v string) []string {
	if v == "A" {
		return []string{"ghost", "B"}
	}
	return g.Digraph.Successors(v)
}

func TestJoinOfNothing(t *testing.T) {
	g := ghostGraph{graphOf([]string{"A", "B"}, map[string][]string{"A": {"B"}})}
	var joinSizes []int
	a := fixpoint.FuncsAnalysis(fixpoint.Funcs[string, string]{
		InitFn: func(v string) stringSet { return fixpoint.NewValueSet("init-" + v) },
		JoinFn: func(sets []stringSet) stringSet {
			joinSizes = append(joinSizes, len(sets))
			if len(sets) == 0 {
				return fixpoint.NewValueSet("bottom")
			}
			return fixpoint.UnionJoin(sets)
		},
	})
	res := solve(t, g, "A", a, fixpoint.Options[string, string]{})
	assertSet(t, "entry B", res.Entry("B"), "bottom")
	assertSet(t, "exit B", res.Exit("B"), "bottom")
	if _, ok := res.EntrySet["ghost"]; ok {
		t.Errorf("ghost should not be in the result")
	}
	for _, n := range joinSizes {
		if n != 0 {
			t.Errorf("expected only joins of no sets, got a join of %d sets", n)
		}
	}
}

func TestMonotoneGrowth(t *testing.T) {
	g := graphOf([]string{"A", "B", "C", "D", "E"}, map[string][]string{
		"A": {"B"}, "B": {"C", "E"}, "C": {"D"}, "D": {"B", "E"},
	})
	var previous map[string]stringSet
	passes := 0
	opts := fixpoint.Options[string, string]{
		PostPassCallback: func(info fixpoint.PassInfo[string, string]) {
			passes++
			if info.Index != passes {
				t.Errorf("expected pass index %d, got %d", passes, info.Index)
			}
			for v, s := range previous {
				if !s.SubsetOf(info.Out[v]) {
					t.Errorf("pass %d: exit set of %s shrank", info.Index, v)
				}
			}
			previous = info.Out
		},
	}
	res := solve(t, g, "A", namesAnalysis("A"), opts)
	if passes != res.Passes {
		t.Errorf("callback called %d times for %d passes", passes, res.Passes)
	}
	assertSet(t, "entry B", res.Entry("B"), "x", "A", "B", "C", "D")
	assertSet(t, "exit E", res.Exit("E"), "x", "A", "B", "C", "D", "E")
}

func TestIsFixpoint(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, map[string][]string{"A": {"B"}, "B": {"C"}})
	s, err := fixpoint.NewForward[string, string](g, "A", namesAnalysis("A"), fixpoint.Options[string, string]{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Solve()
	if err != nil {
		t.Fatal(err)
	}
	ok, err := s.IsFixpoint(res)
	if err != nil || !ok {
		t.Fatalf("solved result should be a fixpoint (err: %v)", err)
	}

	broken := &fixpoint.Result[string, string]{
		EntrySet: map[string]stringSet{},
		ExitSet:  map[string]stringSet{},
	}
	for v := range res.EntrySet {
		broken.EntrySet[v] = res.EntrySet[v]
		broken.ExitSet[v] = res.ExitSet[v]
	}
	broken.ExitSet["B"] = fixpoint.NewValueSet[string]()
	ok, err = s.IsFixpoint(broken)
	if err != nil || ok {
		t.Errorf("modified result should not be a fixpoint (err: %v)", err)
	}
	if broken.ExitSet["B"].Len() != 0 {
		t.Errorf("IsFixpoint should not modify its argument")
	}
	if !res.Equal(res) || res.Equal(broken) {
		t.Errorf("unexpected result equality")
	}
	if _, err := s.IsFixpoint(&fixpoint.Result[string, string]{}); !errors.Is(err, fixpoint.ErrEntryNotInGraph) {
		t.Errorf("expected ErrEntryNotInGraph for an empty result, got %v", err)
	}
}

func TestEntryNotInGraph(t *testing.T) {
	g := graphOf([]string{"A", "B"}, map[string][]string{"A": {"B"}})
	s, err := fixpoint.NewForward[string, string](g, "Z", namesAnalysis("Z"), fixpoint.Options[string, string]{})
	if s != nil || !errors.Is(err, fixpoint.ErrEntryNotInGraph) {
		t.Errorf("expected ErrEntryNotInGraph, got %v", err)
	}
	_, err = fixpoint.NewBackward[string, string](g, "Z", namesAnalysis("Z"), fixpoint.Options[string, string]{})
	if !errors.Is(err, fixpoint.ErrEntryNotInGraph) {
		t.Errorf("expected ErrEntryNotInGraph, got %v", err)
	}
}

var errAnalysis = errors.New("analysis failed")

// failingAnalysis fails in the given stage when called on vertex failOn
type failingAnalysis struct {
	stage  string
	failOn string
}

func (f failingAnalysis) InitValue(v string) (stringSet, error) {
	if f.stage == "init" && v == f.failOn {
		return nil, errAnalysis
	}
	return fixpoint.NewValueSet[string](), nil
}

func (f failingAnalysis) Join(sets []stringSet) (stringSet, error) {
	if f.stage == "join" {
		return nil, errAnalysis
	}
	return fixpoint.UnionJoin(sets), nil
}

func (f failingAnalysis) Transfer(v string, in stringSet) (stringSet, error) {
	if f.stage == "transfer" && v == f.failOn {
		return nil, errAnalysis
	}
	return fixpoint.Union(in, fixpoint.NewValueSet(v)), nil
}

func TestAnalysisErrors(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, map[string][]string{"A": {"B"}, "B": {"C"}})
	for _, stage := range []string{"init", "join", "transfer"} {
		called := false
		s, err := fixpoint.NewForward[string, string](g, "A", failingAnalysis{stage: stage, failOn: "B"},
			fixpoint.Options[string, string]{PostPassCallback: func(fixpoint.PassInfo[string, string]) { called = true }})
		if err != nil {
			t.Fatal(err)
		}
		res, err := s.Solve()
		if res != nil {
			t.Errorf("%s: expected no result", stage)
		}
		if err != errAnalysis {
			t.Errorf("%s: expected the analysis error unmodified, got %v", stage, err)
		}
		if called {
			t.Errorf("%s: no pass should complete", stage)
		}
	}
}

func TestBackward(t *testing.T) {
	g := graphOf([]string{"A", "B", "C", "D"}, map[string][]string{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}})
	s, err := fixpoint.NewBackward[string, string](g, "D", namesAnalysis("D"), fixpoint.Options[string, string]{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Direction() != fixpoint.Backward || s.Entry() != "D" || s.Mode() != fixpoint.ModeDrain {
		t.Errorf("unexpected solver configuration")
	}
	res, err := s.Solve()
	if err != nil {
		t.Fatal(err)
	}
	assertSet(t, "exit D", res.Exit("D"), "x")
	assertSet(t, "entry D", res.Entry("D"), "x", "D")
	assertSet(t, "exit B", res.Exit("B"), "x", "D")
	assertSet(t, "entry B", res.Entry("B"), "x", "D", "B")
	assertSet(t, "exit A", res.Exit("A"), "x", "D", "B", "C")
	assertSet(t, "entry A", res.Entry("A"), "x", "D", "B", "C", "A")
	ok, err := s.IsFixpoint(res)
	if err != nil || !ok {
		t.Errorf("backward result should be a fixpoint (err: %v)", err)
	}
}

func TestParseMode(t *testing.T) {
	for name, expected := range map[string]fixpoint.Mode{
		"":           fixpoint.ModeDrain,
		"drain":      fixpoint.ModeDrain,
		"early-stop": fixpoint.ModeEarlyStop,
	} {
		m, err := fixpoint.ParseMode(name)
		if err != nil || m != expected {
			t.Errorf("ParseMode(%q) = %v, %v", name, m, err)
		}
	}
	if _, err := fixpoint.ParseMode("fast"); err == nil {
		t.Errorf("expected an error for an unknown mode")
	}
}

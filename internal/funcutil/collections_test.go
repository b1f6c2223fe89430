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

package funcutil

import (
	"strconv"
	"testing"
)

func TestMapParallel(t *testing.T) {
	a := make([]int, 100)
	for i := range a {
		a[i] = i
	}
	for _, n := range []int{0, 1, 4, 200} {
		res := MapParallel(a, strconv.Itoa, n)
		if len(res) != len(a) {
			t.Fatalf("expected %d results, got %d", len(a), len(res))
		}
		for i, s := range res {
			if s != strconv.Itoa(i) {
				t.Fatalf("with %d routines: result %d is %q", n, i, s)
			}
		}
	}
	if len(MapParallel([]int{}, strconv.Itoa, 3)) != 0 {
		t.Errorf("expected no results")
	}
}

func TestMapContains(t *testing.T) {
	b := Map([]int{1, 2, 3}, func(x int) int { return x * x })
	if !Contains(b, 9) || Contains(b, 3) {
		t.Errorf("unexpected result %v", b)
	}
	if Exists([]string{}, func(string) bool { return true }) {
		t.Errorf("nothing exists in an empty slice")
	}
}

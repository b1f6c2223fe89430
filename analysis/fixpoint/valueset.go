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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ValueSet is a set of dataflow facts. Only elements mapped to true are members of the set; all the functions in this
// package maintain that invariant.
type ValueSet[T comparable] map[T]bool

// NewValueSet returns a set containing the elements provided.
func NewValueSet[T comparable](elements ...T) ValueSet[T] {
	s := make(ValueSet[T], len(elements))
	for _, x := range elements {
		s[x] = true
	}
	return s
}

// Add adds x to the set and returns true if x was not already in the set.
// @mutates s
func (s ValueSet[T]) Add(x T) bool {
	if s[x] {
		return false
	}
	s[x] = true
	return true
}

// Has returns true if x is in the set. Has can be called on a nil set.
func (s ValueSet[T]) Has(x T) bool {
	return s[x]
}

// Len returns the number of elements in the set
func (s ValueSet[T]) Len() int {
	n := 0
	for _, b := range s {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a copy of the set. The copy of a nil set is an empty, non-nil set.
func (s ValueSet[T]) Clone() ValueSet[T] {
	c := make(ValueSet[T], len(s))
	for x, b := range s {
		if b {
			c[x] = true
		}
	}
	return c
}

// Equal returns true when s and other contain the same elements. A nil set is equal to an empty set.
func (s ValueSet[T]) Equal(other ValueSet[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for x, b := range s {
		if b && !other[x] {
			return false
		}
	}
	return true
}

// SubsetOf returns true when every element of s is in other.
func (s ValueSet[T]) SubsetOf(other ValueSet[T]) bool {
	for x, b := range s {
		if b && !other[x] {
			return false
		}
	}
	return true
}

// Elements returns the elements of the set in unspecified order.
func (s ValueSet[T]) Elements() []T {
	elts := make([]T, 0, len(s))
	for _, x := range maps.Keys(s) {
		if s[x] {
			elts = append(elts, x)
		}
	}
	return elts
}

// SortedElements returns the elements of the set, sorted with less. Use it to print sets deterministically.
func SortedElements[T comparable](s ValueSet[T], less func(a, b T) bool) []T {
	elts := s.Elements()
	slices.SortFunc(elts, less)
	return elts
}

// Union returns a new set containing the elements of all the sets provided. The union of no sets is the empty set.
func Union[T comparable](sets ...ValueSet[T]) ValueSet[T] {
	u := ValueSet[T]{}
	for _, s := range sets {
		for x, b := range s {
			if b {
				u[x] = true
			}
		}
	}
	return u
}

// mappingEqual returns true when both mappings have the same keys and equal sets for each key.
func mappingEqual[V comparable, T comparable](a, b map[V]ValueSet[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for v, sa := range a {
		sb, ok := b[v]
		if !ok || !sa.Equal(sb) {
			return false
		}
	}
	return true
}

// copyMapping returns a shallow copy of the mapping. Sets are never mutated after they are stored in a mapping, so
// sharing them between copies is safe.
func copyMapping[V comparable, T comparable](m map[V]ValueSet[T]) map[V]ValueSet[T] {
	c := make(map[V]ValueSet[T], len(m))
	for v, s := range m {
		c[v] = s
	}
	return c
}

// Copyright 2025 Ian Lewis
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

// Package index implements comparator driven sorting and range lookup over
// sorted arrays.
package index

import (
	"slices"
	"sort"
)

// Sort sorts s in place. cmp(a, b) should return a negative number when
// a < b, a positive number when a > b and zero when a == b or a and b are
// incomparable in the sense of a strict weak ordering. The sort is stable,
// elements which compare as equal keep their original order.
func Sort[V any](s []V, cmp func(a, b V) int) {
	slices.SortStableFunc(s, cmp)
}

// Range performs a binary search over a sorted array of n elements and
// returns the half-open range [lo, hi) of elements which match. cmp(i)
// compares the query with element i and should return a negative number
// when the query sorts before the element, a positive number when it sorts
// after it and zero when the element matches.
//
// The matching elements must be contiguous in the array.
func Range(n int, cmp func(i int) int) (int, int) {
	lo := sort.Search(n, func(i int) bool {
		return cmp(i) <= 0
	})
	hi := lo + sort.Search(n-lo, func(i int) bool {
		return cmp(lo+i) < 0
	})
	return lo, hi
}

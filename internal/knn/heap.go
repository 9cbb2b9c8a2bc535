// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package knn implements bounded-K nearest-neighbor search via a size-K
// max-heap, so a search over N candidates never has to collect and sort
// all N distances. No example in the reference corpus ships a heap or
// priority-queue library, and the existing k-d trees only support
// single-nearest-neighbor search, so this one component is built directly
// on the standard library's container/heap.
package knn

import "container/heap"

// Neighbor is a candidate's position in the caller's array plus its
// squared distance to the query point.
type Neighbor struct {
	Index  int
	SqDist float32
}

// maxHeap keeps the current K-nearest candidates with the farthest one at
// the root, so it can be evicted in O(log K) when a closer candidate
// arrives.
type maxHeap []Neighbor

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i].SqDist > h[j].SqDist }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SqDistFunc returns the squared distance between the query and
// candidate i.
type SqDistFunc func(i int) float32

// FindK returns the K nearest candidates (by ascending squared distance)
// out of numCandidates, using sqDist(i) to score candidate i. excludeIdx,
// if >= 0, is skipped (used to exclude a point from its own neighbor
// search). Uses a bounded size-K max-heap throughout: at no point are all
// distances collected.
func FindK(numCandidates, K int, excludeIdx int, sqDist SqDistFunc) []Neighbor {
	h := make(maxHeap, 0, K)
	for i := 0; i < numCandidates; i++ {
		if i == excludeIdx {
			continue
		}
		d := sqDist(i)
		if len(h) < K {
			heap.Push(&h, Neighbor{Index: i, SqDist: d})
			continue
		}
		if d < h[0].SqDist {
			heap.Pop(&h)
			heap.Push(&h, Neighbor{Index: i, SqDist: d})
		}
	}

	result := make([]Neighbor, len(h))
	copy(result, h)
	// Ascending order is a convenience for callers; the search itself
	// never needed a sorted structure.
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].SqDist < result[i].SqDist {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result
}

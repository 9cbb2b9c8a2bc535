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

package material

import (
	"math"
	"testing"

	"github.com/mlnoga/shadesep/internal/cluster"
)

func checkerboard(W, H int) ([]int, []cluster.Point) {
	n := W * H
	assignment := make([]int, n)
	colors := make([]cluster.Point, n)
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			p := y*W + x
			if (x+y)%2 == 0 {
				assignment[p] = 0
				colors[p] = cluster.Point{R: 0.1, G: 0.1, B: 0.1}
			} else {
				assignment[p] = 1
				colors[p] = cluster.Point{R: 0.9, G: 0.9, B: 0.9}
			}
		}
	}
	return assignment, colors
}

func TestInitialSetsPartitionsEveryPixel(t *testing.T) {
	const W, H = 12, 12
	assignment, _ := checkerboard(W, H)
	sets := InitialSets(assignment, 2, W, H)
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	total := len(sets[0]) + len(sets[1])
	if total == 0 {
		t.Errorf("erosion with iter scaled to a 50%% share should not empty both sets")
	}
}

func TestBuildProbabilityMapsSumToOne(t *testing.T) {
	const W, H = 12, 12
	assignment, colors := checkerboard(W, H)
	sets := InitialSets(assignment, 2, W, H)
	sets = RemoveOutliers(sets, colors)
	maps := BuildProbabilityMaps(sets, colors, W, H)

	if len(maps) != 2 {
		t.Fatalf("got %d probability maps, want 2", len(maps))
	}
	for p := 0; p < W*H; p++ {
		sum := float32(0)
		for _, m := range maps {
			sum += m.Data[p]
		}
		if math.Abs(float64(sum-1)) > 1e-4 {
			t.Errorf("pixel %d: probabilities sum to %f, want 1", p, sum)
		}
	}
}

func TestRemoveOutliersKeepsConsistentInteriorPixels(t *testing.T) {
	const W, H = 16, 16
	assignment := make([]int, W*H)
	colors := make([]cluster.Point, W*H)
	for i := range assignment {
		if i < W*H/2 {
			assignment[i] = 0
			colors[i] = cluster.Point{R: 0, G: 0, B: 0}
		} else {
			assignment[i] = 1
			colors[i] = cluster.Point{R: 1, G: 1, B: 1}
		}
	}
	sets := [][]int{}
	for k := 0; k < 2; k++ {
		var set []int
		for p, a := range assignment {
			if a == k {
				set = append(set, p)
			}
		}
		sets = append(sets, set)
	}
	kept := RemoveOutliers(sets, colors)
	for k, set := range kept {
		if len(set) != len(sets[k]) {
			t.Errorf("set %d: kept %d of %d, want all of them (two uniform halves, no ambiguity)", k, len(set), len(sets[k]))
		}
	}
}

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

// Package material builds per-material probability maps from a clustered
// albedo image: cluster -> erode -> majority-KNN outlier removal -> KNN
// probability scoring. Each stage is a pure function over its inputs; the
// cmd/probability entry point calls them in sequence.
package material

import (
	"math"

	"github.com/mlnoga/shadesep/internal"
	"github.com/mlnoga/shadesep/internal/cluster"
	"github.com/mlnoga/shadesep/internal/knn"
	"github.com/mlnoga/shadesep/internal/morph"
	"github.com/mlnoga/shadesep/internal/raster"
)

const knnK = 10

// InitialSets builds one 0/1-mask-derived index list per cluster, pruned
// by multiplicative erosion with a 3x3 element and an iteration count
// scaled to the cluster's share of the image, to drop small or noisy
// boundary regions before the KNN stages run.
func InitialSets(assignment []int, K, W, H int) [][]int {
	n := W * H
	counts := make([]int, K)
	for _, a := range assignment {
		counts[a]++
	}

	sets := make([][]int, K)
	mask := internal.GetFloat32FromPool(n)
	defer internal.PutFloat32IntoPool(mask)
	eroded := internal.GetFloat32FromPool(n)
	defer internal.PutFloat32IntoPool(eroded)

	for i := 0; i < K; i++ {
		for p, a := range assignment {
			if a == i {
				mask[p] = 1
			} else {
				mask[p] = 0
			}
		}
		iter := int(math.Round(35 * float64(counts[i]) / float64(n)))
		morph.Erode(mask, eroded, W, H, 3, 3, iter)

		set := make([]int, 0, counts[i])
		for p, v := range eroded {
			if v > 0 {
				set = append(set, p)
			}
		}
		sets[i] = set
	}
	return sets
}

// member maps a pooled candidate index (position within the
// concatenation of all sets) back to which set it belongs to and its
// pixel index.
type member struct {
	set, pixel int
}

func sqDistRGB(a, b cluster.Point) float32 {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}

// RemoveOutliers runs the majority-vote KNN filter over the pooled
// candidates of every set: a pixel stays in its set only if at least
// K/2 of its K=10 nearest colors across ALL sets also belong to that set.
func RemoveOutliers(sets [][]int, colors []cluster.Point) [][]int {
	var pool []member
	for s, set := range sets {
		for _, p := range set {
			pool = append(pool, member{set: s, pixel: p})
		}
	}

	kept := make([][]int, len(sets))
	for s, set := range sets {
		for _, p := range set {
			query := colors[p]
			sqDist := func(i int) float32 { return sqDistRGB(query, colors[pool[i].pixel]) }
			nearest := knn.FindK(len(pool), knnK, -1, sqDist)

			inSet := 0
			for _, nb := range nearest {
				if pool[nb.Index].set == s {
					inSet++
				}
			}
			if inSet*2 >= knnK {
				kept[s] = append(kept[s], p)
			}
		}
	}
	return kept
}

// BuildProbabilityMaps computes, for every pixel of the image and every
// material set, a normalized probability that the pixel belongs to that
// set. For set i the score at pixel p is K / sum(fastDistance(neighbor,
// color_p)) over the 10 nearest members of set i by color (the heap
// orders candidates by squared distance, but the summed score itself
// uses plain, non-squared Euclidean distance); scores are then normalized
// across sets so they sum to 1 at every pixel.
func BuildProbabilityMaps(sets [][]int, colors []cluster.Point, W, H int) []*raster.Scalar {
	numSets := len(sets)
	maps := make([]*raster.Scalar, numSets)
	for i := range maps {
		maps[i] = raster.NewScalar(W, H)
	}

	scores := make([][]float32, numSets)
	for i := range scores {
		scores[i] = internal.GetFloat32FromPool(W * H)
		defer internal.PutFloat32IntoPool(scores[i])
	}

	for s, set := range sets {
		dst := scores[s]
		internal.MapIndex(W*H, func(p int) {
			query := colors[p]
			sqDist := func(i int) float32 { return sqDistRGB(query, colors[set[i]]) }
			nearest := knn.FindK(len(set), knnK, -1, sqDist)

			dist := float32(0)
			for _, nb := range nearest {
				dist += float32(math.Sqrt(float64(nb.SqDist)))
			}
			if dist == 0 {
				dst[p] = float32(knnK)
			} else {
				dst[p] = float32(knnK) / dist
			}
		})
	}

	internal.MapIndex(W*H, func(p int) {
		total := float32(0)
		for s := 0; s < numSets; s++ {
			total += scores[s][p]
		}
		for s := 0; s < numSets; s++ {
			if total > 0 {
				maps[s].Data[p] = scores[s][p] / total
			}
		}
	})

	return maps
}

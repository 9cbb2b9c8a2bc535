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

// Package cluster implements k-means++ seeded Lloyd clustering over RGB
// points, used to derive material candidates from a separated albedo map.
package cluster

import (
	"github.com/valyala/fastrand"
	"gonum.org/v1/gonum/floats"
)

// Point is an RGB color sample.
type Point struct {
	R, G, B float32
}

func sqDist(a, b Point) float32 {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}

func equalMeans(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// seedPlusPlus picks K initial means from data via k-means++: the first
// mean is the first data point; each subsequent mean is drawn from a
// discrete distribution weighted by squared distance to the nearest
// already-chosen mean. Randomness comes from the process' fastrand RNG,
// matching the sampling idiom used elsewhere for approximate statistics;
// exact reproducibility across runs is not a contract.
func seedPlusPlus(data []Point, K int) []Point {
	means := make([]Point, 0, K)
	means = append(means, data[0])

	rng := fastrand.RNG{}
	weights := make([]float64, len(data))

	for len(means) < K {
		total := 0.0
		for i, p := range data {
			best := sqDist(p, means[0])
			for _, m := range means[1:] {
				if d := sqDist(p, m); d < best {
					best = d
				}
			}
			weights[i] = float64(best)
			total += weights[i]
		}

		if total == 0 {
			// All remaining points coincide with an existing mean; any
			// pick is as good as any other.
			means = append(means, data[int(rng.Uint32n(uint32(len(data))))])
			continue
		}

		target := float64(rng.Uint32()) / float64(1<<32) * total
		acc := 0.0
		chosen := len(data) - 1
		for i, w := range weights {
			acc += w
			if acc >= target {
				chosen = i
				break
			}
		}
		means = append(means, data[chosen])
	}
	return means
}

func findClosestMean(p Point, means []Point) int {
	best := 0
	bestD := sqDist(p, means[0])
	for i := 1; i < len(means); i++ {
		if d := sqDist(p, means[i]); d < bestD {
			bestD, best = d, i
		}
	}
	return best
}

func calculateMeans(data []Point, assignment []int, K int, prevMeans []Point) []Point {
	rs := make([][]float64, K)
	gs := make([][]float64, K)
	bs := make([][]float64, K)

	for i, p := range data {
		k := assignment[i]
		rs[k] = append(rs[k], float64(p.R))
		gs[k] = append(gs[k], float64(p.G))
		bs[k] = append(bs[k], float64(p.B))
	}

	means := make([]Point, K)
	for k := 0; k < K; k++ {
		if len(rs[k]) == 0 {
			means[k] = prevMeans[k]
			continue
		}
		n := float64(len(rs[k]))
		means[k] = Point{
			R: float32(floats.Sum(rs[k]) / n),
			G: float32(floats.Sum(gs[k]) / n),
			B: float32(floats.Sum(bs[k]) / n),
		}
	}
	return means
}

// Lloyd runs k-means++ seeded Lloyd iteration over data until the means
// converge to a fixed point or a 2-cycle (the mean set repeats either the
// previous or the previous-previous generation, compared by exact
// equality since updates are deterministic given the assignment step).
func Lloyd(data []Point, K int) (means []Point, assignment []int) {
	means = seedPlusPlus(data, K)
	var prevMeans, prevPrevMeans []Point
	assignment = make([]int, len(data))

	for {
		for i, p := range data {
			assignment[i] = findClosestMean(p, means)
		}
		next := calculateMeans(data, assignment, K, means)

		if equalMeans(next, means) || (prevMeans != nil && equalMeans(next, prevMeans)) {
			means = next
			break
		}
		prevPrevMeans, prevMeans, means = prevMeans, means, next
		_ = prevPrevMeans
	}
	return means, assignment
}

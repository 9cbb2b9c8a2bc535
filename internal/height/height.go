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

// Package height integrates a normal field into relative height deltas
// and then a globally consistent, normalized height map via Poisson-style
// relaxation.
package height

import (
	"math"

	"github.com/mlnoga/shadesep/internal/normal"
	"gonum.org/v1/gonum/floats"
)

// Vec2 is a 2-component vector, used for the tangent pairs solveH
// consumes.
type Vec2 struct {
	X, Y float32
}

// solveH interprets n1 and n2 as 2D tangent indicators and returns the
// height difference implied by their orientations. Negating only when
// n1.X > 0 and n2.X < 0 is intentionally asymmetric under swapping
// n1<->n2; this matches the reference behavior exactly and is not a
// defect to symmetrize.
func solveH(n1, n2 Vec2) float32 {
	l1 := float32(math.Sqrt(float64(n1.X*n1.X + n1.Y*n1.Y)))
	l2 := float32(math.Sqrt(float64(n2.X*n2.X + n2.Y*n2.Y)))
	if l1 == 0 || l2 == 0 {
		return 0
	}
	n1 = Vec2{n1.X / l1, n1.Y / l1}
	n2 = Vec2{n2.X / l2, n2.Y / l2}

	cosTheta := n1.X*n2.X + n1.Y*n2.Y
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	theta := float32(math.Acos(float64(cosTheta)))

	gamma := (math.Pi - float64(theta)) / 2
	delta := math.Abs(math.Atan(float64(n1.Y) / float64(n1.X)))
	alpha := gamma - delta
	beta := math.Pi/2 - alpha

	h := float32(math.Sin(alpha) / math.Sin(beta))
	if n1.X > 0 && n2.X < 0 {
		h = -h
	}
	return h
}

// RelativeHeights computes the per-pixel (dx, dy) height deltas implied
// by adjacent normals. Deltas are only defined for y in [0,H-1) and x in
// [0,W-1): the last row and column have no forward neighbor to difference
// against and are left at zero.
func RelativeHeights(normals []normal.Vec3, W, H int) (dx, dy []float32) {
	dx = make([]float32, W*H)
	dy = make([]float32, W*H)

	for y := 0; y < H-1; y++ {
		for x := 0; x < W-1; x++ {
			p := y*W + x
			N := normals[p]
			Nx1 := normals[p+1]
			Ny1 := normals[p+W]
			dx[p] = solveH(Vec2{N.X, N.Z}, Vec2{Nx1.X, Nx1.Z})
			dy[p] = solveH(Vec2{N.Y, N.Z}, Vec2{Ny1.Y, Ny1.Z})
		}
	}
	return dx, dy
}

func copyNeumannBoundary(H_ []float32, W, H int) {
	for x := 1; x < W-1; x++ {
		H_[x] = H_[W+x]                 // top row from first interior row
		H_[(H-1)*W+x] = H_[(H-2)*W+x]   // bottom row from last interior row
	}
	for y := 1; y < H-1; y++ {
		H_[y*W] = H_[y*W+1]             // left column from first interior column
		H_[y*W+W-1] = H_[y*W+W-2]       // right column from last interior column
	}
	H_[0] = H_[W+1]                     // top-left corner from diagonal interior neighbor
	H_[W-1] = H_[W+W-2]                 // top-right corner
	H_[(H-1)*W] = H_[(H-2)*W+1]         // bottom-left corner
	H_[(H-1)*W+W-1] = H_[(H-2)*W+W-2]   // bottom-right corner
}

// AbsoluteHeights relaxes the (dx, dy) relative height field into a
// globally consistent height map via 2000 Jacobi iterations of 4-neighbor
// averaging, copying a Neumann boundary after every pass, then normalizing
// the result to [0,1] once the relaxation has finished.
func AbsoluteHeights(dx, dy []float32, W, H int) []float32 {
	n := W * H
	h0 := make([]float32, n)
	h1 := make([]float32, n)

	for iter := 0; iter < 2000; iter++ {
		for y := 1; y < H-1; y++ {
			for x := 1; x < W-1; x++ {
				p := y*W + x
				h01 := h0[p-1] + dx[p-1]
				h21 := h0[p+1] - dx[p]
				h10 := h0[p-W] + dy[p-W]
				h12 := h0[p+W] - dy[p]
				h1[p] = (h01 + h21 + h10 + h12) / 4
			}
		}
		copyNeumannBoundary(h1, W, H)
		h0, h1 = h1, h0
	}

	h0f64 := make([]float64, n)
	for i, v := range h0 {
		h0f64[i] = float64(v)
	}
	lo, hi := floats.Min(h0f64), floats.Max(h0f64)

	out := make([]float32, n)
	span := float32(hi - lo)
	for i, v := range h0 {
		if span == 0 {
			out[i] = 0
		} else {
			out[i] = (v - float32(lo)) / span
		}
	}
	return out
}

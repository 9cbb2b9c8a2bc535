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

package height

import (
	"math"
	"testing"

	"github.com/mlnoga/shadesep/internal/normal"
)

func TestSolveHZeroForDegenerateTangent(t *testing.T) {
	if h := solveH(Vec2{0, 0}, Vec2{1, 1}); h != 0 {
		t.Errorf("solveH with a zero-length tangent = %f, want 0", h)
	}
}

func TestRelativeHeightsZeroUnderFlatNormals(t *testing.T) {
	const W, H = 6, 6
	normals := make([]normal.Vec3, W*H)
	for i := range normals {
		normals[i] = normal.Vec3{X: 0, Y: 0, Z: 1}
	}
	dx, dy := RelativeHeights(normals, W, H)
	for i := range dx {
		if dx[i] != 0 || dy[i] != 0 {
			t.Errorf("flat normals at %d produced dx=%f dy=%f, want 0,0", i, dx[i], dy[i])
		}
	}
}

func TestRelativeHeightsLeavesLastRowAndColumnZero(t *testing.T) {
	const W, H = 5, 5
	normals := make([]normal.Vec3, W*H)
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			normals[y*W+x] = normal.Vec3{X: 0.3, Y: 0.2, Z: 0.9}
		}
	}
	dx, dy := RelativeHeights(normals, W, H)
	for x := 0; x < W; x++ {
		p := (H-1)*W + x
		if dx[p] != 0 || dy[p] != 0 {
			t.Errorf("last row at x=%d not left at zero: dx=%f dy=%f", x, dx[p], dy[p])
		}
	}
	for y := 0; y < H; y++ {
		p := y*W + (W - 1)
		if dx[p] != 0 || dy[p] != 0 {
			t.Errorf("last column at y=%d not left at zero: dx=%f dy=%f", y, dx[p], dy[p])
		}
	}
}

func TestAbsoluteHeightsFlatInputYieldsZero(t *testing.T) {
	const W, H = 8, 8
	dx := make([]float32, W*H)
	dy := make([]float32, W*H)
	out := AbsoluteHeights(dx, dy, W, H)
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d]=%f, want 0 for an entirely flat relative field", i, v)
		}
	}
}

func TestAbsoluteHeightsNormalizesToUnitRange(t *testing.T) {
	const W, H = 12, 12
	dx := make([]float32, W*H)
	dy := make([]float32, W*H)
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			dx[y*W+x] = 0.05
		}
	}
	out := AbsoluteHeights(dx, dy, W, H)

	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range out {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		if v < -1e-6 || v > 1+1e-6 {
			t.Errorf("value %f out of [0,1]", v)
		}
	}
	if hi-lo < 0.5 {
		t.Errorf("expected a spread-out height field for a constant x-gradient, got range [%f,%f]", lo, hi)
	}
}

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

package separation

import (
	"math"
	"testing"

	"github.com/mlnoga/shadesep/internal/raster"
)

func TestSeparatePureWhite(t *testing.T) {
	const W, H = 16, 16
	src := raster.NewRGB(W, H)
	for i := range src.Data {
		src.Data[i] = 1
	}
	raster.Clamp(src)

	opt := DefaultOptions()
	albedo, shading, err := Separate(src, opt)
	if err != nil {
		t.Fatalf("Separate: %v", err)
	}

	for i := 0; i < W*H; i++ {
		r, g, b := albedo.At(i)
		sr, sg, sb := src.At(i)
		if math.Abs(float64(r-sr)) > 0.02 || math.Abs(float64(g-sg)) > 0.02 || math.Abs(float64(b-sb)) > 0.02 {
			t.Errorf("albedo[%d]=(%f,%f,%f), want ~(%f,%f,%f)", i, r, g, b, sr, sg, sb)
		}
		if math.Abs(float64(shading.Data[i]-1)) > 0.05 {
			t.Errorf("shading[%d]=%f, want ~1", i, shading.Data[i])
		}
	}
}

func TestSeparateConstantAlbedoLinearShading(t *testing.T) {
	const W, H = 32, 32
	src := raster.NewRGB(W, H)
	r, g, b := src.R(), src.G(), src.B()
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			s := 0.3 + 0.7*float32(x)/31
			p := y*W + x
			r[p] = 0.6 * s
			g[p] = 0.4 * s
			b[p] = 0.2 * s
		}
	}
	raster.Clamp(src)

	opt := DefaultOptions()
	albedo, shading, err := Separate(src, opt)
	if err != nil {
		t.Fatalf("Separate: %v", err)
	}

	const tol = 0.03
	for i := 0; i < W*H; i++ {
		r, g, b := albedo.At(i)
		if math.Abs(float64(r-0.6)) > tol || math.Abs(float64(g-0.4)) > tol || math.Abs(float64(b-0.2)) > tol {
			t.Errorf("albedo[%d]=(%f,%f,%f), want ~(0.6,0.4,0.2)", i, r, g, b)
		}
	}

	for y := 0; y < H; y++ {
		prev := float32(-1)
		for x := 0; x < W; x++ {
			v := shading.Data[y*W+x]
			if v < prev-1e-3 {
				t.Errorf("row %d: shading not monotonically non-decreasing at x=%d: %f < %f", y, x, v, prev)
			}
			prev = v
		}
	}
}

func TestSeparateRejectsUndersizedImage(t *testing.T) {
	src := raster.NewRGB(4, 4)
	for i := range src.Data {
		src.Data[i] = 0.5
	}
	_, _, err := Separate(src, Options{Region: 10, ChromaSlots: 10, IntensityIterations: 1, DirectIterations: 1})
	if err == nil {
		t.Errorf("expected an error for an image smaller than the region size")
	}
}

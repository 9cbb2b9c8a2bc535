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

package raster

import (
	"math"
	"testing"
)

func newTestRGB(w, h int, fill func(i int) (r, g, b float32)) *RGB {
	img := &RGB{W: w, H: h, Data: make([]float32, 3*w*h)}
	r, g, b := img.R(), img.G(), img.B()
	for i := 0; i < w*h; i++ {
		r[i], g[i], b[i] = fill(i)
	}
	return img
}

func TestClampBounds(t *testing.T) {
	img := newTestRGB(4, 4, func(i int) (float32, float32, float32) {
		return -1, 2, 0.5
	})
	Clamp(img)
	for _, v := range img.Data {
		if v < clampLo || v > clampHi {
			t.Errorf("v=%f out of bounds [%f,%f]", v, clampLo, clampHi)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	img := newTestRGB(4, 4, func(i int) (float32, float32, float32) {
		return -1, 2, 0.5
	})
	Clamp(img)
	once := append([]float32{}, img.Data...)
	Clamp(img)
	for i := range once {
		if once[i] != img.Data[i] {
			t.Errorf("clamp not idempotent at %d: %f != %f", i, once[i], img.Data[i])
		}
	}
}

func TestChromaSumsToThree(t *testing.T) {
	img := newTestRGB(8, 8, func(i int) (float32, float32, float32) {
		return float32(i%5) + 1, float32(i%3) + 1, float32(i%7) + 1
	})
	intensity := Intensity(img)
	chroma := Chroma(img, intensity)
	cr, cg, cb := chroma.R(), chroma.G(), chroma.B()
	for i := 0; i < 64; i++ {
		sum := cr[i] + cg[i] + cb[i]
		if math.Abs(float64(sum-3)) > 1e-5 {
			t.Errorf("chroma[%d] sums to %f, want 3", i, sum)
		}
	}
}

func TestComponentwiseMax(t *testing.T) {
	img := newTestRGB(2, 2, func(i int) (float32, float32, float32) {
		vals := [][3]float32{{1, 5, 2}, {3, 1, 9}, {7, 2, 1}, {0, 0, 0}}
		v := vals[i]
		return v[0], v[1], v[2]
	})
	mx, my, mz := ComponentwiseMax(img)
	if mx != 7 || my != 5 || mz != 9 {
		t.Errorf("got (%f,%f,%f), want (7,5,9)", mx, my, mz)
	}
}

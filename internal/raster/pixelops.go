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
	"github.com/mlnoga/shadesep/internal"
)

const (
	clampLo = float32(1.0 / 255.0)
	clampHi = float32(254.0 / 255.0)
)

// Clamp clips every RGB channel to [1/255, 254/255] in place, removing
// saturated highlights and shadows without hard quantization. Idempotent:
// Clamp(Clamp(x)) == Clamp(x).
func Clamp(img *RGB) {
	internal.MapFloat32(img.Data, func(batch []float32) {
		for i, v := range batch {
			if v < clampLo {
				v = clampLo
			} else if v > clampHi {
				v = clampHi
			}
			batch[i] = v
		}
	})
}

// Intensity computes (r+g+b)/3 per pixel.
func Intensity(img *RGB) *Scalar {
	n := img.W * img.H
	out := NewScalar(img.W, img.H)
	r, g, b := img.R(), img.G(), img.B()
	internal.MapIndex(n, func(i int) {
		out.Data[i] = (r[i] + g[i] + b[i]) / 3
	})
	return out
}

// Chroma computes the intensity-normalized chroma triple
// (r/i, g/i, 3-r/i-g/i) per pixel. Precondition: every intensity value is
// strictly positive, guaranteed by a prior Clamp.
func Chroma(img *RGB, intensity *Scalar) *RGB {
	n := img.W * img.H
	out := NewRGB(img.W, img.H)
	r, g, b := img.R(), img.G(), img.B()
	cr, cg, cb := out.R(), out.G(), out.B()
	internal.MapIndex(n, func(i int) {
		inv := 1 / intensity.Data[i]
		x := r[i] * inv
		y := g[i] * inv
		cr[i] = x
		cg[i] = y
		cb[i] = 3 - x - y
		_ = b
	})
	return out
}

// ComponentwiseMax returns the per-channel maximum chroma value over the
// whole image, used to normalize chroma hashing to the unit square.
func ComponentwiseMax(c *RGB) (mx, my, mz float32) {
	r, g, b := c.R(), c.G(), c.B()
	mx, my, mz = r[0], g[0], b[0]
	for i := 1; i < len(r); i++ {
		if r[i] > mx {
			mx = r[i]
		}
		if g[i] > my {
			my = g[i]
		}
		if b[i] > mz {
			mz = b[i]
		}
	}
	return mx, my, mz
}

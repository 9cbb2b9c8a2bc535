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

// Package morph implements the multiplicative erosion kernel used to
// purify material masks.
package morph

import "github.com/mlnoga/shadesep/internal"

// Erode computes, for each pixel, the product of every input value in a
// centered rectangular neighborhood of half-extent
// ((ex-1)*iter/2, (ey-1)*iter/2), clamped to the image bounds, and writes
// it to out. Input is expected to be a 0/1 mask: any zero in the window
// drives the output to zero; iter dilates the structuring element.
func Erode(in []float32, out []float32, W, H, ex, ey, iter int) {
	halfX := (ex - 1) * iter / 2
	halfY := (ey - 1) * iter / 2

	internal.MapIndex(W*H, func(p int) {
		px, py := p%W, p/W
		x0, x1 := px-halfX, px+halfX
		y0, y1 := py-halfY, py+halfY
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 >= W {
			x1 = W - 1
		}
		if y1 >= H {
			y1 = H - 1
		}

		w := float32(1)
		for y := y0; y <= y1; y++ {
			row := in[y*W : y*W+W]
			for x := x0; x <= x1; x++ {
				w *= row[x]
			}
		}
		out[p] = w
	})
}

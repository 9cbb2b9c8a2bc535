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

// HashChroma quantizes a chroma pair (cx, cy) against the per-image
// maximum (mx, my) into a slot index in a slots*slots table.
//
// The row stride is deliberately slots-1, not slots: indices reach at most
// slots*slots-slots, so the top slots-1 entries of the allocated
// slots*slots table are never addressed, but it is the
// observed reference behavior and must be reproduced exactly rather than
// "fixed".
func HashChroma(cx, cy, mx, my float32, slots int) int {
	s1 := slots - 1
	x := int(cx / mx * float32(s1))
	y := int(cy / my * float32(s1))
	return y*s1 + x
}

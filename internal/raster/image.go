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

// Package raster holds the in-memory pixel buffer types and the
// elementwise, region and filter math shared by the separator, the
// clusterer and the normal/height solvers.
package raster

import "github.com/mlnoga/shadesep/internal"

// RGB is a row-major W*H image with three planar channels, laid out as
// [R plane][G plane][B plane] the same way the stacking pipeline's FITS
// image planes are laid out.
type RGB struct {
	W, H int
	Data []float32 // len == 3*W*H
}

// NewRGB allocates a zeroed RGB buffer from the shared float32 pool.
func NewRGB(w, h int) *RGB {
	return &RGB{W: w, H: h, Data: internal.GetFloat32FromPool(3 * w * h)}
}

// Release returns the buffer to the shared pool. The RGB must not be used
// afterwards.
func (img *RGB) Release() {
	internal.PutFloat32IntoPool(img.Data)
	img.Data = nil
}

func (img *RGB) R() []float32 { n := img.W * img.H; return img.Data[0*n : 1*n] }
func (img *RGB) G() []float32 { n := img.W * img.H; return img.Data[1*n : 2*n] }
func (img *RGB) B() []float32 { n := img.W * img.H; return img.Data[2*n : 3*n] }

// At returns the color triple at pixel index i.
func (img *RGB) At(i int) (r, g, b float32) {
	n := img.W * img.H
	return img.Data[i], img.Data[n+i], img.Data[2*n+i]
}

// Set writes the color triple at pixel index i.
func (img *RGB) Set(i int, r, g, b float32) {
	n := img.W * img.H
	img.Data[i], img.Data[n+i], img.Data[2*n+i] = r, g, b
}

// Scalar is a row-major W*H single-channel image, used for intensity,
// shading and height maps.
type Scalar struct {
	W, H int
	Data []float32 // len == W*H
}

// NewScalar allocates a zeroed scalar buffer from the shared float32 pool.
func NewScalar(w, h int) *Scalar {
	return &Scalar{W: w, H: h, Data: internal.GetFloat32FromPool(w * h)}
}

// Release returns the buffer to the shared pool. The Scalar must not be
// used afterwards.
func (s *Scalar) Release() {
	internal.PutFloat32IntoPool(s.Data)
	s.Data = nil
}

// Fill sets every element of the scalar buffer to v.
func (s *Scalar) Fill(v float32) {
	for i := range s.Data {
		s.Data[i] = v
	}
}

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

import "math"

// GaussianFilter returns an R*R weight map where entry (x,y) is
// exp(-((x-cx)^2+(y-cy)^2)/(2*sigma^2)) / (2*pi*sigma^2), with
// cx=cy=(R-1)/2. The result is deliberately not normalized to sum to one;
// the separator renormalizes per pixel via FilterSum on the crop that
// actually covers it. Computed as the outer product of two 1D Gaussians
// to avoid a redundant exp() per cell.
func GaussianFilter(R int, sigma float32) []float32 {
	c := float32(R-1) / 2
	denom := float32(1.0 / (2 * math.Pi * float64(sigma) * float64(sigma)))
	twoSigmaSq := 2 * sigma * sigma

	row := make([]float32, R)
	for x := 0; x < R; x++ {
		dx := float32(x) - c
		row[x] = float32(math.Exp(float64(-(dx * dx) / twoSigmaSq)))
	}

	filter := make([]float32, R*R)
	for y := 0; y < R; y++ {
		dy := float32(y) - c
		wy := float32(math.Exp(float64(-(dy * dy) / twoSigmaSq)))
		for x := 0; x < R; x++ {
			filter[y*R+x] = wy * row[x] * denom
		}
	}
	return filter
}

// FilterSum sums the top-left (cropW, cropH) rectangle of an R*R filter.
// Used to renormalize interim albedo intensity for boundary pixels whose
// effective neighborhood is smaller than R*R.
func FilterSum(filter []float32, R, cropW, cropH int) float32 {
	sum := float32(0)
	for y := 0; y < cropH; y++ {
		row := filter[y*R : y*R+cropW]
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

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

// Package separation implements the iterative expectation-maximization
// albedo/shading separator: the core of the intrinsic-image pipeline.
package separation

import (
	"fmt"

	"github.com/mlnoga/shadesep/internal"
	"github.com/mlnoga/shadesep/internal/raster"
)

// Options configures a separator run.
type Options struct {
	Region               int // side length R of the sliding square region
	ChromaSlots          int // S, per-axis chroma quantization resolution
	IntensityIterations  int // T, inner expectation/maximization passes per direct iteration
	DirectIterations     int // D, outer residual-chasing passes
	// Progress, if non-nil, is called once per outer iteration with the
	// 0-based iteration index, e.g. to print "Iteration k." progress.
	Progress func(d int)
}

// DefaultOptions matches the flag defaults of the cmd/separate executable.
func DefaultOptions() Options {
	return Options{
		Region:              10,
		ChromaSlots:         10,
		IntensityIterations: 5,
		DirectIterations:    5,
	}
}

// Separate runs the separator over a clamped source image, returning the
// reconstructed albedo RGB and the accumulated shading intensity.
//
// src must already be clamped (raster.Clamp); the separator itself does
// not clamp, since its callers may want to clamp once and reuse the
// result across runs.
func Separate(src *raster.RGB, opt Options) (albedo *raster.RGB, shading *raster.Scalar, err error) {
	W, H, R := src.W, src.H, opt.Region
	if W < R || H < R {
		return nil, nil, fmt.Errorf("separation: image %dx%d is smaller than region size %d", W, H, R)
	}
	S := opt.ChromaSlots
	n := W * H

	intensity := raster.Intensity(src)
	defer intensity.Release()
	chroma := raster.Chroma(src, intensity)
	defer chroma.Release()
	mx, my, _ := raster.ComponentwiseMax(chroma)

	// A starts as a copy of the source intensity; shadingOut accumulates
	// residuals starting from 1.
	A := raster.NewScalar(W, H)
	copy(A.Data, intensity.Data)
	shadingOut := raster.NewScalar(W, H)
	shadingOut.Fill(1)

	regions := raster.GenerateRegions(W, H, R)
	filter := raster.GaussianFilter(R, 1.0)

	interimA := internal.GetFloat32FromPool(n)
	defer internal.PutFloat32IntoPool(interimA)

	slotSq := S * S
	est := make([]float32, slotSq)
	cnt := make([]int32, slotSq)

	// I' holds the working "observed" intensity for the current direct
	// iteration; the same buffer is refilled with a copy of A at the start
	// of every outer pass.
	Iprime := raster.NewScalar(W, H)
	defer Iprime.Release()

	for d := 0; d < opt.DirectIterations; d++ {
		copy(Iprime.Data, A.Data)

		for t := 0; t < opt.IntensityIterations; t++ {
			for i := range interimA {
				interimA[i] = 0
			}

			cx, cy := chroma.R(), chroma.G()
			for _, reg := range regions {
				for i := range est {
					est[i] = 0
					cnt[i] = 0
				}
				shadingSum := float32(0)

				reg.ForEachPixel(W, R, func(p, lx, ly int) {
					k := raster.HashChroma(cx[p], cy[p], mx, my, S)
					est[k] += Iprime.Data[p]
					cnt[k]++
					shadingSum += Iprime.Data[p] / A.Data[p]
				})

				shadingAvg := shadingSum / float32(R*R)
				for k := range est {
					if cnt[k] > 0 {
						est[k] /= float32(cnt[k]) * shadingAvg
					}
				}

				reg.ForEachPixel(W, R, func(p, lx, ly int) {
					k := raster.HashChroma(cx[p], cy[p], mx, my, S)
					interimA[p] += est[k] * filter[ly*R+lx]
				})
			}

			internal.MapIndex(n, func(p int) {
				px, py := p%W, p/W
				cropW, cropH := raster.ContribCrop(R, W, H, px, py)
				w := raster.FilterSum(filter, R, cropW, cropH)
				A.Data[p] = interimA[p] / w
			})
		}

		internal.MapIndex(n, func(p int) {
			shadingOut.Data[p] += Iprime.Data[p]/A.Data[p] - 1
		})

		if opt.Progress != nil {
			opt.Progress(d)
		}
	}

	albedo = raster.NewRGB(W, H)
	ar, ag, ab := albedo.R(), albedo.G(), albedo.B()
	cr, cg, cb := chroma.R(), chroma.G(), chroma.B()
	internal.MapIndex(n, func(p int) {
		ar[p] = A.Data[p] * cr[p]
		ag[p] = A.Data[p] * cg[p]
		ab[p] = A.Data[p] * cb[p]
	})

	A.Release()
	return albedo, shadingOut, nil
}

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

// Package normal reconstructs a per-pixel unit normal field from a
// shading map and a known light direction, via a Jacobi-like fixed-point
// iteration over a regularized least-squares quadratic.
package normal

import (
	"math"

	"github.com/mlnoga/shadesep/internal"
)

// Vec3 is a 3-component vector, used for normals and light directions.
type Vec3 struct {
	X, Y, Z float32
}

func dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (v Vec3) scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) mulElem(o Vec3) Vec3  { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

func (v Vec3) normalize() Vec3 {
	l := float32(math.Sqrt(float64(dot(v, v))))
	if l == 0 {
		return v
	}
	return v.scale(1 / l)
}

// DefaultLambda is the spatial-regularization weight used when none is
// given explicitly.
const DefaultLambda = float32(0.001)

// Solve reconstructs a unit normal field from a shading intensity map and
// a unit light direction, running 25 Jacobi-like update passes. The
// spatial regularizer couples every pixel pair (fully connected) via the
// precomputed NSum term rather than an explicit neighbor graph.
func Solve(shading []float32, W, H int, light Vec3, lambda float32) []Vec3 {
	n := W * H
	N := make([]Vec3, n)
	for i := range N {
		N[i] = Vec3{0, 0, 1}
	}
	Nnext := make([]Vec3, n)

	// Q = light (x) light with a zeroed diagonal; represented implicitly
	// via its action N_p*Q = light.scale(dot(N_p,light) - N_p[j]*light[j])
	// rather than as a materialized 3x3 matrix, since it is only ever
	// used in that contracted form.
	diagLL := Vec3{light.X * light.X, light.Y * light.Y, light.Z * light.Z}
	aDiag := Vec3{
		X: float32(n-1)*2*lambda + diagLL.X,
		Y: float32(n-1)*2*lambda + diagLL.Y,
		Z: float32(n-1)*2*lambda + diagLL.Z,
	}
	aDiagInv := Vec3{1 / aDiag.X, 1 / aDiag.Y, 1 / aDiag.Z}

	for iter := 0; iter < 25; iter++ {
		NSum := Vec3{}
		for _, v := range N {
			NSum = NSum.add(v)
		}

		internal.MapIndex(n, func(p int) {
			Np := N[p]
			b := light.scale(2 * shading[p])

			d := dot(Np, light)
			rowFromQ := Vec3{
				X: light.X * (d - Np.X*light.X),
				Y: light.Y * (d - Np.Y*light.Y),
				Z: light.Z * (d - Np.Z*light.Z),
			}
			row := NSum.sub(Np).scale(-2 * lambda).add(rowFromQ)

			next := b.add(row).mulElem(aDiagInv)
			next.Z = float32(math.Abs(float64(next.Z)))
			Nnext[p] = next.normalize()
		})

		N, Nnext = Nnext, N
	}
	return N
}

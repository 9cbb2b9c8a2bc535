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

// Command heightfield reconstructs surface normals from a shading map
// under a known light direction, then integrates them into a height map.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/mlnoga/shadesep/internal"
	"github.com/mlnoga/shadesep/internal/height"
	"github.com/mlnoga/shadesep/internal/imageio"
	"github.com/mlnoga/shadesep/internal/normal"
	"github.com/mlnoga/shadesep/internal/raster"
)

var shadingMap = flag.String("shading-map", "", "shading intensity map to reconstruct a height field from (required)")
var output = flag.String("output", "height_map.png", "output height map path")
var azimuth = flag.Float64("azimuth", 45, "light azimuth in degrees")
var polar = flag.Float64("polar", 45, "light polar angle in degrees")
var logPath = flag.String("log", "", "also mirror log output to `file`")

func main() {
	start := time.Now()
	flag.Usage = func() {
		fmt.Fprintf(os.Stdout, `Usage: %s -shading-map PATH [-flag value ...]

Reconstructs a height map from a shading intensity map and a light direction.

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *logPath != "" {
		if err := internal.LogAlsoToFile(*logPath); err != nil {
			internal.LogFatalf("Error: unable to open log file %s: %s\n", *logPath, err.Error())
		}
	}

	if *shadingMap == "" {
		internal.LogPrintln("Error: -shading-map is required")
		flag.Usage()
		os.Exit(1)
	}

	shading, err := imageio.ReadScalar(*shadingMap)
	if err != nil {
		internal.LogFatalf("Error: %s\n", err.Error())
	}

	a := *azimuth * math.Pi / 180
	p := *polar * math.Pi / 180
	light := normal.Vec3{
		X: float32(math.Sin(p) * math.Cos(a)),
		Y: float32(math.Sin(p) * math.Sin(a)),
		Z: float32(math.Cos(p)),
	}

	normals := normal.Solve(shading.Data, shading.W, shading.H, light, normal.DefaultLambda)
	dx, dy := height.RelativeHeights(normals, shading.W, shading.H)
	heights := height.AbsoluteHeights(dx, dy, shading.W, shading.H)

	out := &raster.Scalar{W: shading.W, H: shading.H, Data: heights}
	if err := imageio.WriteScalar(*output, out); err != nil {
		internal.LogFatalf("Error: %s\n", err.Error())
	}

	elapsed := time.Now().Sub(start).Round(time.Millisecond * 10)
	internal.LogPrintf("Done after %s\n", elapsed)
	internal.LogSync()
}

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

// Command separate runs the expectation-maximization albedo/shading
// separator over a single source photograph.
package main

import (
	"fmt"
	"os"
	"time"

	"flag"

	"github.com/mlnoga/shadesep/internal"
	"github.com/mlnoga/shadesep/internal/imageio"
	"github.com/mlnoga/shadesep/internal/raster"
	"github.com/mlnoga/shadesep/internal/separation"
)

var source = flag.String("source", "", "source photograph to separate (required)")
var output = flag.String("output", "shading", "output filename prefix")
var format = flag.String("format", "png", "output image format extension")
var region = flag.Int64("region", 10, "side length of the sliding EM region")
var quantizeSlots = flag.Int64("quantize-slots", 10, "per-axis chroma quantization resolution")
var intensityIterations = flag.Int64("intensity-iterations", 5, "inner expectation/maximization passes per direct iteration")
var directIterations = flag.Int64("direct-iterations", 5, "outer residual-chasing passes")
var logPath = flag.String("log", "", "also mirror log output to `file`")

func main() {
	start := time.Now()
	flag.Usage = func() {
		fmt.Fprintf(os.Stdout, `Usage: %s -source PATH [-flag value ...]

Separates a photograph into an albedo map and a shading intensity map.

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

	if *source == "" {
		internal.LogPrintln("Error: -source is required")
		flag.Usage()
		os.Exit(1)
	}

	src, err := imageio.ReadRGB(*source)
	if err != nil {
		internal.LogFatalf("Error: %s\n", err.Error())
	}

	raster.Clamp(src)

	opt := separation.Options{
		Region:              int(*region),
		ChromaSlots:         int(*quantizeSlots),
		IntensityIterations: int(*intensityIterations),
		DirectIterations:    int(*directIterations),
		Progress: func(d int) {
			internal.LogPrintf("\rIteration %d.", d+1)
		},
	}

	albedo, shading, err := separation.Separate(src, opt)
	if err != nil {
		internal.LogFatalf("\nError: %s\n", err.Error())
	}
	internal.LogPrintln()

	albedoPath := fmt.Sprintf("%s_albedo.%s", *output, *format)
	shadingPath := fmt.Sprintf("%s_shading.%s", *output, *format)

	if err := imageio.WriteRGB(albedoPath, albedo); err != nil {
		internal.LogFatalf("Error: %s\n", err.Error())
	}
	if err := imageio.WriteScalar(shadingPath, shading); err != nil {
		internal.LogFatalf("Error: %s\n", err.Error())
	}

	elapsed := time.Now().Sub(start).Round(time.Millisecond * 10)
	internal.LogPrintf("Done after %s\n", elapsed)
	internal.LogSync()
}

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

// Command probability clusters an albedo image into material candidates
// and writes one per-pixel probability map per material.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlnoga/shadesep/internal"
	"github.com/mlnoga/shadesep/internal/cluster"
	"github.com/mlnoga/shadesep/internal/imageio"
	"github.com/mlnoga/shadesep/internal/material"
)

var inputImage = flag.String("input-image", "", "albedo image to derive material sets from (required)")
var output = flag.String("output", "probability_map.png", "output path pattern; an integer suffix is inserted before the extension")
var sets = flag.Int64("sets", 0, "number of material sets to derive (required)")
var logPath = flag.String("log", "", "also mirror log output to `file`")

func main() {
	start := time.Now()
	flag.Usage = func() {
		fmt.Fprintf(os.Stdout, `Usage: %s -input-image PATH -sets N [-flag value ...]

Clusters an albedo image into N material sets and writes one probability map per set.

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

	if *inputImage == "" || *sets <= 0 {
		internal.LogPrintln("Error: -input-image and -sets are required")
		flag.Usage()
		os.Exit(1)
	}

	img, err := imageio.ReadRGB(*inputImage)
	if err != nil {
		internal.LogFatalf("Error: %s\n", err.Error())
	}

	K := int(*sets)
	n := img.W * img.H
	r, g, b := img.R(), img.G(), img.B()
	colors := make([]cluster.Point, n)
	for i := range colors {
		colors[i] = cluster.Point{R: r[i], G: g[i], B: b[i]}
	}

	_, assignment := cluster.Lloyd(colors, K)
	matSets := material.InitialSets(assignment, K, img.W, img.H)
	matSets = material.RemoveOutliers(matSets, colors)
	probMaps := material.BuildProbabilityMaps(matSets, colors, img.W, img.H)

	for i, m := range probMaps {
		path := suffixed(*output, i)
		if err := imageio.WriteScalar(path, m); err != nil {
			internal.LogFatalf("Error: %s\n", err.Error())
		}
	}

	elapsed := time.Now().Sub(start).Round(time.Millisecond * 10)
	internal.LogPrintf("Done after %s\n", elapsed)
	internal.LogSync()
}

// suffixed inserts an integer before the file extension of path, e.g.
// "probability_map.png" + 0 -> "probability_map0.png". A path without an
// extension gets the integer appended.
func suffixed(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s%d%s", strings.TrimSuffix(path, ext), i, ext)
}

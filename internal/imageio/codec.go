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

// Package imageio is the thin boundary between the numeric core and the
// filesystem: it reads RGB/scalar float buffers from any registered image
// format and writes them back out as JPEG for a .jpg/.jpeg path and as PNG
// for any other path. Every other package in this
// repository is pure over its inputs and never imports "image" directly.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/mlnoga/shadesep/internal/raster"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ReadRGB decodes any registered image format into a W*H planar RGB
// buffer with channels in [0,1]. Alpha, if present, is ignored.
func ReadRGB(path string) (*raster.RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	W, H := bounds.Dx(), bounds.Dy()
	out := raster.NewRGB(W, H)
	r, g, b := out.R(), out.G(), out.B()

	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			rr, gg, bb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p := y*W + x
			r[p] = float32(rr) / 0xffff
			g[p] = float32(gg) / 0xffff
			b[p] = float32(bb) / 0xffff
		}
	}
	return out, nil
}

// ReadScalar decodes any registered image format into a W*H single-channel
// buffer with values in [0,1], averaging RGB channels if the source image
// is not already grayscale.
func ReadScalar(path string) (*raster.Scalar, error) {
	rgb, err := ReadRGB(path)
	if err != nil {
		return nil, err
	}
	defer rgb.Release()

	out := raster.NewScalar(rgb.W, rgb.H)
	r, g, b := rgb.R(), rgb.G(), rgb.B()
	for i := range out.Data {
		out.Data[i] = (r[i] + g[i] + b[i]) / 3
	}
	return out, nil
}

// quantize clamps a [0,1] channel value and maps it to an 8-bit sample,
// replacing NaN with 0 the same way the stacking pipeline's JPEG writer
// does before any float-to-uint8 conversion.
func quantize(v float32) uint8 {
	if math.IsNaN(float64(v)) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}

// WriteRGB writes a planar RGB buffer as an image file, encoded as chosen
// by encodeFile from the path's extension.
func WriteRGB(path string, img *raster.RGB) error {
	dst := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	r, g, b := img.R(), img.G(), img.B()
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			p := y*img.W + x
			dst.SetNRGBA(x, y, color.NRGBA{
				R: quantize(r[p]),
				G: quantize(g[p]),
				B: quantize(b[p]),
				A: 255,
			})
		}
	}
	return encodeFile(path, dst)
}

// WriteScalar writes a single-channel buffer as a grayscale image file,
// encoded as chosen by encodeFile from the path's extension.
func WriteScalar(path string, s *raster.Scalar) error {
	dst := image.NewGray(image.Rect(0, 0, s.W, s.H))
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			p := y*s.W + x
			dst.SetGray(x, y, color.Gray{Y: quantize(s.Data[p])})
		}
	}
	return encodeFile(path, dst)
}

// encodeFile writes img to path, picking the codec from the file
// extension (.jpg/.jpeg encode as JPEG; everything else, including the
// CLI's "png" default, encodes as PNG).
func encodeFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: creating %s: %w", path, err)
	}
	defer f.Close()

	switch ext(path) {
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("imageio: encoding %s: %w", path, err)
	}
	return nil
}

func ext(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return toLower(path[i+1:])
		}
	}
	return ""
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

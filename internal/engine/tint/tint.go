// Package tint loads tileable ground textures and samples them at
// world positions for per-instance grass coloring.
package tint

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	gomath "math"
	"path/filepath"
	"strings"

	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

// Image is an immutable RGBA bitmap treated as an endlessly repeating
// tile. Reads need no synchronization.
type Image struct {
	rgba *image.RGBA
	w, h int
}

// FromImage copies src into a sampling image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &Image{rgba: rgba, w: b.Dx(), h: b.Dy()}
}

// Solid returns a one-pixel image that samples to c everywhere. It
// stands in when no ground texture is configured.
func Solid(c grid.Color) *Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0] = quantize(c[0])
	img.Pix[1] = quantize(c[1])
	img.Pix[2] = quantize(c[2])
	img.Pix[3] = quantize(c[3])
	return &Image{rgba: img, w: 1, h: 1}
}

// Decode reads an encoded texture, picking the decoder by file
// extension: TGA uses the dedicated reader, everything else goes
// through the registered stdlib formats.
func Decode(name string, data []byte) (*Image, error) {
	var (
		src image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(src), nil
}

// Size returns the tile dimensions in pixels.
func (im *Image) Size() (int, int) {
	return im.w, im.h
}

// Sample returns the color at world position (wx, wz), where scale
// maps world units onto the tile: one full tile every 1/scale units,
// wrapping in both directions.
func (im *Image) Sample(wx, wz, scale float32) grid.Color {
	u := frac(float64(wx) * float64(scale))
	v := frac(float64(wz) * float64(scale))

	x := int(u * float64(im.w))
	if x >= im.w {
		x = im.w - 1
	}
	y := int(v * float64(im.h))
	if y >= im.h {
		y = im.h - 1
	}

	i := im.rgba.PixOffset(x, y)
	p := im.rgba.Pix[i : i+4 : i+4]
	return grid.Color{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

// frac maps any finite value into [0, 1).
func frac(f float64) float64 {
	f -= gomath.Floor(f)
	if f < 0 || f >= 1 || gomath.IsNaN(f) {
		return 0
	}
	return f
}

func quantize(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
